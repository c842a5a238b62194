// README: Affiliation master store backed by PostgreSQL.
package affiliation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage interface {
	List(ctx context.Context) ([]Affiliation, error)
	Insert(ctx context.Context, a Affiliation) error
	Update(ctx context.Context, a Affiliation) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Affiliation, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, memo, created_at, updated_at
        FROM affiliations
        ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Affiliation
	for rows.Next() {
		var a Affiliation
		if err := rows.Scan(&a.ID, &a.Name, &a.Memo, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, a Affiliation) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO affiliations (id, name, memo, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Name, a.Memo, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, a Affiliation) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE affiliations SET name = $2, memo = $3, updated_at = $4 WHERE id = $1`,
		a.ID, a.Name, a.Memo, a.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM affiliations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
