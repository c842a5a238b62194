// README: Fee master store backed by PostgreSQL.
package fees

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage is the row-level persistence contract for the fee master. The
// service layers the freeze-on-write rules on top; implementations only move
// rows in and out.
type Storage interface {
	ListAll(ctx context.Context) ([]FeeRecord, error)
	Insert(ctx context.Context, r FeeRecord) error
	Update(ctx context.Context, r FeeRecord) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) ListAll(ctx context.Context) ([]FeeRecord, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, affiliation, region, year, price, memo, archived, created_at, updated_at
        FROM fee_records
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FeeRecord
	for rows.Next() {
		var r FeeRecord
		if err := rows.Scan(
			&r.ID, &r.Affiliation, &r.Region, &r.Year, &r.Price,
			&r.Memo, &r.Archived, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, r FeeRecord) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO fee_records (
            id, affiliation, region, year, price, memo, archived, created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		r.ID, r.Affiliation, r.Region, r.Year, r.Price, r.Memo, r.Archived, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, r FeeRecord) error {
	_, err := s.db.Exec(ctx, `
        UPDATE fee_records
        SET affiliation = $2, region = $3, year = $4, price = $5,
            memo = $6, archived = $7, updated_at = $8
        WHERE id = $1`,
		r.ID, r.Affiliation, r.Region, r.Year, r.Price, r.Memo, r.Archived, r.UpdatedAt,
	)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM fee_records WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
