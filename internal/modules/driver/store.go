// README: Driver master store backed by PostgreSQL.
package driver

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage interface {
	List(ctx context.Context) ([]Driver, error)
	Insert(ctx context.Context, d Driver) error
	Update(ctx context.Context, d Driver) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, name, affiliation, vehicle_id, tonnage, created_at, updated_at
        FROM drivers
        ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.Affiliation, &d.VehicleID, &d.Tonnage, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, d Driver) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO drivers (id, name, affiliation, vehicle_id, tonnage, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		d.ID, d.Name, d.Affiliation, d.VehicleID, d.Tonnage, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, d Driver) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE drivers
        SET name = $2, affiliation = $3, vehicle_id = $4, tonnage = $5, updated_at = $6
        WHERE id = $1`,
		d.ID, d.Name, d.Affiliation, d.VehicleID, d.Tonnage, d.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
