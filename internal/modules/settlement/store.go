// README: Settlement ledger store backed by PostgreSQL.
package settlement

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Storage interface {
	List(ctx context.Context) ([]Record, error)
	Insert(ctx context.Context, r Record) error
	Update(ctx context.Context, r Record) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, date, driver_name, affiliation, tonnage, destination_summary,
               weight, computed_fee, billed_amount, memo, special_box, return_trip,
               created_at, updated_at
        FROM settlement_records`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(
			&r.ID, &r.Date, &r.DriverName, &r.Affiliation, &r.Tonnage, &r.DestinationSummary,
			&r.Weight, &r.ComputedFee, &r.BilledAmount, &r.Memo, &r.SpecialBox, &r.ReturnTrip,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO settlement_records (
            id, date, driver_name, affiliation, tonnage, destination_summary,
            weight, computed_fee, billed_amount, memo, special_box, return_trip,
            created_at, updated_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.ID, r.Date, r.DriverName, r.Affiliation, r.Tonnage, r.DestinationSummary,
		r.Weight, r.ComputedFee, r.BilledAmount, r.Memo, r.SpecialBox, r.ReturnTrip,
		r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *Store) Update(ctx context.Context, r Record) (bool, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE settlement_records
        SET date = $2, driver_name = $3, affiliation = $4, tonnage = $5,
            destination_summary = $6, weight = $7, computed_fee = $8,
            billed_amount = $9, memo = $10, special_box = $11, return_trip = $12,
            updated_at = $13
        WHERE id = $1`,
		r.ID, r.Date, r.DriverName, r.Affiliation, r.Tonnage, r.DestinationSummary,
		r.Weight, r.ComputedFee, r.BilledAmount, r.Memo, r.SpecialBox, r.ReturnTrip,
		r.UpdatedAt,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM settlement_records WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
