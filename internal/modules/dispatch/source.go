// README: Dispatch source backed by the legacy order database. The legacy
// tables store Korean text that round-tripped through a single-byte
// connection, so every text column is repaired from EUC-KR before it reaches
// the rest of the system.
package dispatch

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Source yields aggregated dispatch rows for a date range. custName narrows
// to one customer; empty means all.
type Source interface {
	Rows(ctx context.Context, startDate, endDate, custName string) ([]Row, error)
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// RepairText recovers Korean text that was read byte-for-byte from a legacy
// single-byte column. Strings that already contain multi-byte runes are
// assumed healthy and returned unchanged; undecodable input is also returned
// as-is rather than mangled further.
func RepairText(s string) string {
	raw := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			return s
		}
		raw = append(raw, byte(r))
	}
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil || strings.ContainsRune(string(decoded), utf8.RuneError) {
		return s
	}
	return string(decoded)
}

func (s *Store) Rows(ctx context.Context, startDate, endDate, custName string) ([]Row, error) {
	query := `
        SELECT
            o.order_date,
            v.driver_name,
            v.vehicle_no,
            v.max_weight_kg,
            v.affiliation,
            string_agg(DISTINCT o.dest_name, ', ') AS dest_list,
            string_agg(DISTINCT o.dest_address, '||') AS addr_list,
            COUNT(DISTINCT o.dest_name) AS dest_count,
            COUNT(*) AS total_count,
            COALESCE(SUM(o.weight), 0) AS total_weight
        FROM dispatch_orders o
        LEFT JOIN dispatch_vehicles v ON o.driver_code = v.driver_code
        WHERE o.order_date >= $1 AND o.order_date <= $2
          AND o.driver_code IS NOT NULL AND o.driver_code <> ''`
	args := []any{startDate, endDate}
	if custName != "" {
		query += ` AND TRIM(o.customer_name) = $3`
		args = append(args, custName)
	}
	query += `
        GROUP BY o.order_date, v.driver_name, v.vehicle_no, v.max_weight_kg, v.affiliation
        ORDER BY o.order_date ASC, v.driver_name ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var driverName, vehicleNo, affiliation, destList, addrList *string
		var maxWeight *float64
		if err := rows.Scan(
			&r.Date, &driverName, &vehicleNo, &maxWeight, &affiliation,
			&destList, &addrList, &r.DestCount, &r.TotalCount, &r.TotalWeight,
		); err != nil {
			return nil, err
		}
		r.Date = normalizeDate(r.Date)
		r.DriverName = repairOr(driverName, "미지정")
		r.VehicleNo = repairOr(vehicleNo, "")
		r.Affiliation = repairOr(affiliation, "-")
		r.DestList = repairOr(destList, "")
		r.AddrList = repairOr(addrList, "")
		if maxWeight != nil {
			r.MaxWeightKG = *maxWeight
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func repairOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return RepairText(*s)
}

// normalizeDate pins legacy date strings to YYYY-MM-DD so ledger keys match.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
