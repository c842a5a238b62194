// README: Settlement record entity and dedup keys.
package settlement

import (
	"time"

	"yongcha/internal/modules/driver"
)

// Record is one finalized per-driver, per-day settlement. ComputedFee is what
// the driver is paid; BilledAmount is what the client is invoiced — the two
// are independent and must never be conflated.
type Record struct {
	ID                 int64     `json:"id"`
	Date               string    `json:"date"` // YYYY-MM-DD
	DriverName         string    `json:"driver_name"`
	Affiliation        string    `json:"affiliation"`
	Tonnage            string    `json:"tonnage"`
	DestinationSummary string    `json:"destination_summary"`
	Weight             int64     `json:"weight"`
	ComputedFee        int64     `json:"computed_fee"`
	BilledAmount       int64     `json:"billed_amount"`
	Memo               string    `json:"memo"`
	SpecialBox         bool      `json:"special_box"`
	ReturnTrip         bool      `json:"return_trip"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Key identifies a settlement for dedup purposes: one per (date, driver).
func Key(date, driverName string) string {
	return date + "_" + driver.NameKey(driverName)
}

func (r Record) Key() string {
	return Key(r.Date, r.DriverName)
}
