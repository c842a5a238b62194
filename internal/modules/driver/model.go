// README: Contracted (yongcha) driver master entity.
package driver

import (
	"strings"
	"time"
)

// Driver is one registered contracted driver. Only registered drivers are
// eligible for automated settlement; dispatch rows for unknown names are
// silently excluded upstream.
type Driver struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Affiliation string    `json:"affiliation"`
	VehicleID   string    `json:"vehicle_id"`
	Tonnage     string    `json:"tonnage"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NameKey strips all whitespace from a driver name. The legacy dispatch data
// pads names inconsistently, so every name comparison goes through this key.
func NameKey(name string) string {
	return strings.Join(strings.Fields(name), "")
}
