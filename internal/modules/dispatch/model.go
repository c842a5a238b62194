// README: Dispatch aggregation rows and the consolidated settlement candidates
// built from them. Raw rows come grouped per (date, driver, vehicle) from the
// legacy order tables; consolidation merges them down to one row per
// (date, driver) for the settlement screen.
package dispatch

// Row is one aggregated dispatch group as read from the legacy tables.
// DestList is ", "-joined, AddrList is "||"-joined.
type Row struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	DriverName  string  `json:"driver_name"`
	Affiliation string  `json:"affiliation"`
	VehicleNo   string  `json:"vehicle_no"`
	MaxWeightKG float64 `json:"max_weight_kg"`
	DestList    string  `json:"dest_list"`
	AddrList    string  `json:"addr_list"`
	DestCount   int     `json:"dest_count"`
	TotalCount  int     `json:"total_count"`
	TotalWeight float64 `json:"total_weight"`
}

// ConsolidatedRow is one settlement candidate: every dispatch group of a
// driver on a day merged together.
type ConsolidatedRow struct {
	Date        string  `json:"date"`
	DriverName  string  `json:"driver_name"`
	Affiliation string  `json:"affiliation"`
	Tonnage     string  `json:"tonnage"`
	DestDetail  string  `json:"dest_detail"` // ", "-joined distinct destinations
	AddrDetail  string  `json:"addr_detail"` // "||"-joined distinct addresses
	DestCount   int     `json:"dest_count"`
	TotalCount  int     `json:"total_count"`
	TotalWeight float64 `json:"total_weight"`
}

// Summary holds the footer totals over a consolidated result set.
type Summary struct {
	TotalDrivers      int     `json:"total_drivers"`
	TotalDestinations int     `json:"total_destinations"`
	TotalShipments    int     `json:"total_shipments"`
	TotalWeight       float64 `json:"total_weight"`
}
