// README: Consolidation of raw dispatch rows into per-(date, driver)
// settlement candidates. Only drivers present in the registry are settled;
// rows already covered by a ledger entry are dropped.
package dispatch

import (
	"math"
	"strconv"
	"strings"

	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/settlement"
)

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

func cleanField(s string) string {
	return strings.TrimSpace(lineBreaks.Replace(s))
}

// stringSet keeps insertion order so consolidated output stays stable.
type stringSet struct {
	seen  map[string]bool
	items []string
}

func newStringSet() *stringSet {
	return &stringSet{seen: map[string]bool{}}
}

func (s *stringSet) add(v string) {
	v = cleanField(v)
	if v == "" || s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

type group struct {
	row  ConsolidatedRow
	dest *stringSet
	addr *stringSet
}

func formatTonnage(weightKG float64) string {
	tons := weightKG / 1000
	return strconv.FormatFloat(tons, 'f', -1, 64) + "T"
}

// parseNameFilter splits a comma-separated driver search string into
// normalized tokens.
func parseNameFilter(filter string) []string {
	var tokens []string
	for _, tok := range strings.Split(filter, ",") {
		if key := driver.NameKey(tok); key != "" {
			tokens = append(tokens, key)
		}
	}
	return tokens
}

// Consolidate merges dispatch rows into one candidate per (date, driver).
// Rows whose driver is not registered are skipped, nameFilter is an OR of
// comma-separated substrings, and candidates already present in settledKeys
// are excluded.
func Consolidate(rows []Row, registered []driver.Driver, settledKeys map[string]bool, nameFilter string) []ConsolidatedRow {
	byName := make(map[string]driver.Driver, len(registered))
	for _, d := range registered {
		byName[driver.NameKey(d.Name)] = d
	}
	tokens := parseNameFilter(nameFilter)

	groups := map[string]*group{}
	var order []string

	for _, row := range rows {
		nameKey := driver.NameKey(row.DriverName)
		reg, ok := byName[nameKey]
		if !ok {
			continue
		}
		if len(tokens) > 0 {
			match := false
			for _, tok := range tokens {
				if strings.Contains(nameKey, tok) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}

		key := settlement.Key(row.Date, row.DriverName)
		g, ok := groups[key]
		if !ok {
			aff := reg.Affiliation
			if aff == "" {
				if v := cleanField(row.Affiliation); v != "" && v != "-" {
					aff = v
				}
			}
			g = &group{
				row: ConsolidatedRow{
					Date:        row.Date,
					DriverName:  row.DriverName,
					Affiliation: aff,
					Tonnage:     formatTonnage(row.MaxWeightKG),
				},
				dest: newStringSet(),
				addr: newStringSet(),
			}
			groups[key] = g
			order = append(order, key)
		}

		if g.row.Affiliation == "" || g.row.Affiliation == "-" {
			if v := cleanField(row.Affiliation); v != "" && v != "-" {
				g.row.Affiliation = v
			}
		}
		g.row.TotalCount += row.TotalCount
		g.row.TotalWeight += row.TotalWeight
		for _, d := range strings.Split(row.DestList, ",") {
			g.dest.add(d)
		}
		for _, a := range strings.Split(row.AddrList, "||") {
			g.addr.add(a)
		}
	}

	out := make([]ConsolidatedRow, 0, len(order))
	for _, key := range order {
		if settledKeys[key] {
			continue
		}
		g := groups[key]
		r := g.row
		r.DestDetail = joinOrDash(g.dest.items, ", ")
		r.AddrDetail = joinOrDash(g.addr.items, "||")
		// Deliveries to the same address count as one destination.
		r.DestCount = len(g.addr.items)
		r.TotalWeight = math.Ceil(r.TotalWeight)
		out = append(out, r)
	}
	return out
}

func joinOrDash(items []string, sep string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, sep)
}

// Summarize computes the footer totals for a consolidated result set.
func Summarize(rows []ConsolidatedRow) Summary {
	var s Summary
	s.TotalDrivers = len(rows)
	for _, r := range rows {
		s.TotalDestinations += r.DestCount
		s.TotalShipments += r.TotalCount
		s.TotalWeight += r.TotalWeight
	}
	s.TotalWeight = math.Round(s.TotalWeight*100) / 100
	return s
}
