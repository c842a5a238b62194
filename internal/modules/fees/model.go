// README: Fee record entity, lifecycle flags, and reserved auxiliary keys.
package fees

import (
	"strings"
	"time"
)

// FeeRecord is one priced lane in the versioned fee master. A record is either
// active or archived; archived records are frozen forever and kept for audit.
type FeeRecord struct {
	ID          int64     `json:"id"`
	Affiliation string    `json:"affiliation"`
	Region      string    `json:"region"`
	Year        int       `json:"year"`
	Price       int64     `json:"price"`
	Memo        string    `json:"memo"`
	Archived    bool      `json:"archived"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r FeeRecord) Active() bool { return !r.Archived }

// Reserved auxiliary keys. These live in the same table as real regions but
// are a closed set: the address classifier can never produce one, and the
// resolver looks them up explicitly.
const (
	KeyExtraStop  = "납품처추가"
	KeySpecialBox = "피박스"
	KeyReturnTrip = "회송"
)

// Tonnage classes priced as vehicle add-ons.
var TonnageClasses = []string{"1T", "2.5T", "3.5T", "5T"}

func IsTonnageClass(s string) bool {
	for _, t := range TonnageClasses {
		if s == t {
			return true
		}
	}
	return false
}

// IsAuxKey reports whether region is one of the reserved non-geographic keys.
func IsAuxKey(region string) bool {
	switch region {
	case KeyExtraStop, KeySpecialBox, KeyReturnTrip:
		return true
	}
	return IsTonnageClass(region)
}

// NormalizeAffiliation strips a trailing numeric suffix and surrounding
// whitespace so that variants like "엔디와이2" match "엔디와이" rows.
func NormalizeAffiliation(aff string) string {
	s := strings.TrimSpace(aff)
	s = strings.TrimRight(s, "0123456789")
	return strings.TrimSpace(s)
}

// IsCommonAffiliation reports whether a row applies to every carrier. The fee
// master marks shared rows with "공통" or "ALL".
func IsCommonAffiliation(aff string) bool {
	s := strings.TrimSpace(aff)
	return s == "공통" || strings.EqualFold(s, "ALL")
}

// Table is a snapshot of the fee master used for lookups. Lookups never
// mutate; writers build a fresh snapshot and swap it in whole.
type Table []FeeRecord

// FindActive returns the active record for (affiliation, year, region) using
// the two-tier rule: a company-specific row wins; failing that, a shared
// (공통/ALL) row applies. The boolean is false when neither tier matches.
func (t Table) FindActive(affiliation string, year int, region string) (FeeRecord, bool) {
	cleanAff := NormalizeAffiliation(affiliation)
	reg := strings.TrimSpace(region)

	for _, r := range t {
		if r.Active() && r.Year == year && strings.TrimSpace(r.Region) == reg &&
			NormalizeAffiliation(r.Affiliation) == cleanAff {
			return r, true
		}
	}
	for _, r := range t {
		if r.Active() && r.Year == year && strings.TrimSpace(r.Region) == reg &&
			IsCommonAffiliation(r.Affiliation) {
			return r, true
		}
	}
	return FeeRecord{}, false
}

// BaseCandidates collects the active records matching any of the touched
// regions for the given year, company-specific rows first; shared rows are
// consulted only when no company-specific row matches at all.
func (t Table) BaseCandidates(affiliation string, year int, regions []string) []FeeRecord {
	cleanAff := NormalizeAffiliation(affiliation)

	inRegions := func(r FeeRecord) bool {
		reg := strings.TrimSpace(r.Region)
		for _, want := range regions {
			if reg == want {
				return true
			}
		}
		return false
	}

	var company []FeeRecord
	for _, r := range t {
		if r.Active() && r.Year == year && inRegions(r) && NormalizeAffiliation(r.Affiliation) == cleanAff {
			company = append(company, r)
		}
	}
	if len(company) > 0 {
		return company
	}

	var common []FeeRecord
	for _, r := range t {
		if r.Active() && r.Year == year && inRegions(r) && IsCommonAffiliation(r.Affiliation) {
			common = append(common, r)
		}
	}
	return common
}
