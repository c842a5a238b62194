// README: Fee resolver composes base fee and surcharges into an auditable amount.
package fees

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"yongcha/internal/config"
	"yongcha/internal/modules/region"
	"yongcha/internal/types"
)

// BasePolicy selects the base-fee record when a run touches several priced
// regions. The default pays the costliest lane; "lowest" exists for carriers
// that negotiate the opposite rule.
type BasePolicy string

const (
	BaseHighest BasePolicy = "highest"
	BaseLowest  BasePolicy = "lowest"
)

type ResolveInput struct {
	Date             string // YYYY-MM-DD
	Affiliation      string
	AddressList      string // "||"-joined delivery addresses
	DestinationCount int
}

type ResolveOptions struct {
	SpecialBox   bool
	ReturnTrip   bool
	ZoneCount    int
	TonnageClass string
}

type ResolveResult struct {
	BasePrice      int64    `json:"base_price"`
	ExtraAmount    int64    `json:"extra_amount"`
	FinalPrice     int64    `json:"final_price"`
	Explanation    string   `json:"explanation"`
	MatchedRegions []string `json:"matched_regions"`
	Success        bool     `json:"success"`
}

type Resolver struct {
	source   TableSource
	policy   BasePolicy
	zoneUnit int64
}

func NewResolver(source TableSource, cfg config.BillingConfig) *Resolver {
	policy := BaseHighest
	if BasePolicy(cfg.BasePolicy) == BaseLowest {
		policy = BaseLowest
	}
	zoneUnit := cfg.ZoneUnitAmount
	if zoneUnit <= 0 {
		zoneUnit = 10000
	}
	return &Resolver{source: source, policy: policy, zoneUnit: zoneUnit}
}

// Resolve computes the settlement amount for one consolidated dispatch row.
// Unmatched regions and unregistered tonnage classes are business outcomes,
// not errors: only snapshot I/O failures return a non-nil error.
func (r *Resolver) Resolve(ctx context.Context, input ResolveInput, opts ResolveOptions) (ResolveResult, error) {
	table, err := r.source.ActiveTable(ctx)
	if err != nil {
		return ResolveResult{}, err
	}

	year := yearOf(input.Date)
	addrs := region.SplitAddressList(input.AddressList)
	summary := region.Summarize(addrs)

	var regions []string
	seen := make(map[string]bool)
	for _, addr := range addrs {
		reg := region.Classify(addr)
		// An address must never classify into a reserved auxiliary key.
		if reg == "" || seen[reg] || IsAuxKey(reg) {
			continue
		}
		seen[reg] = true
		regions = append(regions, reg)
	}

	base, haveBase := r.pickBase(table.BaseCandidates(input.Affiliation, year, regions))
	if !haveBase {
		return ResolveResult{
			Explanation:    fmt.Sprintf("(%s) [!] 단가표 매칭 실패", summary),
			MatchedRegions: regions,
		}, nil
	}

	stops := input.DestinationCount
	if stops < 1 {
		stops = 1
	}
	extraStops := stops - 1

	auxPrice := func(key string) int64 {
		if f, ok := table.FindActive(input.Affiliation, year, key); ok {
			return f.Price
		}
		return 0
	}

	extraAmount := int64(extraStops) * auxPrice(KeyExtraStop)
	if opts.SpecialBox {
		extraAmount += auxPrice(KeySpecialBox)
	}
	if opts.ReturnTrip {
		extraAmount += auxPrice(KeyReturnTrip)
	}
	if opts.ZoneCount > 0 {
		extraAmount += int64(opts.ZoneCount) * r.zoneUnit
	}
	var tonnageAmount int64
	if opts.TonnageClass != "" {
		// No record for the selected class contributes zero, silently.
		tonnageAmount = auxPrice(opts.TonnageClass)
		extraAmount += tonnageAmount
	}

	reason := fmt.Sprintf("(%s) [%s기준] %s원", summary, base.Region, types.FormatWon(base.Price))
	if extraStops > 0 {
		reason += " + 추가" + strconv.Itoa(extraStops) + "곳"
	}
	if opts.SpecialBox {
		reason += " + P박스"
	}
	if opts.ReturnTrip {
		reason += " + 회송"
	}
	if opts.ZoneCount > 0 {
		reason += " + 권역" + strconv.Itoa(opts.ZoneCount)
	}
	if tonnageAmount > 0 {
		reason += " + " + opts.TonnageClass + "(" + types.FormatWon(tonnageAmount) + ")"
	}

	return ResolveResult{
		BasePrice:      base.Price,
		ExtraAmount:    extraAmount,
		FinalPrice:     base.Price + extraAmount,
		Explanation:    reason,
		MatchedRegions: regions,
		Success:        true,
	}, nil
}

func (r *Resolver) pickBase(candidates []FeeRecord) (FeeRecord, bool) {
	if len(candidates) == 0 {
		return FeeRecord{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch r.policy {
		case BaseLowest:
			if c.Price < best.Price {
				best = c
			}
		default:
			if c.Price > best.Price {
				best = c
			}
		}
	}
	return best, true
}

// yearOf extracts the calendar year from a YYYY-MM-DD date, falling back to
// the current year on malformed input.
func yearOf(date string) int {
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 0 {
			return y
		}
	}
	return time.Now().Year()
}
