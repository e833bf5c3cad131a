// Package analytics computes profitability reports over already-consistent
// derived values: ABC classification, break-even, supplier comparison,
// price-sensitivity scenarios and aggregate KPIs. Every function is pure
// and reads the graph snapshot the propagation engine keeps fresh.
package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"fournil/internal/core/id"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/salesformat"
)

// Class is an ABC profitability tier.
type Class string

const (
	ClassA Class = "A"
	ClassB Class = "B"
	ClassC Class = "C"
)

// RankedFormat is one row of the ABC classification.
type RankedFormat struct {
	FormatID   id.ID       `json:"formatId"`
	Code       string      `json:"code"`
	Name       string      `json:"name"`
	UnitProfit types.Money `json:"unitProfit"`

	// CumulativePct is the running share of total profit after this row.
	CumulativePct types.Percent `json:"cumulativePct"`

	Class Class `json:"class"`
	Rank  int   `json:"rank"`
}

var (
	abcBoundaryA = decimal.NewFromInt(80)
	abcBoundaryB = decimal.NewFromInt(95)
)

// ClassifyABC ranks formats by unit profit descending and assigns Pareto
// classes: A for the prefix reaching 80% of cumulative profit, B for the
// next prefix reaching 95%, C for the remainder. Formats with non-positive
// profit, incomplete formats and soft-deleted formats are excluded before
// the cumulative curve is built; their contribution is undefined, not zero.
func ClassifyABC(formats []*salesformat.Format) []RankedFormat {
	eligible := make([]*salesformat.Format, 0, len(formats))
	total := decimal.Zero
	for _, f := range formats {
		if f.DeletionMark || f.Incomplete {
			continue
		}
		if !f.Derived.UnitProfit.IsPositive() {
			continue
		}
		eligible = append(eligible, f)
		total = total.Add(f.Derived.UnitProfit)
	}
	if len(eligible) == 0 {
		return nil
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Derived.UnitProfit.GreaterThan(eligible[j].Derived.UnitProfit)
	})

	out := make([]RankedFormat, 0, len(eligible))
	cumulative := decimal.Zero
	for i, f := range eligible {
		// The class boundary looks at the curve before this row: a format
		// is A while 80% has not been reached yet, even if it is the one
		// that crosses it.
		var class Class
		prevPct := types.RatioPercent(cumulative, total)
		switch {
		case prevPct.LessThan(abcBoundaryA):
			class = ClassA
		case prevPct.LessThan(abcBoundaryB):
			class = ClassB
		default:
			class = ClassC
		}

		cumulative = cumulative.Add(f.Derived.UnitProfit)
		out = append(out, RankedFormat{
			FormatID:      f.ID,
			Code:          f.Code,
			Name:          f.Name,
			UnitProfit:    f.Derived.UnitProfit,
			CumulativePct: types.RatioPercent(cumulative, total),
			Class:         class,
			Rank:          i + 1,
		})
	}
	return out
}
