package analytics

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/salesformat"
)

// KPIs aggregates the catalog-wide profitability picture, one pack of each
// format counted once.
type KPIs struct {
	TotalRevenue types.Money `json:"totalRevenue"`
	TotalCost    types.Money `json:"totalCost"`
	TotalProfit  types.Money `json:"totalProfit"`

	// AvgRealizedMarginPct is the mean realized margin across formats.
	AvgRealizedMarginPct types.Percent `json:"avgRealizedMarginPct"`

	FormatCount     int `json:"formatCount"`
	IncompleteCount int `json:"incompleteCount"`

	// LossMakingCount is how many formats sell at or below cost.
	LossMakingCount int `json:"lossMakingCount"`
}

// ComputeKPIs sums derived pricing across all live formats. Incomplete
// formats are counted but excluded from the money totals since their
// derived values are not authoritative.
func ComputeKPIs(formats []*salesformat.Format) KPIs {
	var k KPIs
	k.TotalRevenue = decimal.Zero
	k.TotalCost = decimal.Zero
	k.TotalProfit = decimal.Zero

	marginSum := decimal.Zero
	priced := 0
	for _, f := range formats {
		if f.DeletionMark {
			continue
		}
		k.FormatCount++
		if f.Incomplete {
			k.IncompleteCount++
			continue
		}

		k.TotalRevenue = k.TotalRevenue.Add(f.Derived.EffectivePrice)
		k.TotalCost = k.TotalCost.Add(f.Derived.TotalCost)
		k.TotalProfit = k.TotalProfit.Add(f.Derived.UnitProfit)
		marginSum = marginSum.Add(f.Derived.RealizedMarginPct)
		priced++

		if !f.Derived.UnitProfit.IsPositive() {
			k.LossMakingCount++
		}
	}

	if priced > 0 {
		k.AvgRealizedMarginPct = marginSum.Div(decimal.NewFromInt(int64(priced)))
	} else {
		k.AvgRealizedMarginPct = decimal.Zero
	}
	return k
}
