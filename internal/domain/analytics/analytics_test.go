package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/records/purchase"
)

func pricedFormat(code string, totalCost, effectivePrice string) *salesformat.Format {
	f := salesformat.New(code, code, id.New(), id.New(), 6, decimal.NewFromInt(40))
	f.State = salesformat.StateFresh
	f.Derived.TotalCost = types.MustMoney(totalCost)
	f.Derived.EffectivePrice = types.MustMoney(effectivePrice)
	f.Derived.UnitProfit = f.Derived.EffectivePrice.Sub(f.Derived.TotalCost)
	f.Derived.RealizedMarginPct = types.RatioPercent(f.Derived.UnitProfit, f.Derived.EffectivePrice)
	return f
}

func TestClassifyABC_TwoFormatBoundary(t *testing.T) {
	// Profits 10 and 2: after the first format the cumulative share is
	// 10/12 = 83.3%, which crossed 80% but started below it, so the first
	// format is A; the second completes to 100% and lands in B.
	big := pricedFormat("FMT-001", "5", "15")
	small := pricedFormat("FMT-002", "3", "5")

	ranked := ClassifyABC([]*salesformat.Format{small, big})
	require.Len(t, ranked, 2)

	assert.Equal(t, "FMT-001", ranked[0].Code)
	assert.Equal(t, ClassA, ranked[0].Class)
	assert.Equal(t, 1, ranked[0].Rank)

	assert.Equal(t, "FMT-002", ranked[1].Code)
	assert.Equal(t, ClassB, ranked[1].Class)
	assert.True(t, ranked[1].CumulativePct.Equal(decimal.NewFromInt(100)),
		"cumulative = %s", ranked[1].CumulativePct)
}

func TestClassifyABC_ExcludesUnprofitableAndIncomplete(t *testing.T) {
	profitable := pricedFormat("FMT-001", "1", "3")
	breakEvenOnly := pricedFormat("FMT-002", "2", "2")
	losing := pricedFormat("FMT-003", "4", "3")
	broken := pricedFormat("FMT-004", "1", "5")
	broken.Incomplete = true

	ranked := ClassifyABC([]*salesformat.Format{profitable, breakEvenOnly, losing, broken})
	require.Len(t, ranked, 1)
	assert.Equal(t, "FMT-001", ranked[0].Code)
	assert.Equal(t, ClassA, ranked[0].Class)
}

func TestClassifyABC_CumulativeIsMonotonic(t *testing.T) {
	formats := []*salesformat.Format{
		pricedFormat("FMT-001", "1", "9"),
		pricedFormat("FMT-002", "1", "6"),
		pricedFormat("FMT-003", "1", "4"),
		pricedFormat("FMT-004", "1", "2.5"),
		pricedFormat("FMT-005", "1", "1.5"),
	}

	ranked := ClassifyABC(formats)
	require.Len(t, ranked, 5)

	prev := decimal.Zero
	for _, row := range ranked {
		assert.True(t, row.CumulativePct.GreaterThanOrEqual(prev),
			"cumulative dropped at rank %d", row.Rank)
		prev = row.CumulativePct
	}
	assert.True(t, prev.Equal(decimal.NewFromInt(100)))
}

func TestComputeBreakEven(t *testing.T) {
	// Average contribution (4 + 2) / 2 = 3; 500 fixed -> ceil(166.67) = 167.
	formats := []*salesformat.Format{
		pricedFormat("FMT-001", "6", "10"),
		pricedFormat("FMT-002", "4", "6"),
	}

	be, err := ComputeBreakEven(types.MustMoney("500"), formats)
	require.NoError(t, err)

	assert.True(t, be.AvgContributionMargin.Equal(types.MustMoney("3")))
	assert.Equal(t, int64(167), be.UnitsToSell)
	// Average price 8 -> revenue 1336 at break-even.
	assert.True(t, be.RevenueAtBreakEven.Equal(types.MustMoney("1336")),
		"revenue = %s", be.RevenueAtBreakEven)
	assert.Equal(t, 2, be.FormatsConsidered)
}

func TestComputeBreakEven_ZeroMarginIsUnreachable(t *testing.T) {
	formats := []*salesformat.Format{
		pricedFormat("FMT-001", "5", "5"),
	}

	_, err := ComputeBreakEven(types.MustMoney("500"), formats)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBreakEvenUnreachable))
}

func TestComputeBreakEven_NoFormatsIsUnreachable(t *testing.T) {
	_, err := ComputeBreakEven(types.MustMoney("500"), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeBreakEvenUnreachable))
}

func supplierBuy(ingID id.ID, supplier, qty, total string, day int) *purchase.Record {
	return purchase.New(ingID, supplier,
		decimal.RequireFromString(qty), measure.Kilogram, types.MustMoney(total),
		time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC))
}

func TestCompareSuppliers(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	purchases := []*purchase.Record{
		supplierBuy(flour.ID, "Moulin Dupont", "10", "9.00", 1),  // 0.90/kg
		supplierBuy(flour.ID, "Moulin Dupont", "10", "9.00", 15), // 0.90/kg
		supplierBuy(flour.ID, "Grossiste Sud", "10", "12.00", 20), // 1.20/kg
	}

	cmps, err := CompareSuppliers([]*ingredient.Ingredient{flour}, purchases, now)
	require.NoError(t, err)
	require.Len(t, cmps, 1)

	cmp := cmps[0]
	assert.Equal(t, "Moulin Dupont", cmp.BestSupplier)
	require.Len(t, cmp.Suppliers, 2)
	assert.True(t, cmp.Suppliers[0].AvgUnitPrice.Equal(types.MustMoney("0.9")))
	assert.Equal(t, 2, cmp.Suppliers[0].PurchaseCount)
	assert.True(t, cmp.Suppliers[1].AvgUnitPrice.Equal(types.MustMoney("1.2")))

	// 19-day window < 30 days: 30 kg observed reads as a monthly volume,
	// so annual consumption is 360 kg and savings 0.30 x 360 = 108.
	assert.True(t, cmp.EstimatedAnnualSavings.Equal(types.MustMoney("108")),
		"savings = %s", cmp.EstimatedAnnualSavings)
}

func TestCompareSuppliers_SingleSupplierHasNoSavings(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	cmps, err := CompareSuppliers([]*ingredient.Ingredient{flour}, []*purchase.Record{
		supplierBuy(flour.ID, "Moulin Dupont", "10", "9.00", 1),
	}, now)
	require.NoError(t, err)
	require.Len(t, cmps, 1)

	assert.Equal(t, "Moulin Dupont", cmps[0].BestSupplier)
	assert.True(t, cmps[0].EstimatedAnnualSavings.IsZero())
}

func TestReliabilityScore(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	recent := reliabilityScore(10, now.AddDate(0, 0, -7), now)
	assert.True(t, recent.Equal(decimal.NewFromInt(100)), "score = %s", recent)

	stale := reliabilityScore(1, now.AddDate(-2, 0, 0), now)
	assert.True(t, stale.Equal(decimal.NewFromInt(5)), "score = %s", stale)
}

func TestSimulatePriceSensitivity(t *testing.T) {
	f := pricedFormat("FMT-001", "1.281", "2.135")

	scenarios, err := SimulatePriceSensitivity(SensitivityInput{
		Format:    f,
		DeltasPct: []types.Percent{decimal.NewFromInt(-10), decimal.Zero, decimal.NewFromInt(10)},
	})
	require.NoError(t, err)
	require.Len(t, scenarios, 3)

	// -10% price with elasticity -1.5: volume multiplier 1.15.
	assert.True(t, scenarios[0].VolumeMultiplier.Equal(types.MustMoney("1.15")))
	assert.True(t, scenarios[1].VolumeMultiplier.Equal(decimal.NewFromInt(1)))
	assert.True(t, scenarios[2].VolumeMultiplier.Equal(types.MustMoney("0.85")))

	recommended := 0
	for _, s := range scenarios {
		if s.Recommended {
			recommended++
		}
	}
	assert.Equal(t, 1, recommended, "exactly one scenario is flagged")
}

func TestSimulatePriceSensitivity_VolumeFlooredAtZero(t *testing.T) {
	f := pricedFormat("FMT-001", "1", "2")

	scenarios, err := SimulatePriceSensitivity(SensitivityInput{
		Format:    f,
		DeltasPct: []types.Percent{decimal.NewFromInt(100)},
	})
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	// 1 + (-1.5 x 1) = -0.5, floored to 0: no sales, no revenue.
	assert.True(t, scenarios[0].VolumeMultiplier.IsZero())
	assert.True(t, scenarios[0].Revenue.IsZero())
	assert.True(t, scenarios[0].Profit.IsZero())
}

func TestSimulatePriceSensitivity_CustomElasticity(t *testing.T) {
	f := pricedFormat("FMT-001", "1", "2")
	rigid := decimal.RequireFromString("-0.5")

	scenarios, err := SimulatePriceSensitivity(SensitivityInput{
		Format:     f,
		DeltasPct:  []types.Percent{decimal.NewFromInt(10)},
		Elasticity: &rigid,
	})
	require.NoError(t, err)
	assert.True(t, scenarios[0].VolumeMultiplier.Equal(types.MustMoney("0.95")))
}

func TestComputeKPIs(t *testing.T) {
	healthy := pricedFormat("FMT-001", "1.281", "2.135")
	losing := pricedFormat("FMT-002", "5", "4")
	broken := pricedFormat("FMT-003", "1", "2")
	broken.Incomplete = true
	deleted := pricedFormat("FMT-004", "1", "2")
	deleted.MarkDeleted()

	k := ComputeKPIs([]*salesformat.Format{healthy, losing, broken, deleted})

	assert.Equal(t, 3, k.FormatCount)
	assert.Equal(t, 1, k.IncompleteCount)
	assert.Equal(t, 1, k.LossMakingCount)
	assert.True(t, k.TotalRevenue.Equal(types.MustMoney("6.135")), "revenue = %s", k.TotalRevenue)
	assert.True(t, k.TotalCost.Equal(types.MustMoney("6.281")), "cost = %s", k.TotalCost)
	assert.True(t, k.TotalProfit.Equal(types.MustMoney("-0.146")), "profit = %s", k.TotalProfit)
}
