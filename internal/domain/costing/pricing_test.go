package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/apperror"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
)

func bagSix() *packaging.Packaging {
	return packaging.New("PKG-001", "Bag-6", packaging.TypeBag, 6, types.MustMoney("1.20"))
}

func TestPriceFormat_WorkedScenario(t *testing.T) {
	// "Pack-6": 6 cookies at 0.0135 each, Bag-6 at 0.20 per cookie,
	// no charges, no losses, 40% target margin.
	d, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.0135"),
		BatchSize:         20,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(40),
	})
	require.NoError(t, err)

	assert.True(t, d.CostCookies.Equal(types.MustMoney("0.081")), "cookies = %s", d.CostCookies)
	assert.True(t, d.CostPackaging.Equal(types.MustMoney("1.2")), "packaging = %s", d.CostPackaging)
	assert.True(t, d.CostOverhead.IsZero())
	assert.True(t, d.CostLosses.IsZero())
	assert.True(t, d.TotalCost.Equal(types.MustMoney("1.281")), "total = %s", d.TotalCost)
	assert.True(t, d.RecommendedPrice.Equal(types.MustMoney("2.135")), "recommended = %s", d.RecommendedPrice)
	assert.True(t, d.UnitProfit.Equal(types.MustMoney("0.854")), "profit = %s", d.UnitProfit)
	assert.True(t, d.RealizedMarginPct.Equal(decimal.NewFromInt(40)), "margin = %s", d.RealizedMarginPct)
}

func TestPriceFormat_RoundTripMargin(t *testing.T) {
	// Without a practiced price, the realized margin re-derived from the
	// recommended price must hit the target margin exactly.
	for _, margin := range []int64{0, 15, 40, 60, 99} {
		d, err := PriceFormat(PricingInput{
			RecipeCostPerUnit: types.MustMoney("0.42"),
			BatchSize:         10,
			Packaging:         bagSix(),
			Quantity:          6,
			TargetMarginPct:   decimal.NewFromInt(margin),
		})
		require.NoError(t, err)

		assert.True(t, d.RealizedMarginPct.Sub(decimal.NewFromInt(margin)).Abs().
			LessThan(types.MustMoney("0.0000000001")),
			"margin %d: realized = %s", margin, d.RealizedMarginPct)
	}
}

func TestPriceFormat_LossesOnBaseCost(t *testing.T) {
	loss := lossrate.New("LOS-001", "Breakage", lossrate.LossBreakage,
		decimal.NewFromInt(10), lossrate.StageProduction)

	d, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.50"),
		BatchSize:         10,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(50),
		LossRates:         []*lossrate.LossRate{loss},
	})
	require.NoError(t, err)

	// base = 0.50*6 + 0.20*6 = 4.20; losses = 0.42; total = 4.62
	assert.True(t, d.CostLosses.Equal(types.MustMoney("0.42")), "losses = %s", d.CostLosses)
	assert.True(t, d.TotalCost.Equal(types.MustMoney("4.62")), "total = %s", d.TotalCost)
	assert.True(t, d.RecommendedPrice.Equal(types.MustMoney("9.24")), "recommended = %s", d.RecommendedPrice)
}

func TestPriceFormat_OverheadAllocation(t *testing.T) {
	perUnit := overhead.New("CHG-001", "Workshop", overhead.PeriodMonthly, overhead.AllocPerUnit)
	perUnit.Components = []overhead.Component{
		{Kind: overhead.ComponentRent, Amount: types.MustMoney("200")},
	}
	perUnit.UnitsProduced = decimal.NewFromInt(1000)

	percent := overhead.New("CHG-002", "Transport", overhead.PeriodMonthly, overhead.AllocPercentOfCost)
	percent.Components = []overhead.Component{
		{Kind: overhead.ComponentTransport, Amount: types.MustMoney("50")},
	}
	percent.Percent = decimal.NewFromInt(10)

	d, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.30"),
		BatchSize:         10,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(40),
		Charges:           []*overhead.Charges{perUnit, percent},
	})
	require.NoError(t, err)

	// per unit: 200/1000 = 0.20; percent: (0.30+0.20)*10% = 0.05
	// overhead per cookie 0.25, per pack 1.50
	assert.True(t, d.CostOverhead.Equal(types.MustMoney("1.5")), "overhead = %s", d.CostOverhead)
}

func TestPriceFormat_PracticedPriceOverride(t *testing.T) {
	practiced := types.MustMoney("3.00")

	d, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.0135"),
		BatchSize:         20,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(40),
		PracticedPrice:    &practiced,
	})
	require.NoError(t, err)

	assert.True(t, d.EffectivePrice.Equal(practiced))
	assert.True(t, d.UnitProfit.Equal(types.MustMoney("1.719")), "profit = %s", d.UnitProfit)
	// Realized margin reflects the practiced price, not the target.
	assert.True(t, d.RealizedMarginPct.Equal(types.MustMoney("57.3")),
		"margin = %s", d.RealizedMarginPct)
}

func TestPriceFormat_ZeroEffectivePriceYieldsZeroMargin(t *testing.T) {
	free := types.Zero()

	d, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.10"),
		BatchSize:         10,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(40),
		PracticedPrice:    &free,
	})
	require.NoError(t, err)

	assert.True(t, d.RealizedMarginPct.IsZero(), "margin must be 0, not NaN")
	assert.True(t, d.UnitProfit.IsNegative())
}

func TestPriceFormat_RejectsHundredPercentMargin(t *testing.T) {
	_, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.10"),
		BatchSize:         10,
		Packaging:         bagSix(),
		Quantity:          6,
		TargetMarginPct:   decimal.NewFromInt(100),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidMargin))
}

func TestPriceFormat_RejectsNonPositivePackQuantity(t *testing.T) {
	_, err := PriceFormat(PricingInput{
		RecipeCostPerUnit: types.MustMoney("0.10"),
		BatchSize:         10,
		Packaging:         bagSix(),
		Quantity:          0,
		TargetMarginPct:   decimal.NewFromInt(40),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidPackQuantity))
}
