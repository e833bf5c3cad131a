package costing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/recipe"
)

func TestCostRecipe_WorkedScenario(t *testing.T) {
	// "Choc Cookie": 0.3 kg flour at 0.90/kg, batch of 20 cookies.
	flourID := id.New()
	r := recipe.New("RCP-001", "Choc Cookie", recipe.LevelStandard, 20)
	r.Lines = []recipe.Line{
		{IngredientID: flourID, Quantity: decimal.RequireFromString("0.3"), Unit: measure.Kilogram},
	}

	prices := PriceTable{
		flourID: {PricePerUnit: types.MustMoney("0.9"), Unit: measure.Kilogram},
	}

	cost, err := CostRecipe(r, prices)
	require.NoError(t, err)

	assert.True(t, cost.TotalCost.Equal(types.MustMoney("0.27")),
		"batch cost = %s", cost.TotalCost)
	assert.True(t, cost.CostPerUnit.Equal(types.MustMoney("0.0135")),
		"cost per cookie = %s", cost.CostPerUnit)
	assert.False(t, cost.Incomplete)
}

func TestCostRecipe_LineUnitConversion(t *testing.T) {
	// Line in grams, ingredient priced per kilogram.
	flourID := id.New()
	r := recipe.New("RCP-002", "Sable", recipe.LevelStandard, 10)
	r.Lines = []recipe.Line{
		{IngredientID: flourID, Quantity: decimal.NewFromInt(300), Unit: measure.Gram},
	}

	prices := PriceTable{
		flourID: {PricePerUnit: types.MustMoney("2"), Unit: measure.Kilogram},
	}

	cost, err := CostRecipe(r, prices)
	require.NoError(t, err)
	assert.True(t, cost.TotalCost.Equal(types.MustMoney("0.6")),
		"batch cost = %s", cost.TotalCost)
}

func TestCostRecipe_IncludesOvenEnergy(t *testing.T) {
	r := recipe.New("RCP-003", "Meringue", recipe.LevelPremium, 4)
	r.OvenEnergyCost = types.MustMoney("0.80")

	cost, err := CostRecipe(r, PriceTable{})
	require.NoError(t, err)
	assert.True(t, cost.TotalCost.Equal(types.MustMoney("0.8")))
	assert.True(t, cost.CostPerUnit.Equal(types.MustMoney("0.2")))
}

func TestCostRecipe_DanglingIngredientMarksIncomplete(t *testing.T) {
	knownID := id.New()
	missingID := id.New()

	r := recipe.New("RCP-004", "Brownie", recipe.LevelStandard, 12)
	r.Lines = []recipe.Line{
		{IngredientID: knownID, Quantity: decimal.NewFromInt(1), Unit: measure.Kilogram},
		{IngredientID: missingID, Quantity: decimal.NewFromInt(2), Unit: measure.Kilogram},
	}

	prices := PriceTable{
		knownID: {PricePerUnit: types.MustMoney("3"), Unit: measure.Kilogram},
	}

	cost, err := CostRecipe(r, prices)
	require.NoError(t, err, "a dangling reference must not fail the whole recipe")

	assert.True(t, cost.Incomplete)
	assert.Equal(t, []id.ID{missingID}, cost.MissingIngredients)
	// Cost covers only the resolvable lines.
	assert.True(t, cost.TotalCost.Equal(types.MustMoney("3")))
}

func TestCostRecipe_RejectsNonPositiveBatch(t *testing.T) {
	r := recipe.New("RCP-005", "Empty", recipe.LevelStandard, 0)

	_, err := CostRecipe(r, PriceTable{})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestCostPackaging(t *testing.T) {
	// "Bag-6": 1.20 for capacity 6 -> 0.20 per cookie.
	bag := packaging.New("PKG-001", "Bag-6", packaging.TypeBag, 6, types.MustMoney("1.20"))

	perUnit, err := CostPackaging(bag)
	require.NoError(t, err)
	assert.True(t, perUnit.Equal(types.MustMoney("0.2")), "per unit = %s", perUnit)
}

func TestCostPackaging_ExtrasIncluded(t *testing.T) {
	box := packaging.New("PKG-002", "Gift box", packaging.TypeBox, 12, types.MustMoney("2.00"))
	box.ExtrasCost = types.MustMoney("0.40")
	box.ExtrasNote = "ribbon"

	perUnit, err := CostPackaging(box)
	require.NoError(t, err)
	assert.True(t, perUnit.Equal(types.MustMoney("0.2")))
}

func TestCostPackaging_RejectsInvalidCapacity(t *testing.T) {
	bad := packaging.New("PKG-003", "Broken", packaging.TypeBag, 0, types.MustMoney("1"))

	_, err := CostPackaging(bad)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidCapacity))
}

func charges(method overhead.AllocationMethod) *overhead.Charges {
	c := overhead.New("CHG-001", "Workshop", overhead.PeriodMonthly, method)
	c.Components = []overhead.Component{
		{Kind: overhead.ComponentRent, Amount: types.MustMoney("300")},
		{Kind: overhead.ComponentEnergy, Amount: types.MustMoney("100")},
	}
	return c
}

func TestAllocateOverhead_PerUnit(t *testing.T) {
	c := charges(overhead.AllocPerUnit)
	c.UnitsProduced = decimal.NewFromInt(2000)

	alloc, err := AllocateOverhead(c, AllocationContext{})
	require.NoError(t, err)
	assert.True(t, alloc.ChargePerUnit.Equal(types.MustMoney("0.2")),
		"charge per unit = %s", alloc.ChargePerUnit)
	assert.False(t, alloc.Flagged)
}

func TestAllocateOverhead_PerUnit_ZeroDenominatorIsFlaggedZero(t *testing.T) {
	c := charges(overhead.AllocPerUnit)

	alloc, err := AllocateOverhead(c, AllocationContext{})
	require.NoError(t, err)
	assert.True(t, alloc.ChargePerUnit.IsZero())
	assert.True(t, alloc.Flagged)
}

func TestAllocateOverhead_PercentOfCost(t *testing.T) {
	c := charges(overhead.AllocPercentOfCost)
	c.Percent = decimal.NewFromInt(10)

	alloc, err := AllocateOverhead(c, AllocationContext{
		BaseCostPerUnit: types.MustMoney("0.50"),
	})
	require.NoError(t, err)
	assert.True(t, alloc.ChargePerUnit.Equal(types.MustMoney("0.05")))
}

func TestAllocateOverhead_PerBatch(t *testing.T) {
	c := overhead.New("CHG-002", "Batch setup", overhead.PeriodPerBatch, overhead.AllocPerBatch)
	c.Components = []overhead.Component{
		{Kind: overhead.ComponentEnergy, Amount: types.MustMoney("5")},
	}

	alloc, err := AllocateOverhead(c, AllocationContext{BatchSize: 20})
	require.NoError(t, err)
	assert.True(t, alloc.ChargePerUnit.Equal(types.MustMoney("0.25")))

	alloc, err = AllocateOverhead(c, AllocationContext{BatchSize: 0})
	require.NoError(t, err)
	assert.True(t, alloc.Flagged)
	assert.True(t, alloc.ChargePerUnit.IsZero())
}

func TestTotalLossPercent_AdditiveAcrossStages(t *testing.T) {
	baking := lossrate.New("LOS-001", "Burnt batches", lossrate.LossBaking,
		decimal.NewFromInt(10), lossrate.StageIngredients)
	breakage := lossrate.New("LOS-002", "Transport breakage", lossrate.LossBreakage,
		decimal.NewFromInt(5), lossrate.StageProduction)

	total := TotalLossPercent([]*lossrate.LossRate{baking, breakage})

	// 10% + 5% apply to the same pre-loss base: 15%, never 15.5%.
	assert.True(t, total.Equal(decimal.NewFromInt(15)), "total = %s", total)
}

func TestTotalLossPercent_SkipsInactiveAndDeleted(t *testing.T) {
	active := lossrate.New("LOS-001", "Unsold", lossrate.LossUnsold,
		decimal.NewFromInt(4), lossrate.StageSales)
	inactive := lossrate.New("LOS-002", "Expiry", lossrate.LossExpiry,
		decimal.NewFromInt(6), lossrate.StageSales)
	inactive.Active = false
	deleted := lossrate.New("LOS-003", "Errors", lossrate.LossError,
		decimal.NewFromInt(2), lossrate.StageProduction)
	deleted.MarkDeleted()

	total := TotalLossPercent([]*lossrate.LossRate{active, inactive, deleted})
	assert.True(t, total.Equal(decimal.NewFromInt(4)))
}

func TestLossCost(t *testing.T) {
	got := LossCost(types.MustMoney("10"), decimal.NewFromInt(15))
	assert.True(t, got.Equal(types.MustMoney("1.5")))
}
