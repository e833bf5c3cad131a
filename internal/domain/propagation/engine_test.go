package propagation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/records/purchase"
)

// fixture wires the worked scenario: flour bought at 0.90/kg, a 20-cookie
// batch using 0.3 kg, a 6-unit bag at 1.20 and a Pack-6 format at 40% margin.
type fixture struct {
	graph  *Graph
	engine *Engine

	flour  *ingredient.Ingredient
	cookie *recipe.Recipe
	bag    *packaging.Packaging
	pack6  *salesformat.Format
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{graph: NewGraph()}

	f.flour = ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)
	f.graph.Ingredients[f.flour.ID] = f.flour
	f.graph.Purchases[f.flour.ID] = []*purchase.Record{
		purchase.New(f.flour.ID, "Moulin Dupont",
			decimal.NewFromInt(5), measure.Kilogram, types.MustMoney("4.50"),
			time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	f.cookie = recipe.New("RCP-001", "Choc Cookie", recipe.LevelStandard, 20)
	f.cookie.Lines = []recipe.Line{
		{IngredientID: f.flour.ID, Quantity: decimal.RequireFromString("0.3"), Unit: measure.Kilogram},
	}
	f.graph.Recipes[f.cookie.ID] = f.cookie

	f.bag = packaging.New("PKG-001", "Bag-6", packaging.TypeBag, 6, types.MustMoney("1.20"))
	f.graph.Packaging[f.bag.ID] = f.bag

	f.pack6 = salesformat.New("FMT-001", "Pack-6", f.cookie.ID, f.bag.ID, 6, decimal.NewFromInt(40))
	f.graph.Formats[f.pack6.ID] = f.pack6

	f.graph.Reindex()
	f.engine = NewEngine(f.graph)
	return f
}

func TestRecompute_PurchaseDrivesFullCascade(t *testing.T) {
	f := newFixture(t)

	cs, err := f.engine.Recompute(context.Background(), f.flour.ID, KindPurchase)
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	// Ingredient layer
	assert.True(t, f.flour.PricePerUnit.Equal(types.MustMoney("0.9")),
		"price per kg = %s", f.flour.PricePerUnit)
	assert.False(t, f.flour.NoPurchaseData)

	// Recipe layer
	assert.True(t, f.cookie.CostPerUnit.Equal(types.MustMoney("0.0135")),
		"cost per cookie = %s", f.cookie.CostPerUnit)

	// Format layer
	got := cs.Formats[0]
	assert.Equal(t, salesformat.StateFresh, got.State)
	assert.False(t, got.Incomplete)
	assert.True(t, got.Derived.TotalCost.Equal(types.MustMoney("1.281")),
		"total = %s", got.Derived.TotalCost)
	assert.True(t, got.Derived.RecommendedPrice.Equal(types.MustMoney("2.135")),
		"recommended = %s", got.Derived.RecommendedPrice)
}

func TestRecompute_TargetedFanOut(t *testing.T) {
	f := newFixture(t)

	// A second, unrelated chain: butter -> sable -> Pack-12.
	butter := ingredient.New("ING-002", "Butter AOP", ingredient.CategoryDairy, measure.Kilogram)
	f.graph.Ingredients[butter.ID] = butter
	f.graph.Purchases[butter.ID] = []*purchase.Record{
		purchase.New(butter.ID, "Laiterie Morel",
			decimal.NewFromInt(2), measure.Kilogram, types.MustMoney("16.00"),
			time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)),
	}

	sable := recipe.New("RCP-002", "Sable", recipe.LevelPremium, 30)
	sable.Lines = []recipe.Line{
		{IngredientID: butter.ID, Quantity: decimal.RequireFromString("0.5"), Unit: measure.Kilogram},
	}
	f.graph.Recipes[sable.ID] = sable

	pack12 := salesformat.New("FMT-002", "Pack-12", sable.ID, f.bag.ID, 12, decimal.NewFromInt(30))
	f.graph.Formats[pack12.ID] = pack12
	f.graph.Reindex()

	_, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)
	sableCostBefore := sable.CostPerUnit

	// Touching flour must not reprice the butter chain.
	cs, err := f.engine.Recompute(context.Background(), f.flour.ID, KindPurchase)
	require.NoError(t, err)

	require.Len(t, cs.Formats, 1)
	assert.Equal(t, f.pack6.ID, cs.Formats[0].ID)
	assert.True(t, sable.CostPerUnit.Equal(sableCostBefore))
}

func TestRecompute_PackagingChangeRepricesItsFormats(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)

	f.bag.UnitCost = types.MustMoney("1.80")

	cs, err := f.engine.Recompute(context.Background(), f.bag.ID, KindPackaging)
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	// cookies 0.081 + packaging 1.80 = 1.881
	assert.True(t, cs.Formats[0].Derived.TotalCost.Equal(types.MustMoney("1.881")),
		"total = %s", cs.Formats[0].Derived.TotalCost)
}

func TestRecompute_LossRateTouchesEveryFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)

	loss := lossrate.New("LOS-001", "Breakage", lossrate.LossBreakage,
		decimal.NewFromInt(10), lossrate.StageProduction)
	f.graph.LossRates[loss.ID] = loss

	cs, err := f.engine.Recompute(context.Background(), loss.ID, KindLossRate)
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	// base 1.281 + 10% = 1.4091
	assert.True(t, cs.Formats[0].Derived.CostLosses.Equal(types.MustMoney("0.1281")),
		"losses = %s", cs.Formats[0].Derived.CostLosses)
	assert.True(t, cs.Formats[0].Derived.TotalCost.Equal(types.MustMoney("1.4091")),
		"total = %s", cs.Formats[0].Derived.TotalCost)
}

func TestRecompute_DeletedRecipeMarksFormatIncomplete(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)
	lastTotal := f.pack6.Derived.TotalCost

	f.cookie.MarkDeleted()

	cs, err := f.engine.Recompute(context.Background(), f.cookie.ID, KindRecipe)
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	got := cs.Formats[0]
	assert.True(t, got.Incomplete)
	assert.Equal(t, salesformat.StateFresh, got.State)
	// Last derived values survive until the reference is fixed.
	assert.True(t, got.Derived.TotalCost.Equal(lastTotal))
}

func TestRecompute_MissingIngredientFlowsThroughToFormat(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)

	f.flour.MarkDeleted()

	cs, err := f.engine.Recompute(context.Background(), f.flour.ID, KindIngredient)
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	assert.True(t, f.cookie.Incomplete)
	assert.True(t, cs.Formats[0].Incomplete)
	assert.Equal(t, salesformat.StateFresh, cs.Formats[0].State)
}

func TestRecompute_NoFormatLeftStale(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Recompute(context.Background(), f.flour.ID, KindIngredient)
	require.NoError(t, err)

	for _, format := range f.graph.Formats {
		assert.Equal(t, salesformat.StateFresh, format.State,
			"format %s left in %s", format.Code, format.State)
	}
}

func TestRecomputeAll_PricesEverythingFromScratch(t *testing.T) {
	f := newFixture(t)

	cs, err := f.engine.RecomputeAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cs.Formats, 1)

	assert.True(t, f.flour.PricePerUnit.Equal(types.MustMoney("0.9")))
	assert.True(t, cs.Formats[0].Derived.TotalCost.Equal(types.MustMoney("1.281")))
	assert.Equal(t, salesformat.StateFresh, cs.Formats[0].State)
}
