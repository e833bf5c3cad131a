package costing

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
	"fournil/internal/domain/records/purchase"
)

func buy(ingID id.ID, qty string, unit measure.Unit, total string) *purchase.Record {
	return purchase.New(
		ingID,
		"Moulin Dupont",
		decimal.RequireFromString(qty),
		unit,
		types.MustMoney(total),
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	)
}

func TestResolveUnitCost_SinglePurchase(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)

	// 5 kg for 4.50 -> 0.90 per kg
	cost, err := ResolveUnitCost(flour, []*purchase.Record{
		buy(flour.ID, "5", measure.Kilogram, "4.50"),
	})
	require.NoError(t, err)

	assert.True(t, cost.PricePerUnit.Equal(types.MustMoney("0.9")),
		"price per kg = %s", cost.PricePerUnit)
	assert.True(t, cost.PricePerGram.Equal(types.MustMoney("0.0009")),
		"price per gram = %s", cost.PricePerGram)
	assert.False(t, cost.NoPurchaseData)
	assert.False(t, cost.InsufficientData)
}

func TestResolveUnitCost_WeightedAverageAcrossPurchases(t *testing.T) {
	sugar := ingredient.New("ING-002", "Cane sugar", ingredient.CategorySugar, measure.Kilogram)

	// 2 kg at 3.00 + 8 kg at 8.00 -> 11.00 / 10 kg = 1.10 per kg.
	// The average is weighted by quantity, not a mean of unit prices.
	cost, err := ResolveUnitCost(sugar, []*purchase.Record{
		buy(sugar.ID, "2", measure.Kilogram, "3.00"),
		buy(sugar.ID, "8", measure.Kilogram, "8.00"),
	})
	require.NoError(t, err)

	assert.True(t, cost.PricePerUnit.Equal(types.MustMoney("1.1")),
		"price per kg = %s", cost.PricePerUnit)
}

func TestResolveUnitCost_NormalizesMixedUnits(t *testing.T) {
	cocoa := ingredient.New("ING-003", "Cocoa powder", ingredient.CategoryChocolate, measure.Kilogram)

	// 1 kg for 10.00 plus 500 g for 4.00 -> 14.00 / 1.5 kg
	cost, err := ResolveUnitCost(cocoa, []*purchase.Record{
		buy(cocoa.ID, "1", measure.Kilogram, "10.00"),
		buy(cocoa.ID, "500", measure.Gram, "4.00"),
	})
	require.NoError(t, err)

	want := types.MustMoney("14").Div(types.MustMoney("1.5"))
	assert.True(t, cost.PricePerUnit.Equal(want),
		"price per kg = %s, want %s", cost.PricePerUnit, want)
}

func TestResolveUnitCost_NoPurchases(t *testing.T) {
	vanilla := ingredient.New("ING-004", "Vanilla pods", ingredient.CategoryOther, measure.Piece)

	cost, err := ResolveUnitCost(vanilla, nil)
	require.NoError(t, err)

	assert.True(t, cost.PricePerUnit.IsZero())
	assert.True(t, cost.NoPurchaseData)
}

func TestResolveUnitCost_RejectsZeroQuantity(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)
	rec := buy(flour.ID, "5", measure.Kilogram, "4.50")
	rec.Quantity = decimal.Zero

	_, err := ResolveUnitCost(flour, []*purchase.Record{rec})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInvalidQuantity))
}

func TestResolveUnitCost_RejectsCrossClassPurchase(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)

	_, err := ResolveUnitCost(flour, []*purchase.Record{
		buy(flour.ID, "2", measure.Liter, "4.50"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeUnitMismatch))
}

func TestResolveUnitCost_CountIngredientHasNoGramPrice(t *testing.T) {
	eggs := ingredient.New("ING-005", "Eggs", ingredient.CategoryDairy, measure.Piece)

	cost, err := ResolveUnitCost(eggs, []*purchase.Record{
		buy(eggs.ID, "30", measure.Piece, "9.00"),
	})
	require.NoError(t, err)

	assert.True(t, cost.PricePerUnit.Equal(types.MustMoney("0.3")))
	assert.True(t, cost.PricePerGram.IsZero())
}

func TestApplyUnitCost(t *testing.T) {
	flour := ingredient.New("ING-001", "Flour T55", ingredient.CategoryFlour, measure.Kilogram)

	ApplyUnitCost(flour, UnitCost{
		PricePerUnit: types.MustMoney("0.9"),
		PricePerGram: types.MustMoney("0.0009"),
	})
	assert.True(t, flour.PricePerUnit.Equal(types.MustMoney("0.9")))
	assert.False(t, flour.NoPurchaseData)

	ApplyUnitCost(flour, UnitCost{InsufficientData: true})
	assert.True(t, flour.PricePerUnit.IsZero())
	assert.True(t, flour.NoPurchaseData)
}
