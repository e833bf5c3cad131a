// Package costing implements the cost-cascade formulas: unit cost
// resolution, recipe/packaging/overhead/loss costing and sales-format
// pricing. Every function is pure; derived fields are written by callers.
package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/records/purchase"
)

// UnitCost is the resolved current price of one ingredient.
type UnitCost struct {
	// PricePerUnit is the price of one PricedUnit
	PricePerUnit types.Money

	// PricePerGram is set only for mass-class ingredients
	PricePerGram types.Money

	// PricedUnit is the ingredient's purchase unit
	PricedUnit measure.Unit

	// NoPurchaseData marks zero cost due to an empty purchase history
	NoPurchaseData bool

	// InsufficientData marks zero cost due to a zero aggregate quantity
	InsufficientData bool
}

// ResolveUnitCost derives the current price-per-unit of an ingredient as the
// weighted average over its full purchase history: total money paid divided
// by total quantity bought, with every record first normalized onto the
// ingredient's purchase unit. Mixed kg/g entries therefore average
// correctly; cross-class records (e.g. liters for a mass ingredient) fail.
//
// With no purchase records the ingredient costs zero and is flagged
// NoPurchaseData; that is a valid, displayable state, not an error.
func ResolveUnitCost(ing *ingredient.Ingredient, purchases []*purchase.Record) (UnitCost, error) {
	cost := UnitCost{PricedUnit: ing.PurchaseUnit}

	if len(purchases) == 0 {
		cost.NoPurchaseData = true
		return cost, nil
	}

	totalQty := decimal.Zero
	totalPaid := decimal.Zero

	for _, rec := range purchases {
		if !rec.Quantity.IsPositive() {
			return UnitCost{}, apperror.NewInvalidQuantity("quantity", rec.Quantity.String()).
				WithDetail("purchase_id", rec.ID.String())
		}

		qty, err := measure.Convert(rec.Quantity, rec.Unit, ing.PurchaseUnit)
		if err != nil {
			return UnitCost{}, err
		}

		totalQty = totalQty.Add(qty)
		totalPaid = totalPaid.Add(rec.TotalPrice)
	}

	// Guard the aggregate anyway: a zero divisor must yield a flagged zero
	// cost, never NaN or Infinity leaking into downstream formulas.
	if !totalQty.IsPositive() {
		cost.InsufficientData = true
		return cost, nil
	}

	cost.PricePerUnit = totalPaid.Div(totalQty)

	if measure.IsMass(ing.PurchaseUnit) {
		// Price of one purchase unit spread over its gram equivalent.
		grams, err := measure.Convert(decimal.NewFromInt(1), ing.PurchaseUnit, measure.Gram)
		if err != nil {
			return UnitCost{}, err
		}
		cost.PricePerGram = cost.PricePerUnit.Div(grams)
	}

	return cost, nil
}

// ApplyUnitCost writes a resolved unit cost into the ingredient's derived
// fields.
func ApplyUnitCost(ing *ingredient.Ingredient, cost UnitCost) {
	ing.PricePerUnit = cost.PricePerUnit
	ing.PricePerGram = cost.PricePerGram
	ing.NoPurchaseData = cost.NoPurchaseData || cost.InsufficientData
}
