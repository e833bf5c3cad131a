package costing

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/id"
	"fournil/internal/core/measure"
	"fournil/internal/core/types"
	"fournil/internal/domain/catalogs/recipe"
)

// IngredientPrice is one row of the price table the recipe coster reads.
type IngredientPrice struct {
	PricePerUnit types.Money
	Unit         measure.Unit
}

// PriceTable maps ingredient ids to their current resolved prices.
type PriceTable map[id.ID]IngredientPrice

// RecipeCost is the derived cost of one recipe batch.
type RecipeCost struct {
	// TotalCost of one batch: ingredient lines plus oven energy
	TotalCost types.Money

	// CostPerUnit is TotalCost / units produced per batch
	CostPerUnit types.Money

	// Incomplete is set when a line references a missing ingredient;
	// the cost then covers only the resolvable lines and must not be
	// treated as authoritative.
	Incomplete bool

	// MissingIngredients lists the dangling references behind Incomplete.
	MissingIngredients []id.ID
}

// CostRecipe aggregates line costs into per-batch and per-unit figures.
// Line quantities are converted into the unit each ingredient is priced in.
// A dangling ingredient reference marks the cost Incomplete instead of
// failing, so one broken recipe cannot take down pricing of unrelated
// formats; unit conversion across measurement classes is still a hard error.
func CostRecipe(r *recipe.Recipe, prices PriceTable) (RecipeCost, error) {
	if r.UnitsPerBatch <= 0 {
		return RecipeCost{}, apperror.NewValidation("units per batch must be positive").
			WithDetail("field", "unitsPerBatch").
			WithDetail("value", r.UnitsPerBatch)
	}

	cost := RecipeCost{}
	total := decimal.Zero

	for _, line := range r.Lines {
		price, ok := prices[line.IngredientID]
		if !ok {
			cost.Incomplete = true
			cost.MissingIngredients = append(cost.MissingIngredients, line.IngredientID)
			continue
		}

		qty, err := measure.Convert(line.Quantity, line.Unit, price.Unit)
		if err != nil {
			return RecipeCost{}, err
		}

		total = total.Add(qty.Mul(price.PricePerUnit))
	}

	total = total.Add(r.OvenEnergyCost)

	cost.TotalCost = total
	cost.CostPerUnit = total.Div(decimal.NewFromInt(int64(r.UnitsPerBatch)))
	return cost, nil
}

// ApplyRecipeCost writes a derived cost into the recipe's derived fields.
func ApplyRecipeCost(r *recipe.Recipe, cost RecipeCost) {
	r.TotalIngredientCost = cost.TotalCost
	r.CostPerUnit = cost.CostPerUnit
	r.Incomplete = cost.Incomplete
}
