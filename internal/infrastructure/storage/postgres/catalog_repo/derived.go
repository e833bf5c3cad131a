package catalog_repo

import (
	"context"

	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
)

// DerivedStore bundles the derived-column writers the pricing service
// persists a propagation changeset through.
type DerivedStore struct {
	Ingredients *IngredientRepo
	Recipes     *RecipeRepo
	Formats     *SalesFormatRepo
}

// UpdateIngredientDerived writes an ingredient's resolved prices.
func (s *DerivedStore) UpdateIngredientDerived(ctx context.Context, ing *ingredient.Ingredient) error {
	return s.Ingredients.UpdateDerived(ctx, ing)
}

// UpdateRecipeDerived writes a recipe's computed costs.
func (s *DerivedStore) UpdateRecipeDerived(ctx context.Context, r *recipe.Recipe) error {
	return s.Recipes.UpdateDerived(ctx, r)
}

// UpdateFormatsDerived writes the derived pricing of every repriced format
// in one batched round-trip.
func (s *DerivedStore) UpdateFormatsDerived(ctx context.Context, formats []*salesformat.Format) error {
	return s.Formats.UpdateDerivedBatch(ctx, formats)
}
