package propagation

import (
	"context"

	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/domain/catalogs/overhead"
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/domain/catalogs/recipe"
	"fournil/internal/domain/catalogs/salesformat"
	"fournil/internal/domain/records/purchase"
	"fournil/pkg/logger"
)

// Loader materializes the full entity snapshot the engine works on.
// Soft-deleted entities are loaded too: the engine needs them to decide
// which dependents go Incomplete.
type Loader struct {
	Ingredients ingredient.Repository
	Purchases   purchase.Repository
	Recipes     recipe.Repository
	Packaging   packaging.Repository
	Overheads   overhead.Repository
	LossRates   lossrate.Repository
	Formats     salesformat.Repository
}

// everything lists a whole collection, deleted entities included.
func everything() domain.ListFilter {
	return domain.ListFilter{IncludeDeleted: true, OrderBy: "code"}
}

// Load builds and indexes a fresh graph snapshot.
func (l *Loader) Load(ctx context.Context) (*Graph, error) {
	g := NewGraph()

	ings, err := l.Ingredients.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, ing := range ings.Items {
		g.Ingredients[ing.ID] = ing
	}

	purchases, err := l.Purchases.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range purchases {
		g.Purchases[rec.IngredientID] = append(g.Purchases[rec.IngredientID], rec)
	}

	recipes, err := l.Recipes.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, r := range recipes.Items {
		g.Recipes[r.ID] = r
	}

	packs, err := l.Packaging.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, p := range packs.Items {
		g.Packaging[p.ID] = p
	}

	charges, err := l.Overheads.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, c := range charges.Items {
		g.Charges[c.ID] = c
	}

	rates, err := l.LossRates.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, rate := range rates.Items {
		g.LossRates[rate.ID] = rate
	}

	formats, err := l.Formats.List(ctx, everything())
	if err != nil {
		return nil, err
	}
	for _, f := range formats.Items {
		g.Formats[f.ID] = f
	}

	g.Reindex()

	logger.Info(ctx, "graph snapshot loaded",
		"ingredients", len(g.Ingredients),
		"recipes", len(g.Recipes),
		"packaging", len(g.Packaging),
		"charges", len(g.Charges),
		"loss_rates", len(g.LossRates),
		"formats", len(g.Formats))

	return g, nil
}
