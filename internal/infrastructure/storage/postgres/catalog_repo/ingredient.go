package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"fournil/internal/domain"
	"fournil/internal/domain/catalogs/ingredient"
	"fournil/internal/infrastructure/storage/postgres"
)

const ingredientTable = "cat_ingredients"

// IngredientRepo implements ingredient.Repository.
type IngredientRepo struct {
	*BaseCatalogRepo[*ingredient.Ingredient]
}

// NewIngredientRepo creates a new ingredient repository.
func NewIngredientRepo(txm *postgres.TxManager) *IngredientRepo {
	return &IngredientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			ingredientTable,
			postgres.ExtractDBColumns[ingredient.Ingredient](),
			func() *ingredient.Ingredient { return &ingredient.Ingredient{} },
		),
	}
}

// UpdateDerived writes only the engine-computed price columns, without
// bumping the optimistic-lock version.
func (r *IngredientRepo) UpdateDerived(ctx context.Context, ing *ingredient.Ingredient) error {
	q := r.Builder().
		Update(ingredientTable).
		Set("price_per_unit", ing.PricePerUnit).
		Set("price_per_gram", ing.PricePerGram).
		Set("no_purchase_data", ing.NoPurchaseData).
		Where(squirrel.Eq{"id": ing.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update derived: %w", err)
	}

	if _, err := r.Querier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("update derived %s: %w", ingredientTable, err)
	}
	return nil
}

// FindLowStock retrieves active ingredients whose stock fell below the
// configured minimum. Ingredients with a zero minimum are never reported.
func (r *IngredientRepo) FindLowStock(ctx context.Context, f domain.ListFilter) (domain.ListResult[*ingredient.Ingredient], error) {
	result := domain.ListResult[*ingredient.Ingredient]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.baseSelect().
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Gt{"stock_min": 0}).
		Where(squirrel.Expr("stock_qty < stock_min")).
		OrderBy("name ASC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, r.Querier(ctx), &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("find low stock: %w", err)
	}

	result.TotalCount = int64(len(result.Items))
	return result, nil
}
