package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"fournil/internal/core/id"
	"fournil/internal/domain/catalogs/promotion"
	"fournil/internal/infrastructure/storage/postgres"
)

const promotionTable = "cat_promotions"

// PromotionRepo implements promotion.Repository.
type PromotionRepo struct {
	*BaseCatalogRepo[*promotion.Promotion]
}

// NewPromotionRepo creates a new promotion repository.
func NewPromotionRepo(txm *postgres.TxManager) *PromotionRepo {
	return &PromotionRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			promotionTable,
			postgres.ExtractDBColumns[promotion.Promotion](),
			func() *promotion.Promotion { return &promotion.Promotion{} },
		),
	}
}

// ListForFormat returns the active, non-deleted promotions of one format.
// Validity-window filtering stays in the domain layer.
func (r *PromotionRepo) ListForFormat(ctx context.Context, formatID id.ID) ([]*promotion.Promotion, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"format_id": formatID}).
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("code")

	return r.FindMany(ctx, q)
}
