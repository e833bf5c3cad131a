package catalog_repo

import (
	"fournil/internal/domain/catalogs/lossrate"
	"fournil/internal/infrastructure/storage/postgres"
)

const lossRateTable = "cat_loss_rates"

// LossRateRepo implements lossrate.Repository.
type LossRateRepo struct {
	*BaseCatalogRepo[*lossrate.LossRate]
}

// NewLossRateRepo creates a new loss rate repository.
func NewLossRateRepo(txm *postgres.TxManager) *LossRateRepo {
	return &LossRateRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			lossRateTable,
			postgres.ExtractDBColumns[lossrate.LossRate](),
			func() *lossrate.LossRate { return &lossrate.LossRate{} },
		),
	}
}
