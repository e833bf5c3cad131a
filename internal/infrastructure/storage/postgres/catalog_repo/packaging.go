package catalog_repo

import (
	"fournil/internal/domain/catalogs/packaging"
	"fournil/internal/infrastructure/storage/postgres"
)

const packagingTable = "cat_packaging"

// PackagingRepo implements packaging.Repository.
type PackagingRepo struct {
	*BaseCatalogRepo[*packaging.Packaging]
}

// NewPackagingRepo creates a new packaging repository.
func NewPackagingRepo(txm *postgres.TxManager) *PackagingRepo {
	return &PackagingRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			packagingTable,
			postgres.ExtractDBColumns[packaging.Packaging](),
			func() *packaging.Packaging { return &packaging.Packaging{} },
		),
	}
}
