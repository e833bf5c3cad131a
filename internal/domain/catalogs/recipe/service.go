package recipe

import (
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Service provides business logic for the Recipe catalog.
type Service struct {
	*domain.CatalogService[*Recipe]
	repo Repository
}

// NewService creates a new Recipe service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Recipe]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "recipe",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
