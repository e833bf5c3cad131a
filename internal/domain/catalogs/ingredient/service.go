package ingredient

import (
	"context"

	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Service provides business logic for the Ingredient catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Ingredient]
	repo Repository
}

// NewService creates a new Ingredient service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Ingredient]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "ingredient",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// FindLowStock retrieves ingredients with stock below minimum.
func (s *Service) FindLowStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Ingredient], error) {
	return s.repo.FindLowStock(ctx, filter)
}
