package packaging

import (
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Repository defines the interface for Packaging persistence.
type Repository interface {
	domain.CatalogRepository[*Packaging]
}

// Service provides business logic for the Packaging catalog.
type Service struct {
	*domain.CatalogService[*Packaging]
	repo Repository
}

// NewService creates a new Packaging service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Packaging]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "packaging",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
