package lossrate

import (
	"fournil/internal/core/tx"
	"fournil/internal/domain"
)

// Repository defines the interface for LossRate persistence.
type Repository interface {
	domain.CatalogRepository[*LossRate]
}

// Service provides business logic for the Loss Rate catalog.
type Service struct {
	*domain.CatalogService[*LossRate]
	repo Repository
}

// NewService creates a new LossRate service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*LossRate]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "loss rate",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
