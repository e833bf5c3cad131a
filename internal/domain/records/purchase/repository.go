package purchase

import (
	"context"

	"fournil/internal/core/id"
	"fournil/internal/domain"
)

// Repository defines the interface for purchase record persistence.
// Records are append-only: there is no update operation.
type Repository interface {
	// Create inserts a new purchase record
	Create(ctx context.Context, record *Record) error

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id id.ID) (*Record, error)

	// Delete removes a record (the only permitted mutation)
	Delete(ctx context.Context, id id.ID) error

	// ListByIngredient retrieves all records for one ingredient
	ListByIngredient(ctx context.Context, ingredientID id.ID) ([]*Record, error)

	// List retrieves records with pagination, newest purchase first
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Record], error)

	// ListAll retrieves every record (supplier analytics input)
	ListAll(ctx context.Context) ([]*Record, error)
}
