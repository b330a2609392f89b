package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/catalog/model"
	"library-backend/pkg/database"
)

// RepositoryInterface is the catalog storage contract.
type RepositoryInterface interface {
	// Create inserts the item. Fails with model.ErrDuplicateISBN when the
	// ISBN is already registered.
	Create(ctx context.Context, item *model.CatalogItem) error

	// GetByID returns the item or model.ErrItemNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error)

	// GetByIDs returns the items for the given ids, keyed by id. Missing
	// ids are simply absent from the result.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CatalogItem, error)

	// List returns items matching the filter, restricted to available > 0
	// when availableOnly is set. No ordering is guaranteed.
	List(ctx context.Context, filter model.Filter, availableOnly bool) ([]model.CatalogItem, error)

	// AdjustAvailability applies available += delta on q, but only when the
	// result stays within [0, quantity]. An out-of-bounds result yields
	// model.ErrAvailabilityBounds and leaves the row untouched. q lets the
	// caller run the update inside a wider transaction.
	AdjustAvailability(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error
}
