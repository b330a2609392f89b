package repository

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/patron/model"
	"library-backend/pkg/database"
)

// RepositoryInterface is the patron storage contract.
type RepositoryInterface interface {
	// Create inserts the patron. Fails with model.ErrDuplicateEmail when
	// the email is already registered.
	Create(ctx context.Context, patron *model.Patron) error

	// GetByID returns the patron or model.ErrPatronNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error)

	// GetByIDs returns the patrons for the given ids, keyed by id.
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Patron, error)

	// AdjustActiveLoanCount applies active_loans += delta on q, but only
	// when the result stays within [0, MaxActiveLoans]. Out of bounds
	// yields model.ErrLoanCountBounds and leaves the row untouched.
	AdjustActiveLoanCount(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error
}
