package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"library-backend/internal/domains/circulation/model"
	"library-backend/pkg/database"
)

// RepositoryInterface is the loan storage contract. Writes accept a Querier
// because the circulation service runs them inside its transaction.
type RepositoryInterface interface {
	// Create inserts the loan in status active.
	Create(ctx context.Context, q database.Querier, loan *model.Loan) error

	// GetByID returns the loan or model.ErrLoanNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)

	// MarkReturned transitions the loan active -> returned and sets the
	// return timestamp, conditioned on the loan still being active. A loan
	// already returned yields model.ErrAlreadyReturned.
	MarkReturned(ctx context.Context, q database.Querier, id uuid.UUID, returnedAt time.Time) error

	// ListByPatron returns every loan of the patron, most recent first.
	ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.Loan, error)

	// ListActiveOverdue returns every active loan whose due date lies
	// before now.
	ListActiveOverdue(ctx context.Context, now time.Time) ([]model.Loan, error)
}
