package service

import (
	"context"

	"github.com/google/uuid"

	"library-backend/internal/domains/circulation/model"
)

// ServiceInterface is the circulation business logic contract.
type ServiceInterface interface {
	// Borrow lends one copy of the item to the patron for durationDays
	// (the default duration when zero). Returns the created loan.
	Borrow(ctx context.Context, patronID, itemID uuid.UUID, durationDays int) (*model.Loan, error)

	// Return closes the loan and gives the copy back to the shelf.
	Return(ctx context.Context, loanID uuid.UUID) (*model.Loan, error)

	// GetLoan returns the loan or model.ErrLoanNotFound.
	GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error)
}
