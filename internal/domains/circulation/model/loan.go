package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanStatus is the loan state machine. The only transition is
// active -> returned, and it happens exactly once.
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
)

// DefaultDurationDays is the borrow duration applied when a request does
// not specify one.
const DefaultDurationDays = 14

// Loan records one copy lent to one patron for an interval. ReturnedAt is
// set exactly when Status is returned.
type Loan struct {
	ID         uuid.UUID  `json:"id"`
	PatronID   uuid.UUID  `json:"patron_id"`
	ItemID     uuid.UUID  `json:"item_id"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     LoanStatus `json:"status"`
}

// IsActive reports whether the loan is still open.
func (l *Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsOverdue reports whether the loan is open past its due date.
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.IsActive() && l.DueAt.Before(now)
}
