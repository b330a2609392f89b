package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxActiveLoans is the hard limit on simultaneously open loans per patron.
const MaxActiveLoans = 5

// Patron is a registered person eligible to borrow items. ActiveLoans
// counts the loans currently open and must stay within [0, MaxActiveLoans].
type Patron struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	RegisteredAt time.Time `json:"registered_at"`
	ActiveLoans  int       `json:"active_loans"`
}

// CanBorrow reports whether the patron is below the loan limit. The
// authoritative check happens in the conditional counter update; this is
// the fast-path precheck.
func (p *Patron) CanBorrow() bool {
	return p.ActiveLoans < MaxActiveLoans
}
