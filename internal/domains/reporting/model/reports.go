package model

import (
	"time"

	circulationModel "library-backend/internal/domains/circulation/model"
)

// HistoryEntry is one row of a patron's borrowing history, joined with the
// catalog item it refers to.
type HistoryEntry struct {
	ItemTitle  string                      `json:"item_title"`
	BorrowedAt time.Time                   `json:"borrowed_at"`
	DueAt      time.Time                   `json:"due_at"`
	ReturnedAt *time.Time                  `json:"returned_at,omitempty"`
	Status     circulationModel.LoanStatus `json:"status"`
}

// OverdueEntry is one row of the overdue listing: an active loan past its
// due date, joined with item and patron.
type OverdueEntry struct {
	ItemTitle   string    `json:"item_title"`
	PatronName  string    `json:"patron_name"`
	PatronEmail string    `json:"patron_email"`
	BorrowedAt  time.Time `json:"borrowed_at"`
	DueAt       time.Time `json:"due_at"`
}
