package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/reporting/model"
)

// ServiceInterface is the read-only reporting contract. Nothing in this
// package mutates repository state.
type ServiceInterface interface {
	// ListAvailable lists catalog items with at least one free copy,
	// narrowed by the filter.
	ListAvailable(ctx context.Context, filter catalogModel.Filter) ([]catalogModel.CatalogItem, error)

	// GetPatronHistory returns every loan of the patron joined with its
	// item, most recent first. Fails with patron model.ErrPatronNotFound
	// when the patron does not exist.
	GetPatronHistory(ctx context.Context, patronID uuid.UUID) ([]model.HistoryEntry, error)

	// GetOverdueLoans returns every active loan past due at the given
	// instant, joined with item and patron.
	GetOverdueLoans(ctx context.Context, now time.Time) ([]model.OverdueEntry, error)

	// RefreshOverdueReport recomputes the overdue listing and replaces the
	// cached snapshot, returning the number of overdue loans.
	RefreshOverdueReport(ctx context.Context, now time.Time) (int, error)
}
