package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	catalogModel "library-backend/internal/domains/catalog/model"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	circulationModel "library-backend/internal/domains/circulation/model"
	circulationRepo "library-backend/internal/domains/circulation/repository"
	patronRepo "library-backend/internal/domains/patron/repository"
	"library-backend/internal/domains/reporting/model"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

const (
	availableListCacheTTL = 1 * time.Minute
	overdueReportCacheTTL = 2 * time.Minute
)

// ReportingService joins the three repositories into read-only listings.
type ReportingService struct {
	catalogRepo catalogRepo.RepositoryInterface
	patronRepo  patronRepo.RepositoryInterface
	loanRepo    circulationRepo.RepositoryInterface
	cache       cache.Cache
}

func NewService(
	catalogRepo catalogRepo.RepositoryInterface,
	patronRepo patronRepo.RepositoryInterface,
	loanRepo circulationRepo.RepositoryInterface,
	cache cache.Cache,
) ServiceInterface {
	return &ReportingService{
		catalogRepo: catalogRepo,
		patronRepo:  patronRepo,
		loanRepo:    loanRepo,
		cache:       cache,
	}
}

func (s *ReportingService) ListAvailable(ctx context.Context, filter catalogModel.Filter) ([]catalogModel.CatalogItem, error) {
	cacheKey := availableListCacheKey(filter)

	var cached []catalogModel.CatalogItem
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("availability cache read failed", err)
	}
	if found {
		return cached, nil
	}

	items, err := s.catalogRepo.List(ctx, filter, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, items, availableListCacheTTL); err != nil {
		logger.Warn("availability cache write failed", err)
	}

	return items, nil
}

func (s *ReportingService) GetPatronHistory(ctx context.Context, patronID uuid.UUID) ([]model.HistoryEntry, error) {
	// Existence check first so an unknown patron is distinguishable from
	// a patron with no loans.
	if _, err := s.patronRepo.GetByID(ctx, patronID); err != nil {
		return nil, err
	}

	loans, err := s.loanRepo.ListByPatron(ctx, patronID)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.GetByIDs(ctx, itemIDs(loans))
	if err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(loans))
	for _, loan := range loans {
		item, ok := items[loan.ItemID]
		if !ok {
			// Items are never deleted, so a dangling reference means the
			// store is inconsistent. Surface it instead of hiding the row.
			return nil, fmt.Errorf("loan %s references missing item %s", loan.ID, loan.ItemID)
		}

		entries = append(entries, model.HistoryEntry{
			ItemTitle:  item.Title,
			BorrowedAt: loan.BorrowedAt,
			DueAt:      loan.DueAt,
			ReturnedAt: loan.ReturnedAt,
			Status:     loan.Status,
		})
	}

	return entries, nil
}

func (s *ReportingService) GetOverdueLoans(ctx context.Context, now time.Time) ([]model.OverdueEntry, error) {
	// The key must be resolved before computing: a return committing
	// after this point bumps the epoch, leaving this write under a key
	// no later reader consults.
	cacheKey := s.overdueSnapshotKey(ctx)

	var cached []model.OverdueEntry
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		logger.Warn("overdue report cache read failed", err)
	}
	if found {
		return cached, nil
	}

	entries, err := s.computeOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, entries, overdueReportCacheTTL); err != nil {
		logger.Warn("overdue report cache write failed", err)
	}

	return entries, nil
}

// RefreshOverdueReport recomputes the overdue listing and replaces the
// cached snapshot. The worker calls this periodically so API reads mostly
// hit the cache.
func (s *ReportingService) RefreshOverdueReport(ctx context.Context, now time.Time) (int, error) {
	cacheKey := s.overdueSnapshotKey(ctx)

	entries, err := s.computeOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	if err := s.cache.Set(ctx, cacheKey, entries, overdueReportCacheTTL); err != nil {
		return 0, err
	}

	return len(entries), nil
}

// overdueSnapshotKey resolves the key the current overdue snapshot lives
// under. Every return bumps the epoch token, which orphans any snapshot
// written by a computation that started before the return.
func (s *ReportingService) overdueSnapshotKey(ctx context.Context) string {
	var epoch string
	found, err := s.cache.Get(ctx, shared.OverdueReportEpochKey, &epoch)
	if err != nil {
		logger.Warn("overdue report epoch read failed", err)
	}
	if !found || epoch == "" {
		return shared.OverdueReportCacheKey
	}
	return shared.OverdueReportCacheKey + ":" + epoch
}

func (s *ReportingService) computeOverdue(ctx context.Context, now time.Time) ([]model.OverdueEntry, error) {
	loans, err := s.loanRepo.ListActiveOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	items, err := s.catalogRepo.GetByIDs(ctx, itemIDs(loans))
	if err != nil {
		return nil, err
	}

	patrons, err := s.patronRepo.GetByIDs(ctx, patronIDs(loans))
	if err != nil {
		return nil, err
	}

	entries := make([]model.OverdueEntry, 0, len(loans))
	for _, loan := range loans {
		item, itemOK := items[loan.ItemID]
		patron, patronOK := patrons[loan.PatronID]
		if !itemOK || !patronOK {
			return nil, fmt.Errorf("loan %s references missing item or patron", loan.ID)
		}

		entries = append(entries, model.OverdueEntry{
			ItemTitle:   item.Title,
			PatronName:  patron.Name,
			PatronEmail: patron.Email,
			BorrowedAt:  loan.BorrowedAt,
			DueAt:       loan.DueAt,
		})
	}

	return entries, nil
}

func availableListCacheKey(filter catalogModel.Filter) string {
	return fmt.Sprintf("%s%s|%s|%s",
		shared.AvailableItemsCachePrefix, filter.Title, filter.Author, filter.ISBNPrefix)
}

func itemIDs(loans []circulationModel.Loan) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(loans))
	ids := make([]uuid.UUID, 0, len(loans))
	for _, loan := range loans {
		if _, ok := seen[loan.ItemID]; ok {
			continue
		}
		seen[loan.ItemID] = struct{}{}
		ids = append(ids, loan.ItemID)
	}
	return ids
}

func patronIDs(loans []circulationModel.Loan) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(loans))
	ids := make([]uuid.UUID, 0, len(loans))
	for _, loan := range loans {
		if _, ok := seen[loan.PatronID]; ok {
			continue
		}
		seen[loan.PatronID] = struct{}{}
		ids = append(ids, loan.PatronID)
	}
	return ids
}
