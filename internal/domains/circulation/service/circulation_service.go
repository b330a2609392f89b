package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	catalogModel "library-backend/internal/domains/catalog/model"
	catalogRepo "library-backend/internal/domains/catalog/repository"
	"library-backend/internal/domains/circulation/model"
	"library-backend/internal/domains/circulation/repository"
	patronModel "library-backend/internal/domains/patron/model"
	patronRepo "library-backend/internal/domains/patron/repository"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"
)

// CirculationService orchestrates borrow and return. It is the only
// component that mutates the cross-entity counters, and it performs the
// three effects of each operation as one transaction.
type CirculationService struct {
	txManager   TxManager
	catalogRepo catalogRepo.RepositoryInterface
	patronRepo  patronRepo.RepositoryInterface
	loanRepo    repository.RepositoryInterface
	cache       cache.Cache

	defaultDurationDays int
	now                 func() time.Time
}

func NewService(
	txManager TxManager,
	catalogRepo catalogRepo.RepositoryInterface,
	patronRepo patronRepo.RepositoryInterface,
	loanRepo repository.RepositoryInterface,
	cache cache.Cache,
	defaultDurationDays int,
) ServiceInterface {
	if defaultDurationDays <= 0 {
		defaultDurationDays = model.DefaultDurationDays
	}

	return &CirculationService{
		txManager:           txManager,
		catalogRepo:         catalogRepo,
		patronRepo:          patronRepo,
		loanRepo:            loanRepo,
		cache:               cache,
		defaultDurationDays: defaultDurationDays,
		now:                 time.Now,
	}
}

// Borrow checks the preconditions against current state, then applies the
// three effects atomically: decrement availability, increment the patron's
// loan counter, insert the loan. The prechecks keep the common failure
// paths cheap; the conditional updates inside the transaction are the
// authoritative guards, so two borrowers racing for the last copy cannot
// both succeed.
func (s *CirculationService) Borrow(ctx context.Context, patronID, itemID uuid.UUID, durationDays int) (*model.Loan, error) {
	if durationDays <= 0 {
		durationDays = s.defaultDurationDays
	}

	patron, err := s.patronRepo.GetByID(ctx, patronID)
	if err != nil {
		return nil, err
	}
	if !patron.CanBorrow() {
		return nil, model.ErrBorrowLimitExceeded
	}

	item, err := s.catalogRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Available <= 0 {
		return nil, model.ErrItemUnavailable
	}

	now := s.now()
	loan := &model.Loan{
		ID:         uuid.New(),
		PatronID:   patronID,
		ItemID:     itemID,
		BorrowedAt: now,
		DueAt:      now.AddDate(0, 0, durationDays),
		Status:     model.LoanStatusActive,
	}

	err = s.txManager(ctx, func(tx pgx.Tx) error {
		if err := s.catalogRepo.AdjustAvailability(ctx, tx, itemID, -1); err != nil {
			if errors.Is(err, catalogModel.ErrAvailabilityBounds) {
				// A concurrent borrow took the last copy first.
				return model.ErrItemUnavailable
			}
			return err
		}

		if err := s.patronRepo.AdjustActiveLoanCount(ctx, tx, patronID, +1); err != nil {
			if errors.Is(err, patronModel.ErrLoanCountBounds) {
				// A concurrent borrow filled the patron's last slot first.
				return model.ErrBorrowLimitExceeded
			}
			return err
		}

		return s.loanRepo.Create(ctx, tx, loan)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateAvailabilityCache(ctx)

	logger.Info("loan created", map[string]interface{}{
		"loan_id":   loan.ID,
		"patron_id": patronID,
		"item_id":   itemID,
		"due_at":    loan.DueAt,
	})

	return loan, nil
}

// Return transitions the loan active -> returned and reverses the two
// counters, atomically. The conditional MarkReturned inside the
// transaction guarantees the counters are adjusted exactly once even when
// two returns race.
func (s *CirculationService) Return(ctx context.Context, loanID uuid.UUID) (*model.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if !loan.IsActive() {
		return nil, model.ErrAlreadyReturned
	}

	returnedAt := s.now()

	err = s.txManager(ctx, func(tx pgx.Tx) error {
		if err := s.loanRepo.MarkReturned(ctx, tx, loanID, returnedAt); err != nil {
			return err
		}

		if err := s.catalogRepo.AdjustAvailability(ctx, tx, loan.ItemID, +1); err != nil {
			return err
		}

		return s.patronRepo.AdjustActiveLoanCount(ctx, tx, loan.PatronID, -1)
	})
	if err != nil {
		return nil, err
	}

	loan.Status = model.LoanStatusReturned
	loan.ReturnedAt = &returnedAt

	s.invalidateAvailabilityCache(ctx)
	s.invalidateOverdueSnapshot(ctx)

	logger.Info("loan returned", map[string]interface{}{
		"loan_id":   loan.ID,
		"patron_id": loan.PatronID,
		"item_id":   loan.ItemID,
	})

	return loan, nil
}

func (s *CirculationService) GetLoan(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// Cache invalidation is best effort: a stale availability listing corrects
// itself when the TTL lapses, while a failed borrow would not.
func (s *CirculationService) invalidateAvailabilityCache(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, shared.AvailableItemsCachePrefix+"*"); err != nil {
		logger.Warn("failed to invalidate availability cache", err)
	}
}

// invalidateOverdueSnapshot bumps the snapshot epoch, so the returned loan
// vanishes from the overdue listing immediately. Deleting the snapshot key
// would not survive a report refresh that computed its entries before this
// return committed; re-keying orphans such a write.
func (s *CirculationService) invalidateOverdueSnapshot(ctx context.Context) {
	if err := s.cache.Set(ctx, shared.OverdueReportEpochKey, uuid.NewString(), 0); err != nil {
		logger.Warn("failed to invalidate overdue report cache", err)
	}
}
