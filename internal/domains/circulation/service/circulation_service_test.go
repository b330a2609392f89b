package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogModel "library-backend/internal/domains/catalog/model"
	"library-backend/internal/domains/circulation/model"
	patronModel "library-backend/internal/domains/patron/model"
	"library-backend/internal/shared"
	"library-backend/pkg/database"
)

// fakeStore backs all three repository interfaces with in-memory maps and
// mirrors the conditional-update semantics of the postgres repositories.
type fakeStore struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	items   map[uuid.UUID]catalogModel.CatalogItem
	patrons map[uuid.UUID]patronModel.Patron
	loans   map[uuid.UUID]model.Loan

	failLoanCreate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:   map[uuid.UUID]catalogModel.CatalogItem{},
		patrons: map[uuid.UUID]patronModel.Patron{},
		loans:   map[uuid.UUID]model.Loan{},
	}
}

// txManager serializes transactions and restores a snapshot when the
// function fails, the way a rolled back database transaction would.
func (s *fakeStore) txManager(ctx context.Context, fn database.TxFunc) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	itemsSnap := copyMap(s.items)
	patronsSnap := copyMap(s.patrons)
	loansSnap := copyMap(s.loans)
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.items = itemsSnap
		s.patrons = patronsSnap
		s.loans = loansSnap
		s.mu.Unlock()
		return err
	}

	return nil
}

func copyMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// catalog repository

func (s *fakeStore) Create(ctx context.Context, item *catalogModel.CatalogItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = *item
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*catalogModel.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, catalogModel.ErrItemNotFound
	}
	return &item, nil
}

func (s *fakeStore) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalogModel.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := map[uuid.UUID]catalogModel.CatalogItem{}
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			result[id] = item
		}
	}
	return result, nil
}

func (s *fakeStore) List(ctx context.Context, filter catalogModel.Filter, availableOnly bool) ([]catalogModel.CatalogItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := []catalogModel.CatalogItem{}
	for _, item := range s.items {
		if availableOnly && item.Available <= 0 {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *fakeStore) AdjustAvailability(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return catalogModel.ErrItemNotFound
	}
	next := item.Available + delta
	if next < 0 || next > item.Quantity {
		return catalogModel.ErrAvailabilityBounds
	}
	item.Available = next
	s.items[id] = item
	return nil
}

// patron repository

func (s *fakeStore) CreatePatron(ctx context.Context, patron *patronModel.Patron) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patrons[patron.ID] = *patron
	return nil
}

func (s *fakeStore) GetPatronByID(ctx context.Context, id uuid.UUID) (*patronModel.Patron, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	patron, ok := s.patrons[id]
	if !ok {
		return nil, patronModel.ErrPatronNotFound
	}
	return &patron, nil
}

func (s *fakeStore) GetPatronsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]patronModel.Patron, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := map[uuid.UUID]patronModel.Patron{}
	for _, id := range ids {
		if patron, ok := s.patrons[id]; ok {
			result[id] = patron
		}
	}
	return result, nil
}

func (s *fakeStore) AdjustActiveLoanCount(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	patron, ok := s.patrons[id]
	if !ok {
		return patronModel.ErrPatronNotFound
	}
	next := patron.ActiveLoans + delta
	if next < 0 || next > patronModel.MaxActiveLoans {
		return patronModel.ErrLoanCountBounds
	}
	patron.ActiveLoans = next
	s.patrons[id] = patron
	return nil
}

// loan repository

func (s *fakeStore) CreateLoan(ctx context.Context, q database.Querier, loan *model.Loan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLoanCreate {
		return errors.New("storage unavailable")
	}
	s.loans[loan.ID] = *loan
	return nil
}

func (s *fakeStore) GetLoanByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return nil, model.ErrLoanNotFound
	}
	return &loan, nil
}

func (s *fakeStore) MarkReturned(ctx context.Context, q database.Querier, id uuid.UUID, returnedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return model.ErrLoanNotFound
	}
	if loan.Status != model.LoanStatusActive {
		return model.ErrAlreadyReturned
	}
	loan.Status = model.LoanStatusReturned
	loan.ReturnedAt = &returnedAt
	s.loans[id] = loan
	return nil
}

func (s *fakeStore) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loans := []model.Loan{}
	for _, loan := range s.loans {
		if loan.PatronID == patronID {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (s *fakeStore) ListActiveOverdue(ctx context.Context, now time.Time) ([]model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loans := []model.Loan{}
	for _, loan := range s.loans {
		if loan.Status == model.LoanStatusActive && loan.DueAt.Before(now) {
			loans = append(loans, loan)
		}
	}
	return loans, nil
}

func (s *fakeStore) activeLoansOnItem(itemID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, loan := range s.loans {
		if loan.ItemID == itemID && loan.Status == model.LoanStatusActive {
			count++
		}
	}
	return count
}

// adapters so fakeStore satisfies the patron and loan repository
// interfaces despite the overlapping method names.

type fakePatronRepo struct{ store *fakeStore }

func (r fakePatronRepo) Create(ctx context.Context, patron *patronModel.Patron) error {
	return r.store.CreatePatron(ctx, patron)
}

func (r fakePatronRepo) GetByID(ctx context.Context, id uuid.UUID) (*patronModel.Patron, error) {
	return r.store.GetPatronByID(ctx, id)
}

func (r fakePatronRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]patronModel.Patron, error) {
	return r.store.GetPatronsByIDs(ctx, ids)
}

func (r fakePatronRepo) AdjustActiveLoanCount(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	return r.store.AdjustActiveLoanCount(ctx, q, id, delta)
}

type fakeLoanRepo struct{ store *fakeStore }

func (r fakeLoanRepo) Create(ctx context.Context, q database.Querier, loan *model.Loan) error {
	return r.store.CreateLoan(ctx, q, loan)
}

func (r fakeLoanRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	return r.store.GetLoanByID(ctx, id)
}

func (r fakeLoanRepo) MarkReturned(ctx context.Context, q database.Querier, id uuid.UUID, returnedAt time.Time) error {
	return r.store.MarkReturned(ctx, q, id, returnedAt)
}

func (r fakeLoanRepo) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.Loan, error) {
	return r.store.ListByPatron(ctx, patronID)
}

func (r fakeLoanRepo) ListActiveOverdue(ctx context.Context, now time.Time) ([]model.Loan, error) {
	return r.store.ListActiveOverdue(ctx, now)
}

// fakeCache is a no-op cache.

type fakeCache struct{}

func (fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) { return false, nil }
func (fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (fakeCache) Ping(ctx context.Context) error { return nil }

// test fixtures

func newTestService(store *fakeStore) ServiceInterface {
	return NewService(
		store.txManager,
		store,
		fakePatronRepo{store},
		fakeLoanRepo{store},
		fakeCache{},
		0,
	)
}

func seedItem(store *fakeStore, quantity, available int) uuid.UUID {
	id := uuid.New()
	store.items[id] = catalogModel.CatalogItem{
		ID:        id,
		Title:     "Dune",
		Author:    "Herbert",
		ISBN:      "ISBN-1",
		Quantity:  quantity,
		Available: available,
		CreatedAt: time.Now(),
	}
	return id
}

func seedPatron(store *fakeStore, activeLoans int) uuid.UUID {
	id := uuid.New()
	store.patrons[id] = patronModel.Patron{
		ID:           id,
		Name:         "Alice",
		Email:        "alice@x.com",
		Phone:        "555-0100",
		RegisteredAt: time.Now(),
		ActiveLoans:  activeLoans,
	}
	return id
}

func Test_Borrow_Success(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 2, 2)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	loan, err := svc.Borrow(context.Background(), patronID, itemID, 14)

	require.NoError(t, err)
	assert.Equal(t, patronID, loan.PatronID)
	assert.Equal(t, itemID, loan.ItemID)
	assert.Equal(t, model.LoanStatusActive, loan.Status)
	assert.Nil(t, loan.ReturnedAt)
	assert.Equal(t, loan.BorrowedAt.AddDate(0, 0, 14), loan.DueAt)

	assert.Equal(t, 1, store.items[itemID].Available)
	assert.Equal(t, 1, store.patrons[patronID].ActiveLoans)
}

func Test_Borrow_DefaultDuration(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 1, 1)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	loan, err := svc.Borrow(context.Background(), patronID, itemID, 0)

	require.NoError(t, err)
	assert.Equal(t, loan.BorrowedAt.AddDate(0, 0, model.DefaultDurationDays), loan.DueAt)
}

func Test_Borrow_PatronNotFound(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 1, 1)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), uuid.New(), itemID, 14)

	assert.ErrorIs(t, err, patronModel.ErrPatronNotFound)
}

func Test_Borrow_ItemNotFound(t *testing.T) {
	store := newFakeStore()
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), patronID, uuid.New(), 14)

	assert.ErrorIs(t, err, catalogModel.ErrItemNotFound)
}

func Test_Borrow_LimitExceeded(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 3, 3)
	patronID := seedPatron(store, patronModel.MaxActiveLoans)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), patronID, itemID, 14)

	assert.ErrorIs(t, err, model.ErrBorrowLimitExceeded)
	assert.Equal(t, 3, store.items[itemID].Available, "availability must be untouched")
}

func Test_Borrow_ItemUnavailable(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 2, 0)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), patronID, itemID, 14)

	assert.ErrorIs(t, err, model.ErrItemUnavailable)
	assert.Equal(t, 0, store.patrons[patronID].ActiveLoans)
}

func Test_Borrow_ConcurrentLastCopy(t *testing.T) {
	const borrowers = 8

	store := newFakeStore()
	itemID := seedItem(store, 1, 1)
	svc := newTestService(store)

	patronIDs := make([]uuid.UUID, borrowers)
	for i := range patronIDs {
		patronIDs[i] = seedPatron(store, 0)
	}

	var wg sync.WaitGroup
	errs := make([]error, borrowers)

	for i := 0; i < borrowers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Borrow(context.Background(), patronIDs[i], itemID, 14)
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, model.ErrItemUnavailable)
		}
	}

	assert.Equal(t, 1, successes, "exactly one borrower may win the last copy")
	assert.Equal(t, 0, store.items[itemID].Available)
	assert.Equal(t, 1, store.activeLoansOnItem(itemID), "conservation: quantity - available = active loans")
}

func Test_Borrow_RolledBackOnLoanCreateFailure(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 2, 2)
	patronID := seedPatron(store, 0)
	store.failLoanCreate = true
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), patronID, itemID, 14)

	require.Error(t, err)
	assert.Equal(t, 2, store.items[itemID].Available, "availability decrement must be rolled back")
	assert.Equal(t, 0, store.patrons[patronID].ActiveLoans, "loan count increment must be rolled back")
	assert.Empty(t, store.loans)
}

func Test_Return_Success(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 2, 2)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	loan, err := svc.Borrow(context.Background(), patronID, itemID, 14)
	require.NoError(t, err)

	returned, err := svc.Return(context.Background(), loan.ID)

	require.NoError(t, err)
	assert.Equal(t, model.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)

	assert.Equal(t, 2, store.items[itemID].Available)
	assert.Equal(t, 0, store.patrons[patronID].ActiveLoans)

	stored := store.loans[loan.ID]
	assert.Equal(t, model.LoanStatusReturned, stored.Status)
	assert.NotNil(t, stored.ReturnedAt)
}

func Test_Return_TwiceFailsSecondTime(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 2, 2)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	loan, err := svc.Borrow(context.Background(), patronID, itemID, 14)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), loan.ID)
	require.NoError(t, err)

	_, err = svc.Return(context.Background(), loan.ID)
	assert.ErrorIs(t, err, model.ErrAlreadyReturned)

	// Counters adjusted exactly once.
	assert.Equal(t, 2, store.items[itemID].Available)
	assert.Equal(t, 0, store.patrons[patronID].ActiveLoans)
}

// recordingCache notes every Set so tests can observe invalidation.
type recordingCache struct {
	fakeCache
	mu      sync.Mutex
	setKeys []string
}

func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setKeys = append(c.setKeys, key)
	return nil
}

func Test_Return_RekeysOverdueSnapshot(t *testing.T) {
	store := newFakeStore()
	itemID := seedItem(store, 1, 1)
	patronID := seedPatron(store, 0)
	recorder := &recordingCache{}
	svc := NewService(store.txManager, store, fakePatronRepo{store}, fakeLoanRepo{store}, recorder, 0)

	loan, err := svc.Borrow(context.Background(), patronID, itemID, 14)
	require.NoError(t, err)
	assert.NotContains(t, recorder.setKeys, shared.OverdueReportEpochKey)

	_, err = svc.Return(context.Background(), loan.ID)
	require.NoError(t, err)

	assert.Contains(t, recorder.setKeys, shared.OverdueReportEpochKey,
		"a return must re-key the overdue snapshot")
}

func Test_Return_LoanNotFound(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Return(context.Background(), uuid.New())

	assert.ErrorIs(t, err, model.ErrLoanNotFound)
}

func Test_Borrow_SamePatronSameItemTwice(t *testing.T) {
	// No uniqueness rule ties a patron to one active loan per item; two
	// borrows of the same title succeed while copies remain.
	store := newFakeStore()
	itemID := seedItem(store, 2, 2)
	patronID := seedPatron(store, 0)
	svc := newTestService(store)

	_, err := svc.Borrow(context.Background(), patronID, itemID, 14)
	require.NoError(t, err)

	_, err = svc.Borrow(context.Background(), patronID, itemID, 14)
	require.NoError(t, err)

	assert.Equal(t, 0, store.items[itemID].Available)
	assert.Equal(t, 2, store.patrons[patronID].ActiveLoans)
}
