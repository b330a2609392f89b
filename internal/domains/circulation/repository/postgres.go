package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/circulation/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, q database.Querier, loan *model.Loan) error {
	query := `
		INSERT INTO loans (id, patron_id, item_id, borrowed_at, due_at, returned_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		loan.ID,
		loan.PatronID,
		loan.ItemID,
		loan.BorrowedAt,
		loan.DueAt,
		loan.ReturnedAt,
		loan.Status,
	)

	if err != nil {
		return fmt.Errorf("failed to insert loan: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	query := `
		SELECT id, patron_id, item_id, borrowed_at, due_at, returned_at, status
		FROM loans
		WHERE id = $1
	`

	var loan model.Loan
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&loan.ID,
		&loan.PatronID,
		&loan.ItemID,
		&loan.BorrowedAt,
		&loan.DueAt,
		&loan.ReturnedAt,
		&loan.Status,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}

	return &loan, nil
}

// MarkReturned conditions the transition on the loan still being active, so
// a second concurrent return matches zero rows instead of overwriting the
// return timestamp.
func (r *postgresRepository) MarkReturned(ctx context.Context, q database.Querier, id uuid.UUID, returnedAt time.Time) error {
	query := `
		UPDATE loans
		SET status = $3, returned_at = $2
		WHERE id = $1 AND status = $4
	`

	tag, err := q.Exec(ctx, query, id, returnedAt, model.LoanStatusReturned, model.LoanStatusActive)
	if err != nil {
		return fmt.Errorf("failed to mark loan returned: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM loans WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check loan existence: %w", err)
		}
		if !exists {
			return model.ErrLoanNotFound
		}
		return model.ErrAlreadyReturned
	}

	return nil
}

func (r *postgresRepository) ListByPatron(ctx context.Context, patronID uuid.UUID) ([]model.Loan, error) {
	query := `
		SELECT id, patron_id, item_id, borrowed_at, due_at, returned_at, status
		FROM loans
		WHERE patron_id = $1
		ORDER BY borrowed_at DESC
	`

	return r.queryLoans(ctx, query, patronID)
}

func (r *postgresRepository) ListActiveOverdue(ctx context.Context, now time.Time) ([]model.Loan, error) {
	query := `
		SELECT id, patron_id, item_id, borrowed_at, due_at, returned_at, status
		FROM loans
		WHERE status = $1 AND due_at < $2
	`

	return r.queryLoans(ctx, query, model.LoanStatusActive, now)
}

func (r *postgresRepository) queryLoans(ctx context.Context, query string, args ...interface{}) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query loans: %w", err)
	}
	defer rows.Close()

	loans := []model.Loan{}
	for rows.Next() {
		var loan model.Loan
		if err := rows.Scan(
			&loan.ID,
			&loan.PatronID,
			&loan.ItemID,
			&loan.BorrowedAt,
			&loan.DueAt,
			&loan.ReturnedAt,
			&loan.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, loan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read loans: %w", err)
	}

	return loans, nil
}
