package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/patron/model"
	"library-backend/pkg/database"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, patron *model.Patron) error {
	query := `
		INSERT INTO patrons (id, name, email, phone, registered_at, active_loans)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		patron.ID,
		patron.Name,
		patron.Email,
		patron.Phone,
		patron.RegisteredAt,
		patron.ActiveLoans,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert patron: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Patron, error) {
	query := `
		SELECT id, name, email, phone, registered_at, active_loans
		FROM patrons
		WHERE id = $1
	`

	var patron model.Patron
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&patron.ID,
		&patron.Name,
		&patron.Email,
		&patron.Phone,
		&patron.RegisteredAt,
		&patron.ActiveLoans,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPatronNotFound
		}
		return nil, fmt.Errorf("failed to get patron: %w", err)
	}

	return &patron, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Patron, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]model.Patron{}, nil
	}

	query := `
		SELECT id, name, email, phone, registered_at, active_loans
		FROM patrons
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get patrons: %w", err)
	}
	defer rows.Close()

	patrons := make(map[uuid.UUID]model.Patron, len(ids))
	for rows.Next() {
		var patron model.Patron
		if err := rows.Scan(
			&patron.ID,
			&patron.Name,
			&patron.Email,
			&patron.Phone,
			&patron.RegisteredAt,
			&patron.ActiveLoans,
		); err != nil {
			return nil, fmt.Errorf("failed to scan patron: %w", err)
		}
		patrons[patron.ID] = patron
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read patrons: %w", err)
	}

	return patrons, nil
}

// AdjustActiveLoanCount keeps the bound check inside the UPDATE itself so
// concurrent counter updates against the same patron serialize on the row.
func (r *postgresRepository) AdjustActiveLoanCount(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	query := `
		UPDATE patrons
		SET active_loans = active_loans + $2
		WHERE id = $1
		  AND active_loans + $2 >= 0
		  AND active_loans + $2 <= $3
	`

	tag, err := q.Exec(ctx, query, id, delta, model.MaxActiveLoans)
	if err != nil {
		return fmt.Errorf("failed to adjust active loan count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patrons WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check patron existence: %w", err)
		}
		if !exists {
			return model.ErrPatronNotFound
		}
		return model.ErrLoanCountBounds
	}

	return nil
}
