package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/catalog/model"
	"library-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on PostgreSQL.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, item *model.CatalogItem) error {
	query := `
		INSERT INTO items (id, title, author, isbn, quantity, available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.Title,
		item.Author,
		item.ISBN,
		item.Quantity,
		item.Available,
		item.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return model.ErrDuplicateISBN
		}
		return fmt.Errorf("failed to insert catalog item: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CatalogItem, error) {
	query := `
		SELECT id, title, author, isbn, quantity, available, created_at
		FROM items
		WHERE id = $1
	`

	var item model.CatalogItem
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Author,
		&item.ISBN,
		&item.Quantity,
		&item.Available,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get catalog item: %w", err)
	}

	return &item, nil
}

func (r *postgresRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.CatalogItem, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]model.CatalogItem{}, nil
	}

	query := `
		SELECT id, title, author, isbn, quantity, available, created_at
		FROM items
		WHERE id = ANY($1)
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID]model.CatalogItem, len(ids))
	for rows.Next() {
		var item model.CatalogItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Author,
			&item.ISBN,
			&item.Quantity,
			&item.Available,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items[item.ID] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog items: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) List(ctx context.Context, filter model.Filter, availableOnly bool) ([]model.CatalogItem, error) {
	queryBuilder := `
		SELECT id, title, author, isbn, quantity, available, created_at
		FROM items
		WHERE 1=1
	`

	args := []interface{}{}
	argCount := 1

	if filter.Title != "" {
		queryBuilder += fmt.Sprintf(" AND title = $%d", argCount)
		args = append(args, filter.Title)
		argCount++
	}

	if filter.Author != "" {
		queryBuilder += fmt.Sprintf(" AND author = $%d", argCount)
		args = append(args, filter.Author)
		argCount++
	}

	if filter.ISBNPrefix != "" {
		queryBuilder += fmt.Sprintf(" AND isbn LIKE $%d || '%%'", argCount)
		args = append(args, filter.ISBNPrefix)
		argCount++
	}

	if availableOnly {
		queryBuilder += " AND available > 0"
	}

	rows, err := r.pool.Query(ctx, queryBuilder, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog items: %w", err)
	}
	defer rows.Close()

	items := []model.CatalogItem{}
	for rows.Next() {
		var item model.CatalogItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Author,
			&item.ISBN,
			&item.Quantity,
			&item.Available,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog items: %w", err)
	}

	return items, nil
}

// AdjustAvailability encodes the bound check in the WHERE clause so the
// check and the write are one atomic statement. Two concurrent borrows of
// the last copy serialize on the row lock and the loser matches zero rows.
func (r *postgresRepository) AdjustAvailability(ctx context.Context, q database.Querier, id uuid.UUID, delta int) error {
	query := `
		UPDATE items
		SET available = available + $2
		WHERE id = $1
		  AND available + $2 >= 0
		  AND available + $2 <= quantity
	`

	tag, err := q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust availability: %w", err)
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check catalog item existence: %w", err)
		}
		if !exists {
			return model.ErrItemNotFound
		}
		return model.ErrAvailabilityBounds
	}

	return nil
}
