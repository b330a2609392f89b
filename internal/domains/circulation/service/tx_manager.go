package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/pkg/database"
)

// TxManager runs fn atomically. The production implementation wraps fn in a
// database transaction; tests substitute one that just calls fn.
type TxManager func(ctx context.Context, fn database.TxFunc) error

// NewPgxTxManager returns a TxManager backed by pkg/database.WithTransaction.
func NewPgxTxManager(pool *pgxpool.Pool) TxManager {
	return func(ctx context.Context, fn database.TxFunc) error {
		return database.WithTransaction(ctx, pool, fn)
	}
}
