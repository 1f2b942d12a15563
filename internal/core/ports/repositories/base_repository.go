package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes database transaction control to repositories
// that compose multi-write units of work.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
