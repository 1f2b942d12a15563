package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for financial account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByName retrieves an account by its unique name.
	FindAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts ordered by name.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for financial account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountTransactionSupport defines operations used inside ledger units of work.
type AccountTransactionSupport interface {
	// FindAccountByNameForUpdate selects an account and locks its row for the
	// duration of the transaction.
	FindAccountByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.Account, error)

	// UpdateAccountBalanceInTx writes the account's new running balance within
	// a transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
