package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/dto"
)

// AccountReaderSvc defines read operations for financial account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountByName retrieves an account by its unique name.
	GetAccountByName(ctx context.Context, name string) (*domain.Account, error)

	// ListAccounts retrieves all active accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for financial account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with its opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
