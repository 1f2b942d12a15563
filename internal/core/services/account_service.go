package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Name:           req.Name,
		AccountType:    req.AccountType,
		OpeningBalance: req.OpeningBalance,
		CurrentBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("name", req.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("name", account.Name))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByName(ctx, name)
	if err != nil {
		s.LogError(ctx, err, "Failed to find account by name", slog.String("name", name))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, err
	}
	return accounts, nil
}
