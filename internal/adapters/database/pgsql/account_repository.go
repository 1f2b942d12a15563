package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, account_type, opening_balance, current_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

type accountRepository struct {
	baseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{baseRepository{pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func toAccountModel(a domain.Account) models.Account {
	return models.Account{
		AccountID:      a.AccountID,
		Name:           a.Name,
		AccountType:    string(a.AccountType),
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     a.CreatedAt,
			CreatedBy:     a.CreatedBy,
			LastUpdatedAt: a.LastUpdatedAt,
			LastUpdatedBy: a.LastUpdatedBy,
		},
	}
}

func toAccountDomain(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		OpeningBalance: m.OpeningBalance,
		CurrentBalance: m.CurrentBalance,
		IsActive:       m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.AccountType,
		&m.OpeningBalance,
		&m.CurrentBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toAccountModel(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.OpeningBalance,
		m.CurrentBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s", apperrors.ErrDuplicate, account.Name)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	acc := toAccountDomain(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountByName(ctx context.Context, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1;`
	m, err := scanAccount(r.pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to find account by name %s: %w", name, err)
	}
	acc := toAccountDomain(m)
	return &acc, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE is_active ORDER BY name;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toAccountDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountByNameForUpdate locks the account row for the remainder of the
// transaction so concurrent ledger appends serialize on the same account.
func (r *accountRepository) FindAccountByNameForUpdate(ctx context.Context, tx pgx.Tx, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE name = $1 FOR UPDATE;`
	m, err := scanAccount(tx.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, name)
		}
		return nil, fmt.Errorf("failed to lock account %s: %w", name, err)
	}
	acc := toAccountDomain(m)
	return &acc, nil
}

func (r *accountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, newBalance decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET current_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, query, accountID, newBalance, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}
