package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
)

const ledgerColumns = `id, entry_id, account_id, account_name, account_type, amount, direction, balance_after, ref_type, ref_id, entity_type, entity_name, trn_ref_no, payment_method, payment_status, remarks, financial_year, trn_date, created_at, created_by, last_updated_at, last_updated_by`

type ledgerRepository struct {
	baseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// NewLedgerRepository creates a new repository for the append-only ledger.
// The account repository is injected so the append unit of work can lock and
// update the owning account within the same transaction.
func NewLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) portsrepo.LedgerRepositoryFacade {
	return &ledgerRepository{baseRepository{pool: pool}, accountRepo}
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func toLedgerDomain(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		ID:            m.ID,
		EntryID:       m.EntryID,
		AccountID:     m.AccountID,
		AccountName:   m.AccountName,
		AccountType:   domain.AccountType(m.AccountType),
		Amount:        m.Amount,
		Direction:     domain.Direction(m.Direction),
		BalanceAfter:  m.BalanceAfter,
		RefType:       domain.ReferenceType(m.RefType),
		RefID:         m.RefID,
		EntityType:    domain.EntityType(m.EntityType),
		EntityName:    m.EntityName,
		TrnRefNo:      m.TrnRefNo,
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: m.PaymentStatus,
		Remarks:       m.Remarks,
		FinancialYear: m.FinancialYear,
		TrnDate:       m.TrnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.ID,
		&m.EntryID,
		&m.AccountID,
		&m.AccountName,
		&m.AccountType,
		&m.Amount,
		&m.Direction,
		&m.BalanceAfter,
		&m.RefType,
		&m.RefID,
		&m.EntityType,
		&m.EntityName,
		&m.TrnRefNo,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.Remarks,
		&m.FinancialYear,
		&m.TrnDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// AppendEntry is the standalone append unit of work: lock the account, derive
// the new running balance, insert the entry, write the balance back, commit.
func (r *ledgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	saved, err := r.AppendEntryInTx(ctx, tx, entry)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return saved, nil
}

// AppendEntryInTx is the same append step composed into a caller-owned
// transaction. The caller commits or rolls back.
func (r *ledgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	account, err := r.accountRepo.FindAccountByNameForUpdate(ctx, tx, entry.AccountName)
	if err != nil {
		return nil, err
	}

	entry.AccountID = account.AccountID
	entry.AccountType = account.AccountType
	if entry.PaymentMethod == "" {
		entry.PaymentMethod = string(account.AccountType)
	}
	entry.BalanceAfter = domain.NextBalance(account.CurrentBalance, entry)

	query := `
		INSERT INTO ledger_entries (entry_id, account_id, account_name, account_type, amount, direction, balance_after, ref_type, ref_id, entity_type, entity_name, trn_ref_no, payment_method, payment_status, remarks, financial_year, trn_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, query,
		entry.EntryID,
		entry.AccountID,
		entry.AccountName,
		string(entry.AccountType),
		entry.Amount,
		string(entry.Direction),
		entry.BalanceAfter,
		string(entry.RefType),
		entry.RefID,
		string(entry.EntityType),
		entry.EntityName,
		entry.TrnRefNo,
		entry.PaymentMethod,
		entry.PaymentStatus,
		entry.Remarks,
		entry.FinancialYear,
		entry.TrnDate,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, entry.BalanceAfter, entry.CreatedBy, entry.LastUpdatedAt); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *ledgerRepository) FindEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE account_name = $1
		ORDER BY trn_date ASC, id ASC;
	`
	rows, err := r.pool.Query(ctx, query, accountName)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for account %s: %w", accountName, err)
	}
	defer rows.Close()
	return collectLedgerEntries(rows)
}

func (r *ledgerRepository) FindEntriesByEntity(ctx context.Context, filter portsrepo.LedgerEntryFilter) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledger_entries
		WHERE entity_type = $1
	`
	args := []any{string(filter.EntityType)}

	if filter.EntityName != "" {
		args = append(args, filter.EntityName)
		query += fmt.Sprintf(" AND entity_name = $%d", len(args))
	}
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		query += fmt.Sprintf(" AND trn_date >= $%d", len(args))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		query += fmt.Sprintf(" AND trn_date <= $%d", len(args))
	}
	query += " ORDER BY trn_date ASC, id ASC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for entity %s: %w", filter.EntityName, err)
	}
	defer rows.Close()
	return collectLedgerEntries(rows)
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toLedgerDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}
