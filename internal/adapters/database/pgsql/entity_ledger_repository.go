package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
	"github.com/shopspring/decimal"
)

const entityLedgerColumns = `id, entry_id, entity_type, entity_name, trn_ref_no, trn_type, debit_amount, credit_amount, balance_after, remarks, trn_date, created_at, created_by, last_updated_at, last_updated_by`

type entityLedgerRepository struct {
	baseRepository
}

// NewEntityLedgerRepository creates a new repository for the per-entity
// sub-ledger.
func NewEntityLedgerRepository(pool *pgxpool.Pool) portsrepo.EntityLedgerRepositoryFacade {
	return &entityLedgerRepository{baseRepository{pool: pool}}
}

var _ portsrepo.EntityLedgerRepositoryFacade = (*entityLedgerRepository)(nil)

func toEntityLedgerDomain(m models.EntityLedgerEntry) domain.EntityLedgerEntry {
	return domain.EntityLedgerEntry{
		ID:           m.ID,
		EntryID:      m.EntryID,
		EntityType:   domain.EntityType(m.EntityType),
		EntityName:   m.EntityName,
		TrnRefNo:     m.TrnRefNo,
		TrnType:      domain.ReferenceType(m.TrnType),
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		BalanceAfter: m.BalanceAfter,
		Remarks:      m.Remarks,
		TrnDate:      m.TrnDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// AppendEntityEntryInTx reads the entity's last running balance under the
// caller's transaction, derives the new balance as last + debit - credit, and
// inserts the row.
func (r *entityLedgerRepository) AppendEntityEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.EntityLedgerEntry) (*domain.EntityLedgerEntry, error) {
	lastBalance, err := findLastEntityBalance(ctx, tx, entry.EntityType, entry.EntityName)
	if err != nil {
		return nil, err
	}
	entry.BalanceAfter = lastBalance.Add(entry.DebitAmount).Sub(entry.CreditAmount)

	query := `
		INSERT INTO entity_ledger (entry_id, entity_type, entity_name, trn_ref_no, trn_type, debit_amount, credit_amount, balance_after, remarks, trn_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, query,
		entry.EntryID,
		string(entry.EntityType),
		entry.EntityName,
		entry.TrnRefNo,
		string(entry.TrnType),
		entry.DebitAmount,
		entry.CreditAmount,
		entry.BalanceAfter,
		entry.Remarks,
		entry.TrnDate,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entity ledger entry %s: %w", entry.EntryID, err)
	}
	return &entry, nil
}

func (r *entityLedgerRepository) FindEntityEntries(ctx context.Context, entityType domain.EntityType, entityName string) ([]domain.EntityLedgerEntry, error) {
	query := `
		SELECT ` + entityLedgerColumns + `
		FROM entity_ledger
		WHERE entity_type = $1 AND entity_name = $2
		ORDER BY trn_date ASC, id ASC;
	`
	rows, err := r.pool.Query(ctx, query, string(entityType), entityName)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity ledger for %s: %w", entityName, err)
	}
	defer rows.Close()

	entries := []domain.EntityLedgerEntry{}
	for rows.Next() {
		var m models.EntityLedgerEntry
		if err := rows.Scan(
			&m.ID,
			&m.EntryID,
			&m.EntityType,
			&m.EntityName,
			&m.TrnRefNo,
			&m.TrnType,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.BalanceAfter,
			&m.Remarks,
			&m.TrnDate,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entity ledger row: %w", err)
		}
		entries = append(entries, toEntityLedgerDomain(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity ledger rows: %w", err)
	}
	return entries, nil
}

func (r *entityLedgerRepository) FindLastEntityBalance(ctx context.Context, entityType domain.EntityType, entityName string) (decimal.Decimal, error) {
	return findLastEntityBalance(ctx, r.pool, entityType, entityName)
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func findLastEntityBalance(ctx context.Context, q queryRower, entityType domain.EntityType, entityName string) (decimal.Decimal, error) {
	query := `
		SELECT balance_after
		FROM entity_ledger
		WHERE entity_type = $1 AND entity_name = $2
		ORDER BY trn_date DESC, id DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := q.QueryRow(ctx, query, string(entityType), entityName).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read last balance for %s: %w", entityName, err)
	}
	return balance, nil
}
