package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryFilter narrows ledger reads to one entity and an optional date
// range. An empty EntityName matches every entity of the given type.
type LedgerEntryFilter struct {
	EntityType domain.EntityType
	EntityName string
	FromDate   *time.Time
	ToDate     *time.Time
}

// LedgerWriter appends entries to the ledger. AppendEntry is the atomic unit
// the recorder uses: it locks the account row, derives the new running
// balance, inserts the entry, and writes the balance back in one
// database transaction. AppendEntryInTx is the same step composed into a
// larger unit of work (checkout, receipt, return).
type LedgerWriter interface {
	AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) (*domain.LedgerEntry, error)
}

// LedgerReader defines read operations over the append-only ledger. Results
// are always ordered ascending by transaction timestamp, then by row id as a
// stable tie-break.
type LedgerReader interface {
	FindEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error)
	FindEntriesByEntity(ctx context.Context, filter LedgerEntryFilter) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines ledger read and write operations.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// EntityLedgerWriter appends rows to the per-customer/per-supplier sub-ledger.
type EntityLedgerWriter interface {
	// AppendEntityEntryInTx reads the entity's last sub-ledger balance, derives
	// the new balance as last + debit - credit, and inserts the row.
	AppendEntityEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.EntityLedgerEntry) (*domain.EntityLedgerEntry, error)
}

// EntityLedgerReader reads the per-entity sub-ledger.
type EntityLedgerReader interface {
	FindEntityEntries(ctx context.Context, entityType domain.EntityType, entityName string) ([]domain.EntityLedgerEntry, error)
	FindLastEntityBalance(ctx context.Context, entityType domain.EntityType, entityName string) (decimal.Decimal, error)
}

// EntityLedgerRepositoryFacade combines sub-ledger read and write operations.
type EntityLedgerRepositoryFacade interface {
	EntityLedgerReader
	EntityLedgerWriter
}
