package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/dto"
)

// LedgerRecorderSvc defines the single write path into the append-only ledger.
type LedgerRecorderSvc interface {
	// RecordTransaction validates the request, derives the running balance
	// against the named account, and appends one immutable ledger entry.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.LedgerEntry, error)
}

// LedgerReaderSvc defines read operations over the ledger.
type LedgerReaderSvc interface {
	// GetEntriesByAccountName lists an account's entries oldest first.
	GetEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error)

	// GetEntriesByEntity lists entries for one counterparty, optionally bounded
	// by an inclusive date range.
	GetEntriesByEntity(ctx context.Context, entityType domain.EntityType, entityName string, fromDate, toDate string) ([]domain.LedgerEntry, error)
}

// LedgerSvcFacade combines ledger read and write service interfaces
type LedgerSvcFacade interface {
	LedgerRecorderSvc
	LedgerReaderSvc
}

// EntityLedgerSvcFacade reads the per-customer / per-supplier sub-ledger.
type EntityLedgerSvcFacade interface {
	GetEntityEntries(ctx context.Context, entityType domain.EntityType, entityName string) ([]domain.EntityLedgerEntry, error)
}
