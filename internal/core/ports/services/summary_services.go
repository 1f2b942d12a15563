package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarySvcFacade builds aggregate reports over filtered ledger slices.
type SummarySvcFacade interface {
	// BuildSummary aggregates the entries matching the entity filter and the
	// optional inclusive 2006-01-02 date range into totals, opening balance,
	// closing balance, and the entity-relative net balance.
	BuildSummary(ctx context.Context, entityType domain.EntityType, entityName, fromDate, toDate string) (domain.LedgerSummary, error)

	// ReceivableForCustomer reports how much the named customer still owes.
	ReceivableForCustomer(ctx context.Context, customerName string) (decimal.Decimal, error)

	// PayableForSupplier reports how much is still owed to the named supplier.
	PayableForSupplier(ctx context.Context, supplierName string) (decimal.Decimal, error)
}
