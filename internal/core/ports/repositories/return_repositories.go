package repositories

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
)

// SalesReturnRepository persists sales returns. SaveReturn is the atomic
// return unit of work: restock every item, insert the return header and
// items, append the customer sub-ledger row, and append the cash ledger entry
// in one transaction. A duplicate return reference number fails with
// ErrDuplicate before any effect is committed.
type SalesReturnRepository interface {
	SaveReturn(ctx context.Context, ret domain.SalesReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error
	FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.SalesReturn, error)
}

// PurchaseReturnRepository is the supplier-side counterpart of
// SalesReturnRepository; stock is reduced rather than restocked.
type PurchaseReturnRepository interface {
	SaveReturn(ctx context.Context, ret domain.PurchaseReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error
	FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.PurchaseReturn, error)
}
