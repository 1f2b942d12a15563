package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/dto"
)

// ReturnSvcFacade processes customer and supplier returns. Both operations are
// idempotent on the return reference number: a replay fails with ErrDuplicate
// and leaves no effects.
type ReturnSvcFacade interface {
	// ProcessSalesReturn restocks the returned items, credits the customer's
	// sub-ledger, and records the refund as a cash outflow, atomically.
	ProcessSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, userID string) (*domain.SalesReturn, error)

	// ProcessPurchaseReturn reduces stock for the returned items, debits the
	// supplier's sub-ledger, and records the credit as a cash inflow, atomically.
	ProcessPurchaseReturn(ctx context.Context, req dto.CreatePurchaseReturnRequest, userID string) (*domain.PurchaseReturn, error)

	GetSalesReturnByRefNo(ctx context.Context, returnRefNo string) (*domain.SalesReturn, error)
	GetPurchaseReturnByRefNo(ctx context.Context, returnRefNo string) (*domain.PurchaseReturn, error)
}
