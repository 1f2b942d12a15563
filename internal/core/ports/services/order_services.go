package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/dto"
)

// SalesSvcFacade runs POS checkouts and sales order reads.
type SalesSvcFacade interface {
	// Checkout validates every line against current stock, then atomically
	// consumes stock, persists the order, and records the paid amount in the
	// ledger. Nothing is persisted when any line fails validation.
	Checkout(ctx context.Context, req dto.CheckoutRequest, userID string) (*domain.SalesOrder, error)

	GetOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error)

	// DeleteOrder removes an order and restocks its items.
	DeleteOrder(ctx context.Context, orderID string) error
}

// PurchaseSvcFacade runs goods receipts and purchase order reads.
type PurchaseSvcFacade interface {
	// ReceiveGoods atomically restocks every line at its weighted-average cost,
	// persists the order, and records the paid amount in the ledger.
	ReceiveGoods(ctx context.Context, req dto.ReceiptRequest, userID string) (*domain.PurchaseOrder, error)

	GetOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)

	// DeleteOrder removes an order and reverses its received stock, floored at
	// zero.
	DeleteOrder(ctx context.Context, orderID string) error
}

// ExpenseSvcFacade records business expenses.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
}

// PaymentSvcFacade records standalone settlements against customer or supplier
// balances.
type PaymentSvcFacade interface {
	// CreatePayment appends the sub-ledger row and the cash ledger entry, and
	// when the payment references an order, settles that order's due amount in
	// the same transaction.
	CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}
