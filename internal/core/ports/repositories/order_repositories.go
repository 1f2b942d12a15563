package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SalesOrderRepository persists sales orders. SaveCheckout is the atomic
// checkout unit of work: consume stock for every line, insert the order and
// its items, and append the cash ledger entry (nil when nothing was paid) in
// one transaction.
type SalesOrderRepository interface {
	SaveCheckout(ctx context.Context, order domain.SalesOrder, cashEntry *domain.LedgerEntry) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error)
	// FindOrderByIDForUpdate locks the order row for the remainder of the
	// transaction so concurrent settlements serialize on the same order. The
	// returned order carries no items.
	FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SalesOrder, error)
	// DeleteOrder removes the order and restocks its items in one transaction.
	DeleteOrder(ctx context.Context, orderID string) error
	// UpdatePaymentInTx writes the settled amounts and derived status back to
	// the order row inside a larger unit of work.
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error
}

// PurchaseOrderRepository persists purchase orders. SaveReceipt locks every
// received product row, applies the weighted-average cost recalculation,
// inserts the order and items, and appends the cash ledger entry in one
// transaction.
type PurchaseOrderRepository interface {
	SaveReceipt(ctx context.Context, order domain.PurchaseOrder, cashEntry *domain.LedgerEntry) error
	FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
	// FindOrderByIDForUpdate locks the order row for the remainder of the
	// transaction; the returned order carries no items.
	FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.PurchaseOrder, error)
	// DeleteOrder removes the order and reverses the received stock, floored
	// at zero, in one transaction.
	DeleteOrder(ctx context.Context, orderID string) error
	UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error
}

// ExpenseRepository persists expenses with their cash ledger entry.
type ExpenseRepository interface {
	SaveExpense(ctx context.Context, expense domain.Expense, cashEntry *domain.LedgerEntry) error
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
}

// PaymentRepository persists standalone payments together with their ledger
// effects and, when the payment settles a referenced order, the order's
// updated due amounts, all in one transaction.
type PaymentRepository interface {
	SavePayment(ctx context.Context, payment domain.Payment, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry, settle func(ctx context.Context, tx pgx.Tx) error) error
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}
