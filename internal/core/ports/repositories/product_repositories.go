package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/core/domain"
)

// ProductReader defines read operations for product data.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)
}

// ProductWriter defines write operations for product data.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
}

// ProductTransactionSupport defines stock mutations used inside units of work.
// ConsumeStockInTx and AdjustStockInTx are single guarded UPDATE statements so
// concurrent requests against the same product cannot interleave a stale
// read-modify-write.
type ProductTransactionSupport interface {
	// FindProductsByIDsForUpdate selects products and locks their rows for the
	// duration of the transaction. Missing IDs surface as ErrNotFound.
	FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error)

	// UpdateProductInTx writes quantity, cost price, and selling price of a
	// previously locked product row.
	UpdateProductInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error

	// ConsumeStockInTx decrements stock atomically, failing with
	// ErrInsufficientStock when on-hand quantity is smaller than qty.
	ConsumeStockInTx(ctx context.Context, tx pgx.Tx, productID string, qty int) error

	// AdjustStockInTx adds delta (which may be negative) to the stock level.
	// With clampZero the result is floored at zero.
	AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int, clampZero bool) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	ProductTransactionSupport
}
