package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
)

const productColumns = `product_id, sku, name, quantity, cost_price, selling_price, is_active, created_at, created_by, last_updated_at, last_updated_by`

type productRepository struct {
	baseRepository
}

// NewProductRepository creates a new repository for product data.
func NewProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &productRepository{baseRepository{pool: pool}}
}

var _ portsrepo.ProductRepositoryFacade = (*productRepository)(nil)

func toProductDomain(m models.Product) domain.Product {
	return domain.Product{
		ProductID:    m.ProductID,
		SKU:          m.SKU,
		Name:         m.Name,
		Quantity:     m.Quantity,
		CostPrice:    m.CostPrice,
		SellingPrice: m.SellingPrice,
		IsActive:     m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.SKU,
		&m.Name,
		&m.Quantity,
		&m.CostPrice,
		&m.SellingPrice,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *productRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		product.ProductID,
		product.SKU,
		product.Name,
		product.Quantity,
		product.CostPrice,
		product.SellingPrice,
		product.IsActive,
		product.CreatedAt,
		product.CreatedBy,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product SKU %s", apperrors.ErrDuplicate, product.SKU)
		}
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}
	return nil
}

func (r *productRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	m, err := scanProduct(r.pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	p := toProductDomain(m)
	return &p, nil
}

func (r *productRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1);`
	return r.queryProductMap(ctx, r.pool, query, productIDs)
}

// FindProductsByIDsForUpdate locks every requested product row. Missing IDs
// surface as ErrNotFound so a unit of work fails before mutating anything.
func (r *productRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	// Lock in a stable order to avoid deadlocks between concurrent units of
	// work touching overlapping product sets.
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = ANY($1) ORDER BY product_id FOR UPDATE;`
	productMap, err := r.queryProductMap(ctx, tx, query, productIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range productIDs {
		if _, ok := productMap[id]; !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, id)
		}
	}
	return productMap, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *productRepository) queryProductMap(ctx context.Context, q querier, query string, productIDs []string) (map[string]domain.Product, error) {
	rows, err := q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	productMap := make(map[string]domain.Product, len(productIDs))
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		productMap[m.ProductID] = toProductDomain(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return productMap, nil
}

func (r *productRepository) UpdateProductInTx(ctx context.Context, tx pgx.Tx, product domain.Product) error {
	query := `
		UPDATE products
		SET quantity = $2, cost_price = $3, selling_price = $4, last_updated_at = $5, last_updated_by = $6
		WHERE product_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		product.ProductID,
		product.Quantity,
		product.CostPrice,
		product.SellingPrice,
		product.LastUpdatedAt,
		product.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", product.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	return nil
}

// ConsumeStockInTx is the SQL form of costing.Consume: a guarded single
// statement decrement, so two concurrent checkouts can never both succeed on
// the last unit and the quantity never goes below zero.
func (r *productRepository) ConsumeStockInTx(ctx context.Context, tx pgx.Tx, productID string, qty int) error {
	query := `
		UPDATE products
		SET quantity = quantity - $2
		WHERE product_id = $1 AND quantity >= $2;
	`
	tag, err := tx.Exec(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("failed to consume stock for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the product is gone or the guard rejected the decrement.
		var onHand int
		err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE product_id = $1`, productID).Scan(&onHand)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
		}
		if err != nil {
			return fmt.Errorf("failed to check stock for product %s: %w", productID, err)
		}
		return fmt.Errorf("%w: product %s has %d on hand, requested %d", apperrors.ErrInsufficientStock, productID, onHand, qty)
	}
	return nil
}

// AdjustStockInTx adds delta to the stock level. It carries three costing
// contracts: a positive delta is costing.RestockFromReturn, a negative delta
// without clampZero is costing.ReduceFromReturn (may go negative), and
// clampZero floors the result at zero per costing.Rollback, used when
// reversing receipts that may have partially sold through.
func (r *productRepository) AdjustStockInTx(ctx context.Context, tx pgx.Tx, productID string, delta int, clampZero bool) error {
	query := `UPDATE products SET quantity = quantity + $2 WHERE product_id = $1;`
	if clampZero {
		query = `UPDATE products SET quantity = GREATEST(0, quantity + $2) WHERE product_id = $1;`
	}
	tag, err := tx.Exec(ctx, query, productID, delta)
	if err != nil {
		return fmt.Errorf("failed to adjust stock for product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return nil
}
