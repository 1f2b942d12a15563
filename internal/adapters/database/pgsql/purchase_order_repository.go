package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
	"github.com/salesync/salesync_backend/internal/utils/costing"
	"github.com/shopspring/decimal"
)

type purchaseOrderRepository struct {
	baseRepository
	productRepo portsrepo.ProductTransactionSupport
	ledgerRepo  portsrepo.LedgerWriter
}

// NewPurchaseOrderRepository creates a new repository for purchase orders.
func NewPurchaseOrderRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductTransactionSupport, ledgerRepo portsrepo.LedgerWriter) portsrepo.PurchaseOrderRepository {
	return &purchaseOrderRepository{baseRepository{pool: pool}, productRepo, ledgerRepo}
}

var _ portsrepo.PurchaseOrderRepository = (*purchaseOrderRepository)(nil)

// SaveReceipt is the atomic receipt unit of work: lock every received product
// row, apply the weighted-average cost blend, insert the order and items,
// append the cash ledger entry when something was paid, commit.
func (r *purchaseOrderRepository) SaveReceipt(ctx context.Context, order domain.PurchaseOrder, cashEntry *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := r.productRepo.FindProductsByIDsForUpdate(ctx, tx, productIDs)
	if err != nil {
		return err
	}

	// The blend must run against the locked quantities, not whatever the
	// service read before the transaction opened.
	for _, item := range order.Items {
		product := products[item.ProductID]
		if err := costing.Receive(&product, item.Quantity, item.UnitCost, item.SellingPrice); err != nil {
			return err
		}
		product.LastUpdatedAt = order.LastUpdatedAt
		product.LastUpdatedBy = order.LastUpdatedBy
		if err := r.productRepo.UpdateProductInTx(ctx, tx, product); err != nil {
			return err
		}
		products[item.ProductID] = product
	}

	orderQuery := `
		INSERT INTO purchase_orders (order_id, purchase_order_no, supplier_name, order_date, total_amount, total_vat, discount, grand_total, amount_paid, amount_due, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.OrderID,
		order.PurchaseOrderNo,
		order.SupplierName,
		order.OrderDate,
		order.TotalAmount,
		order.TotalVat,
		order.Discount,
		order.GrandTotal,
		order.AmountPaid,
		order.AmountDue,
		string(order.PaymentStatus),
		order.Remarks,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: purchase order %s", apperrors.ErrDuplicate, order.PurchaseOrderNo)
		}
		return fmt.Errorf("failed to insert purchase order %s: %w", order.OrderID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO purchase_order_items (item_id, order_id, product_id, product_name, quantity, unit_cost, selling_price, vat_amount, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, item := range order.Items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitCost,
			item.SellingPrice,
			item.VatAmount,
			item.Subtotal,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for purchase order %s: %w", order.OrderID, err)
	}

	if cashEntry != nil {
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *cashEntry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *purchaseOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT order_id, purchase_order_no, supplier_name, order_date, total_amount, total_vat, discount, grand_total, amount_paid, amount_due, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_orders
		WHERE order_id = $1;
	`
	var m models.PurchaseOrder
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.PurchaseOrderNo,
		&m.SupplierName,
		&m.OrderDate,
		&m.TotalAmount,
		&m.TotalVat,
		&m.Discount,
		&m.GrandTotal,
		&m.AmountPaid,
		&m.AmountDue,
		&m.PaymentStatus,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find purchase order %s: %w", orderID, err)
	}

	items, err := r.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order := domain.PurchaseOrder{
		OrderID:         m.OrderID,
		PurchaseOrderNo: m.PurchaseOrderNo,
		SupplierName:    m.SupplierName,
		OrderDate:       m.OrderDate,
		TotalAmount:     m.TotalAmount,
		TotalVat:        m.TotalVat,
		Discount:        m.Discount,
		GrandTotal:      m.GrandTotal,
		AmountPaid:      m.AmountPaid,
		AmountDue:       m.AmountDue,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		Remarks:         m.Remarks,
		Items:           items,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &order, nil
}

// FindOrderByIDForUpdate locks the order row for the remainder of the
// transaction so concurrent settlements against the same order serialize on
// the row lock instead of overwriting each other's amount_paid.
func (r *purchaseOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT order_id, purchase_order_no, supplier_name, order_date, total_amount, total_vat, discount, grand_total, amount_paid, amount_due, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_orders
		WHERE order_id = $1
		FOR UPDATE;
	`
	var m models.PurchaseOrder
	err := tx.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.PurchaseOrderNo,
		&m.SupplierName,
		&m.OrderDate,
		&m.TotalAmount,
		&m.TotalVat,
		&m.Discount,
		&m.GrandTotal,
		&m.AmountPaid,
		&m.AmountDue,
		&m.PaymentStatus,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to lock purchase order %s: %w", orderID, err)
	}

	order := domain.PurchaseOrder{
		OrderID:         m.OrderID,
		PurchaseOrderNo: m.PurchaseOrderNo,
		SupplierName:    m.SupplierName,
		OrderDate:       m.OrderDate,
		TotalAmount:     m.TotalAmount,
		TotalVat:        m.TotalVat,
		Discount:        m.Discount,
		GrandTotal:      m.GrandTotal,
		AmountPaid:      m.AmountPaid,
		AmountDue:       m.AmountDue,
		PaymentStatus:   domain.PaymentStatus(m.PaymentStatus),
		Remarks:         m.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &order, nil
}

func (r *purchaseOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.PurchaseOrderItem, error) {
	query := `
		SELECT item_id, order_id, product_id, product_name, quantity, unit_cost, selling_price, vat_amount, subtotal
		FROM purchase_order_items
		WHERE order_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []domain.PurchaseOrderItem{}
	for rows.Next() {
		var m models.PurchaseOrderItem
		if err := rows.Scan(&m.ItemID, &m.OrderID, &m.ProductID, &m.ProductName, &m.Quantity, &m.UnitCost, &m.SellingPrice, &m.VatAmount, &m.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order item: %w", err)
		}
		items = append(items, domain.PurchaseOrderItem{
			ItemID:       m.ItemID,
			OrderID:      m.OrderID,
			ProductID:    m.ProductID,
			ProductName:  m.ProductName,
			Quantity:     m.Quantity,
			UnitCost:     m.UnitCost,
			SellingPrice: m.SellingPrice,
			VatAmount:    m.VatAmount,
			Subtotal:     m.Subtotal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase order items: %w", err)
	}
	return items, nil
}

// DeleteOrder removes the order and reverses the received quantities, floored
// at zero since part of the receipt may already have sold through. The
// weighted-average cost is left as is; reconstructing the pre-receipt blend
// is not possible once later receipts have run.
func (r *purchaseOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	order, err := r.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, item := range order.Items {
		if err := r.productRepo.AdjustStockInTx(ctx, tx, item.ProductID, -item.Quantity, true); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM purchase_order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to delete items for purchase order %s: %w", orderID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM purchase_orders WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, orderID)
	}

	return r.Commit(ctx, tx)
}

func (r *purchaseOrderRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE purchase_orders
		SET amount_paid = $2, amount_due = $3, payment_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE order_id = $1;
	`
	tag, err := tx.Exec(ctx, query, orderID, amountPaid, amountDue, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update payment on purchase order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: purchase order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}
