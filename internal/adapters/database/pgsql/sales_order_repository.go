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
	"github.com/shopspring/decimal"
)

type salesOrderRepository struct {
	baseRepository
	productRepo portsrepo.ProductTransactionSupport
	ledgerRepo  portsrepo.LedgerWriter
}

// NewSalesOrderRepository creates a new repository for sales orders. Product
// and ledger repositories are injected so the checkout unit of work can
// consume stock and append the cash entry in one transaction.
func NewSalesOrderRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductTransactionSupport, ledgerRepo portsrepo.LedgerWriter) portsrepo.SalesOrderRepository {
	return &salesOrderRepository{baseRepository{pool: pool}, productRepo, ledgerRepo}
}

var _ portsrepo.SalesOrderRepository = (*salesOrderRepository)(nil)

// SaveCheckout is the atomic checkout unit of work: consume stock for every
// line, insert the order and its items, append the cash ledger entry when
// something was paid, commit. Any failure rolls the whole checkout back.
func (r *salesOrderRepository) SaveCheckout(ctx context.Context, order domain.SalesOrder, cashEntry *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, item := range order.Items {
		if err := r.productRepo.ConsumeStockInTx(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}

	orderQuery := `
		INSERT INTO sales_orders (order_id, invoice_no, customer_name, order_date, total_amount, discount, grand_total, amount_paid, amount_due, payment_method, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, orderQuery,
		order.OrderID,
		order.InvoiceNo,
		order.CustomerName,
		order.OrderDate,
		order.TotalAmount,
		order.Discount,
		order.GrandTotal,
		order.AmountPaid,
		order.AmountDue,
		order.PaymentMethod,
		string(order.PaymentStatus),
		order.Remarks,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice %s", apperrors.ErrDuplicate, order.InvoiceNo)
		}
		return fmt.Errorf("failed to insert sales order %s: %w", order.OrderID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sales_order_items (item_id, order_id, product_id, product_name, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, item := range order.Items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.UnitPrice,
			item.Subtotal,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for sales order %s: %w", order.OrderID, err)
	}

	if cashEntry != nil {
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *cashEntry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *salesOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	query := `
		SELECT order_id, invoice_no, customer_name, order_date, total_amount, discount, grand_total, amount_paid, amount_due, payment_method, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by
		FROM sales_orders
		WHERE order_id = $1;
	`
	var m models.SalesOrder
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.InvoiceNo,
		&m.CustomerName,
		&m.OrderDate,
		&m.TotalAmount,
		&m.Discount,
		&m.GrandTotal,
		&m.AmountPaid,
		&m.AmountDue,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to find sales order %s: %w", orderID, err)
	}

	items, err := r.findItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order := domain.SalesOrder{
		OrderID:       m.OrderID,
		InvoiceNo:     m.InvoiceNo,
		CustomerName:  m.CustomerName,
		OrderDate:     m.OrderDate,
		TotalAmount:   m.TotalAmount,
		Discount:      m.Discount,
		GrandTotal:    m.GrandTotal,
		AmountPaid:    m.AmountPaid,
		AmountDue:     m.AmountDue,
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Remarks:       m.Remarks,
		Items:         items,
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
func (r *salesOrderRepository) FindOrderByIDForUpdate(ctx context.Context, tx pgx.Tx, orderID string) (*domain.SalesOrder, error) {
	query := `
		SELECT order_id, invoice_no, customer_name, order_date, total_amount, discount, grand_total, amount_paid, amount_due, payment_method, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by
		FROM sales_orders
		WHERE order_id = $1
		FOR UPDATE;
	`
	var m models.SalesOrder
	err := tx.QueryRow(ctx, query, orderID).Scan(
		&m.OrderID,
		&m.InvoiceNo,
		&m.CustomerName,
		&m.OrderDate,
		&m.TotalAmount,
		&m.Discount,
		&m.GrandTotal,
		&m.AmountPaid,
		&m.AmountDue,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.Remarks,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, orderID)
		}
		return nil, fmt.Errorf("failed to lock sales order %s: %w", orderID, err)
	}

	order := domain.SalesOrder{
		OrderID:       m.OrderID,
		InvoiceNo:     m.InvoiceNo,
		CustomerName:  m.CustomerName,
		OrderDate:     m.OrderDate,
		TotalAmount:   m.TotalAmount,
		Discount:      m.Discount,
		GrandTotal:    m.GrandTotal,
		AmountPaid:    m.AmountPaid,
		AmountDue:     m.AmountDue,
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Remarks:       m.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &order, nil
}

func (r *salesOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.SalesOrderItem, error) {
	query := `
		SELECT item_id, order_id, product_id, product_name, quantity, unit_price, subtotal
		FROM sales_order_items
		WHERE order_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sales order %s: %w", orderID, err)
	}
	defer rows.Close()

	items := []domain.SalesOrderItem{}
	for rows.Next() {
		var m models.SalesOrderItem
		if err := rows.Scan(&m.ItemID, &m.OrderID, &m.ProductID, &m.ProductName, &m.Quantity, &m.UnitPrice, &m.Subtotal); err != nil {
			return nil, fmt.Errorf("failed to scan sales order item: %w", err)
		}
		items = append(items, domain.SalesOrderItem{
			ItemID:      m.ItemID,
			OrderID:     m.OrderID,
			ProductID:   m.ProductID,
			ProductName: m.ProductName,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			Subtotal:    m.Subtotal,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales order items: %w", err)
	}
	return items, nil
}

// DeleteOrder removes the order and restocks its items in one transaction.
func (r *salesOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
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
		if err := r.productRepo.AdjustStockInTx(ctx, tx, item.ProductID, item.Quantity, false); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM sales_order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to delete items for sales order %s: %w", orderID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM sales_orders WHERE order_id = $1`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete sales order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, orderID)
	}

	return r.Commit(ctx, tx)
}

func (r *salesOrderRepository) UpdatePaymentInTx(ctx context.Context, tx pgx.Tx, orderID string, amountPaid, amountDue decimal.Decimal, status domain.PaymentStatus, userID string, now time.Time) error {
	query := `
		UPDATE sales_orders
		SET amount_paid = $2, amount_due = $3, payment_status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE order_id = $1;
	`
	tag, err := tx.Exec(ctx, query, orderID, amountPaid, amountDue, string(status), now, userID)
	if err != nil {
		return fmt.Errorf("failed to update payment on sales order %s: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: sales order %s", apperrors.ErrNotFound, orderID)
	}
	return nil
}
