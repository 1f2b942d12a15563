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

type salesReturnRepository struct {
	baseRepository
	productRepo      portsrepo.ProductTransactionSupport
	ledgerRepo       portsrepo.LedgerWriter
	entityLedgerRepo portsrepo.EntityLedgerWriter
}

// NewSalesReturnRepository creates a new repository for sales returns.
func NewSalesReturnRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductTransactionSupport, ledgerRepo portsrepo.LedgerWriter, entityLedgerRepo portsrepo.EntityLedgerWriter) portsrepo.SalesReturnRepository {
	return &salesReturnRepository{baseRepository{pool: pool}, productRepo, ledgerRepo, entityLedgerRepo}
}

var _ portsrepo.SalesReturnRepository = (*salesReturnRepository)(nil)

// SaveReturn is the atomic sales-return unit of work: restock every returned
// item, insert the return header and items, append the customer credit row
// and the cash refund entry, commit. The unique constraint on return_ref_no
// backs the idempotency check with ErrDuplicate.
func (r *salesReturnRepository) SaveReturn(ctx context.Context, ret domain.SalesReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, item := range ret.Items {
		if err := r.productRepo.AdjustStockInTx(ctx, tx, item.ProductID, item.QuantityReturned, false); err != nil {
			return err
		}
	}

	headerQuery := `
		INSERT INTO sales_returns (return_id, return_ref_no, customer_name, order_id, total_amount, remarks, return_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		ret.ReturnID,
		ret.ReturnRefNo,
		ret.CustomerName,
		ret.OrderID,
		ret.TotalAmount,
		ret.Remarks,
		ret.ReturnDate,
		ret.CreatedAt,
		ret.CreatedBy,
		ret.LastUpdatedAt,
		ret.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sales return %s", apperrors.ErrDuplicate, ret.ReturnRefNo)
		}
		return fmt.Errorf("failed to insert sales return %s: %w", ret.ReturnID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sales_return_items (item_id, return_id, product_id, product_name, quantity_returned, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range ret.Items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.ReturnID,
			item.ProductID,
			item.ProductName,
			item.QuantityReturned,
			item.UnitPrice,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for sales return %s: %w", ret.ReturnID, err)
	}

	if _, err := r.entityLedgerRepo.AppendEntityEntryInTx(ctx, tx, entityEntry); err != nil {
		return err
	}
	if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, cashEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *salesReturnRepository) FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.SalesReturn, error) {
	query := `
		SELECT return_id, return_ref_no, customer_name, order_id, total_amount, remarks, return_date, created_at, created_by, last_updated_at, last_updated_by
		FROM sales_returns
		WHERE return_ref_no = $1;
	`
	var m models.SalesReturn
	err := r.pool.QueryRow(ctx, query, returnRefNo).Scan(
		&m.ReturnID,
		&m.ReturnRefNo,
		&m.CustomerName,
		&m.OrderID,
		&m.TotalAmount,
		&m.Remarks,
		&m.ReturnDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: sales return %s", apperrors.ErrNotFound, returnRefNo)
		}
		return nil, fmt.Errorf("failed to find sales return %s: %w", returnRefNo, err)
	}

	items, err := r.findItems(ctx, m.ReturnID)
	if err != nil {
		return nil, err
	}

	ret := domain.SalesReturn{
		ReturnID:     m.ReturnID,
		ReturnRefNo:  m.ReturnRefNo,
		CustomerName: m.CustomerName,
		OrderID:      m.OrderID,
		TotalAmount:  m.TotalAmount,
		Remarks:      m.Remarks,
		ReturnDate:   m.ReturnDate,
		Items:        items,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &ret, nil
}

func (r *salesReturnRepository) findItems(ctx context.Context, returnID string) ([]domain.SalesReturnItem, error) {
	query := `
		SELECT item_id, return_id, product_id, product_name, quantity_returned, unit_price
		FROM sales_return_items
		WHERE return_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for sales return %s: %w", returnID, err)
	}
	defer rows.Close()

	items := []domain.SalesReturnItem{}
	for rows.Next() {
		var m models.SalesReturnItem
		if err := rows.Scan(&m.ItemID, &m.ReturnID, &m.ProductID, &m.ProductName, &m.QuantityReturned, &m.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan sales return item: %w", err)
		}
		items = append(items, domain.SalesReturnItem{
			ItemID:           m.ItemID,
			ReturnID:         m.ReturnID,
			ProductID:        m.ProductID,
			ProductName:      m.ProductName,
			QuantityReturned: m.QuantityReturned,
			UnitPrice:        m.UnitPrice,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales return items: %w", err)
	}
	return items, nil
}
