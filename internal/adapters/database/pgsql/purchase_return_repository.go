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

type purchaseReturnRepository struct {
	baseRepository
	productRepo      portsrepo.ProductTransactionSupport
	ledgerRepo       portsrepo.LedgerWriter
	entityLedgerRepo portsrepo.EntityLedgerWriter
}

// NewPurchaseReturnRepository creates a new repository for purchase returns.
func NewPurchaseReturnRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductTransactionSupport, ledgerRepo portsrepo.LedgerWriter, entityLedgerRepo portsrepo.EntityLedgerWriter) portsrepo.PurchaseReturnRepository {
	return &purchaseReturnRepository{baseRepository{pool: pool}, productRepo, ledgerRepo, entityLedgerRepo}
}

var _ portsrepo.PurchaseReturnRepository = (*purchaseReturnRepository)(nil)

// SaveReturn is the atomic purchase-return unit of work: reduce stock for
// every item going back to the supplier, insert the return header and items,
// append the supplier debit row and the cash refund entry, commit. Stock
// follows costing.ReduceFromReturn: no floor, no on-hand guard. A return of
// goods that already partially sold through leaves the quantity negative.
func (r *purchaseReturnRepository) SaveReturn(ctx context.Context, ret domain.PurchaseReturn, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	for _, item := range ret.Items {
		if err := r.productRepo.AdjustStockInTx(ctx, tx, item.ProductID, -item.QuantityReturned, false); err != nil {
			return err
		}
	}

	headerQuery := `
		INSERT INTO purchase_returns (return_id, return_ref_no, supplier_name, order_id, total_amount, remarks, return_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		ret.ReturnID,
		ret.ReturnRefNo,
		ret.SupplierName,
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
			return fmt.Errorf("%w: purchase return %s", apperrors.ErrDuplicate, ret.ReturnRefNo)
		}
		return fmt.Errorf("failed to insert purchase return %s: %w", ret.ReturnID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO purchase_return_items (item_id, return_id, product_id, product_name, quantity_returned, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, item := range ret.Items {
		batch.Queue(itemQuery,
			item.ItemID,
			item.ReturnID,
			item.ProductID,
			item.ProductName,
			item.QuantityReturned,
			item.UnitCost,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for purchase return %s: %w", ret.ReturnID, err)
	}

	if _, err := r.entityLedgerRepo.AppendEntityEntryInTx(ctx, tx, entityEntry); err != nil {
		return err
	}
	if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, cashEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *purchaseReturnRepository) FindByReturnRefNo(ctx context.Context, returnRefNo string) (*domain.PurchaseReturn, error) {
	query := `
		SELECT return_id, return_ref_no, supplier_name, order_id, total_amount, remarks, return_date, created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_returns
		WHERE return_ref_no = $1;
	`
	var m models.PurchaseReturn
	err := r.pool.QueryRow(ctx, query, returnRefNo).Scan(
		&m.ReturnID,
		&m.ReturnRefNo,
		&m.SupplierName,
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
			return nil, fmt.Errorf("%w: purchase return %s", apperrors.ErrNotFound, returnRefNo)
		}
		return nil, fmt.Errorf("failed to find purchase return %s: %w", returnRefNo, err)
	}

	items, err := r.findItems(ctx, m.ReturnID)
	if err != nil {
		return nil, err
	}

	ret := domain.PurchaseReturn{
		ReturnID:     m.ReturnID,
		ReturnRefNo:  m.ReturnRefNo,
		SupplierName: m.SupplierName,
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

func (r *purchaseReturnRepository) findItems(ctx context.Context, returnID string) ([]domain.PurchaseReturnItem, error) {
	query := `
		SELECT item_id, return_id, product_id, product_name, quantity_returned, unit_cost
		FROM purchase_return_items
		WHERE return_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, returnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for purchase return %s: %w", returnID, err)
	}
	defer rows.Close()

	items := []domain.PurchaseReturnItem{}
	for rows.Next() {
		var m models.PurchaseReturnItem
		if err := rows.Scan(&m.ItemID, &m.ReturnID, &m.ProductID, &m.ProductName, &m.QuantityReturned, &m.UnitCost); err != nil {
			return nil, fmt.Errorf("failed to scan purchase return item: %w", err)
		}
		items = append(items, domain.PurchaseReturnItem{
			ItemID:           m.ItemID,
			ReturnID:         m.ReturnID,
			ProductID:        m.ProductID,
			ProductName:      m.ProductName,
			QuantityReturned: m.QuantityReturned,
			UnitCost:         m.UnitCost,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating purchase return items: %w", err)
	}
	return items, nil
}
