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
)

type expenseRepository struct {
	baseRepository
	ledgerRepo portsrepo.LedgerWriter
}

// NewExpenseRepository creates a new repository for expenses.
func NewExpenseRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerWriter) portsrepo.ExpenseRepository {
	return &expenseRepository{baseRepository{pool: pool}, ledgerRepo}
}

var _ portsrepo.ExpenseRepository = (*expenseRepository)(nil)

// SaveExpense inserts the expense, its items, and the cash ledger entry (nil
// when nothing was paid yet) in one transaction.
func (r *expenseRepository) SaveExpense(ctx context.Context, expense domain.Expense, cashEntry *domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var dueDate *time.Time
	if !expense.DueDate.IsZero() {
		dueDate = &expense.DueDate
	}

	expenseQuery := `
		INSERT INTO expenses (expense_id, expense_no, category, payee, expense_date, due_date, total_amount, amount_paid, amount_due, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, expenseQuery,
		expense.ExpenseID,
		expense.ExpenseNo,
		expense.Category,
		expense.Payee,
		expense.ExpenseDate,
		dueDate,
		expense.TotalAmount,
		expense.AmountPaid,
		expense.AmountDue,
		string(expense.PaymentStatus),
		expense.Remarks,
		expense.CreatedAt,
		expense.CreatedBy,
		expense.LastUpdatedAt,
		expense.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, expense.ExpenseNo)
		}
		return fmt.Errorf("failed to insert expense %s: %w", expense.ExpenseID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO expense_items (item_id, expense_id, description, amount)
		VALUES ($1, $2, $3, $4);
	`
	for _, item := range expense.Items {
		batch.Queue(itemQuery, item.ItemID, item.ExpenseID, item.Description, item.Amount)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert items for expense %s: %w", expense.ExpenseID, err)
	}

	if cashEntry != nil {
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *cashEntry); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *expenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT expense_id, expense_no, category, payee, expense_date, due_date, total_amount, amount_paid, amount_due, payment_status, remarks, created_at, created_by, last_updated_at, last_updated_by
		FROM expenses
		WHERE expense_id = $1;
	`
	var m models.Expense
	err := r.pool.QueryRow(ctx, query, expenseID).Scan(
		&m.ExpenseID,
		&m.ExpenseNo,
		&m.Category,
		&m.Payee,
		&m.ExpenseDate,
		&m.DueDate,
		&m.TotalAmount,
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
			return nil, fmt.Errorf("%w: expense %s", apperrors.ErrNotFound, expenseID)
		}
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}

	items, err := r.findItems(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	expense := domain.Expense{
		ExpenseID:     m.ExpenseID,
		ExpenseNo:     m.ExpenseNo,
		Category:      m.Category,
		Payee:         m.Payee,
		ExpenseDate:   m.ExpenseDate,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		AmountDue:     m.AmountDue,
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
	if m.DueDate != nil {
		expense.DueDate = *m.DueDate
	}
	return &expense, nil
}

func (r *expenseRepository) findItems(ctx context.Context, expenseID string) ([]domain.ExpenseItem, error) {
	query := `
		SELECT item_id, expense_id, description, amount
		FROM expense_items
		WHERE expense_id = $1
		ORDER BY item_id;
	`
	rows, err := r.pool.Query(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for expense %s: %w", expenseID, err)
	}
	defer rows.Close()

	items := []domain.ExpenseItem{}
	for rows.Next() {
		var m models.ExpenseItem
		if err := rows.Scan(&m.ItemID, &m.ExpenseID, &m.Description, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense item: %w", err)
		}
		items = append(items, domain.ExpenseItem{
			ItemID:      m.ItemID,
			ExpenseID:   m.ExpenseID,
			Description: m.Description,
			Amount:      m.Amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense items: %w", err)
	}
	return items, nil
}
