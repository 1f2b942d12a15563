package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
)

// expenseService records business expenses and their cash ledger effect.
type expenseService struct {
	BaseService
	expenseRepo        portsrepo.ExpenseRepository
	defaultAccountName string
}

// NewExpenseService creates a new expense service.
func NewExpenseService(expenseRepo portsrepo.ExpenseRepository, defaultAccountName string) portssvc.ExpenseSvcFacade {
	return &expenseService{
		expenseRepo:        expenseRepo,
		defaultAccountName: defaultAccountName,
	}
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, userID string) (*domain.Expense, error) {
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: amount paid must not be negative", apperrors.ErrValidation)
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(dateLayout, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid dueDate %q", apperrors.ErrValidation, req.DueDate)
		}
		dueDate = parsed
	}

	now := time.Now()
	expense := domain.Expense{
		ExpenseID:   uuid.NewString(),
		ExpenseNo:   newDocumentNo("EXP", now),
		Category:    req.Category,
		Payee:       req.Payee,
		ExpenseDate: now,
		DueDate:     dueDate,
		AmountPaid:  req.AmountPaid,
		Remarks:     req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		if item.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: expense item amount must not be negative", apperrors.ErrValidation)
		}
		expense.Items = append(expense.Items, domain.ExpenseItem{
			ItemID:      uuid.NewString(),
			ExpenseID:   expense.ExpenseID,
			Description: item.Description,
			Amount:      item.Amount,
		})
		expense.TotalAmount = expense.TotalAmount.Add(item.Amount)
	}
	expense.Recalculate(now)

	var cashEntry *domain.LedgerEntry
	if expense.AmountPaid.IsPositive() {
		accountName := req.AccountName
		if accountName == "" {
			accountName = s.defaultAccountName
		}
		entry, err := buildLedgerEntry(dto.RecordTransactionRequest{
			AccountName:   accountName,
			Amount:        expense.AmountPaid,
			Direction:     domain.CashOut,
			RefType:       string(domain.RefExpense),
			RefID:         expense.ExpenseID,
			EntityType:    string(domain.EntityInternal),
			EntityName:    expense.Payee,
			TrnRefNo:      expense.ExpenseNo,
			Remarks:       req.Remarks,
			PaymentStatus: string(expense.PaymentStatus),
		}, userID, now)
		if err != nil {
			return nil, err
		}
		entry.PaymentMethod = req.PaymentMethod
		cashEntry = &entry
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense, cashEntry); err != nil {
		s.LogError(ctx, err, "Failed to save expense", slog.String("expense_no", expense.ExpenseNo))
		return nil, err
	}

	s.LogInfo(ctx, "Expense recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("expense_no", expense.ExpenseNo),
		slog.String("payment_status", string(expense.PaymentStatus)))
	return &expense, nil
}

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find expense", slog.String("expense_id", expenseID))
		return nil, err
	}
	// OVERDUE is relative to now, not to the persisted snapshot.
	expense.Recalculate(time.Now())
	return expense, nil
}
