package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseItemRequest is one line of an expense.
type ExpenseItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// CreateExpenseRequest defines a recorded business expense. DueDate uses the
// 2006-01-02 layout and may be empty for expenses with no due date.
type CreateExpenseRequest struct {
	Category      string               `json:"category" binding:"required"`
	Payee         string               `json:"payee"`
	AccountName   string               `json:"accountName"`
	PaymentMethod string               `json:"paymentMethod"`
	DueDate       string               `json:"dueDate"`
	AmountPaid    decimal.Decimal      `json:"amountPaid"`
	Remarks       string               `json:"remarks"`
	Items         []ExpenseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID     string          `json:"expenseID"`
	ExpenseNo     string          `json:"expenseNo"`
	Category      string          `json:"category"`
	Payee         string          `json:"payee"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	DueDate       *time.Time      `json:"dueDate,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	PaymentStatus string          `json:"paymentStatus"`
}

// ToExpenseResponse converts a domain.Expense.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	res := ExpenseResponse{
		ExpenseID:     e.ExpenseID,
		ExpenseNo:     e.ExpenseNo,
		Category:      e.Category,
		Payee:         e.Payee,
		ExpenseDate:   e.ExpenseDate,
		TotalAmount:   e.TotalAmount,
		AmountPaid:    e.AmountPaid,
		AmountDue:     e.AmountDue,
		PaymentStatus: string(e.PaymentStatus),
	}
	if !e.DueDate.IsZero() {
		due := e.DueDate
		res.DueDate = &due
	}
	return res
}
