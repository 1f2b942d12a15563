package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is an order-like aggregate with one extra status: an unpaid expense
// past its due date reports OVERDUE.
type Expense struct {
	ExpenseID     string          `json:"expenseID"`
	ExpenseNo     string          `json:"expenseNo"`
	Category      string          `json:"category"`
	Payee         string          `json:"payee"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	DueDate       time.Time       `json:"dueDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Remarks       string          `json:"remarks"`
	Items         []ExpenseItem   `json:"items,omitempty"`
	AuditFields
}

// Recalculate restores the aggregate invariant, applying the OVERDUE
// override relative to today.
func (e *Expense) Recalculate(today time.Time) {
	e.AmountDue = e.TotalAmount.Sub(e.AmountPaid)
	e.PaymentStatus = DeriveExpenseStatus(e.AmountPaid, e.TotalAmount, e.DueDate, today)
}

// ExpenseItem is one expense line.
type ExpenseItem struct {
	ItemID      string          `json:"itemID"`
	ExpenseID   string          `json:"expenseID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}
