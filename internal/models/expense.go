package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a row of the expenses table. DueDate is nullable.
type Expense struct {
	ExpenseID     string          `db:"expense_id"`
	ExpenseNo     string          `db:"expense_no"`
	Category      string          `db:"category"`
	Payee         string          `db:"payee"`
	ExpenseDate   time.Time       `db:"expense_date"`
	DueDate       *time.Time      `db:"due_date"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	AmountDue     decimal.Decimal `db:"amount_due"`
	PaymentStatus string          `db:"payment_status"`
	Remarks       string          `db:"remarks"`
	AuditFields
}

// ExpenseItem represents a row of the expense_items table.
type ExpenseItem struct {
	ItemID      string          `db:"item_id"`
	ExpenseID   string          `db:"expense_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
}
