package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived settlement state of an order-like aggregate.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentOverdue       PaymentStatus = "OVERDUE"
)

// DerivePaymentStatus maps (amountPaid, total) to a settlement status.
// Equality counts as PAID, and overpayment stays PAID.
func DerivePaymentStatus(amountPaid, total decimal.Decimal) PaymentStatus {
	switch {
	case amountPaid.LessThanOrEqual(decimal.Zero):
		return PaymentPending
	case amountPaid.LessThan(total):
		return PaymentPartiallyPaid
	default:
		return PaymentPaid
	}
}

// DeriveExpenseStatus extends DerivePaymentStatus with the expense-only
// OVERDUE override: a not-yet-paid expense past its due date is OVERDUE.
func DeriveExpenseStatus(amountPaid, total decimal.Decimal, dueDate, today time.Time) PaymentStatus {
	status := DerivePaymentStatus(amountPaid, total)
	if status != PaymentPaid && !dueDate.IsZero() && dueDate.Before(today) {
		return PaymentOverdue
	}
	return status
}
