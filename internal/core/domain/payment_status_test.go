package domain_test

import (
	"testing"
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestDerivePaymentStatus(t *testing.T) {
	tests := []struct {
		name       string
		amountPaid decimal.Decimal
		total      decimal.Decimal
		want       domain.PaymentStatus
	}{
		{"nothing paid", d("0"), d("100"), domain.PaymentPending},
		{"negative paid treated as pending", d("-5"), d("100"), domain.PaymentPending},
		{"half paid", d("50"), d("100"), domain.PaymentPartiallyPaid},
		{"one cent short", d("99.99"), d("100"), domain.PaymentPartiallyPaid},
		{"exactly paid counts as paid", d("100"), d("100"), domain.PaymentPaid},
		{"overpayment still paid", d("150"), d("100"), domain.PaymentPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DerivePaymentStatus(tt.amountPaid, tt.total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDerivePaymentStatus_Idempotent(t *testing.T) {
	first := domain.DerivePaymentStatus(d("50"), d("100"))
	second := domain.DerivePaymentStatus(d("50"), d("100"))
	assert.Equal(t, first, second)
}

func TestDeriveExpenseStatus(t *testing.T) {
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		paid    decimal.Decimal
		total   decimal.Decimal
		dueDate time.Time
		want    domain.PaymentStatus
	}{
		{"unpaid before due date", d("0"), d("100"), tomorrow, domain.PaymentPending},
		{"unpaid past due date", d("0"), d("100"), yesterday, domain.PaymentOverdue},
		{"partially paid past due date", d("40"), d("100"), yesterday, domain.PaymentOverdue},
		{"fully paid past due date stays paid", d("100"), d("100"), yesterday, domain.PaymentPaid},
		{"no due date never overdue", d("0"), d("100"), time.Time{}, domain.PaymentPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveExpenseStatus(tt.paid, tt.total, tt.dueDate, today)
			assert.Equal(t, tt.want, got)
		})
	}
}
