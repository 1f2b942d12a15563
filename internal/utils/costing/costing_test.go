package costing_test

import (
	"testing"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/utils/costing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestReceive_WeightedAverage(t *testing.T) {
	p := &domain.Product{Name: "Widget", Quantity: 10, CostPrice: d("5.00"), SellingPrice: d("8.00")}

	err := costing.Receive(p, 10, d("7.00"), d("9.50"))

	require.NoError(t, err)
	assert.Equal(t, 20, p.Quantity)
	assert.True(t, p.CostPrice.Equal(d("6.00")), "cost=%s", p.CostPrice)
	assert.True(t, p.SellingPrice.Equal(d("9.50")))
}

func TestReceive_RoundsHalfUpToTwoPlaces(t *testing.T) {
	// (1.00*1 + 2.00*2) / 3 = 1.666... -> 1.67
	p := &domain.Product{Quantity: 1, CostPrice: d("1.00")}

	err := costing.Receive(p, 2, d("2.00"), d("3.00"))

	require.NoError(t, err)
	assert.True(t, p.CostPrice.Equal(d("1.67")), "cost=%s", p.CostPrice)
}

func TestReceive_FirstReceiptUsesPurchaseCost(t *testing.T) {
	p := &domain.Product{Quantity: 0, CostPrice: decimal.Zero}

	err := costing.Receive(p, 5, d("4.25"), d("6.00"))

	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
	assert.True(t, p.CostPrice.Equal(d("4.25")))
}

func TestReceive_RejectsNonPositiveQuantity(t *testing.T) {
	p := &domain.Product{Quantity: 10, CostPrice: d("5.00")}

	err := costing.Receive(p, 0, d("7.00"), d("9.00"))

	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 10, p.Quantity, "no mutation on rejection")
	assert.True(t, p.CostPrice.Equal(d("5.00")))
}

func TestConsume(t *testing.T) {
	p := &domain.Product{Name: "Widget", Quantity: 10, CostPrice: d("5.00")}

	require.NoError(t, costing.Consume(p, 4))
	assert.Equal(t, 6, p.Quantity)
	assert.True(t, p.CostPrice.Equal(d("5.00")), "sales never touch cost")
}

func TestConsume_InsufficientStock(t *testing.T) {
	p := &domain.Product{Name: "Widget", Quantity: 3}

	err := costing.Consume(p, 5)

	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)
	assert.Equal(t, 3, p.Quantity, "no partial mutation")
}

func TestRollback_ClampsAtZero(t *testing.T) {
	p := &domain.Product{Quantity: 3}

	costing.Rollback(p, 5)

	assert.Equal(t, 0, p.Quantity)
}

func TestReturnAdjustments(t *testing.T) {
	p := &domain.Product{Quantity: 2}

	costing.RestockFromReturn(p, 4)
	assert.Equal(t, 6, p.Quantity)

	// Purchase returns are not floor-clamped and may legally go negative.
	costing.ReduceFromReturn(p, 8)
	assert.Equal(t, -2, p.Quantity)
}
