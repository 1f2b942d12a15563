// Package costing holds the inventory costing arithmetic: weighted-average
// unit cost on receipt and the stock adjustments for sales, rollbacks, and
// returns. Functions mutate the passed product in memory only; persistence
// (with row locking) is the repository's job.
package costing

import (
	"fmt"

	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Receive applies a purchase receipt: stock goes up by purchasedQty and
// CostPrice becomes the quantity-weighted blend of existing and received
// stock, rounded half-up to 2 decimal places. With no resulting stock the
// cost is simply the purchase cost.
func Receive(p *domain.Product, purchasedQty int, purchaseUnitCost, newSellingPrice decimal.Decimal) error {
	if purchasedQty <= 0 {
		return fmt.Errorf("%w: purchased quantity must be positive, got %d", apperrors.ErrValidation, purchasedQty)
	}
	if purchaseUnitCost.IsNegative() {
		return fmt.Errorf("%w: purchase unit cost must not be negative", apperrors.ErrValidation)
	}

	currentStock := decimal.NewFromInt(int64(p.Quantity))
	receivedQty := decimal.NewFromInt(int64(purchasedQty))
	newStock := p.Quantity + purchasedQty

	var newCost decimal.Decimal
	if newStock > 0 {
		totalCost := p.CostPrice.Mul(currentStock).Add(purchaseUnitCost.Mul(receivedQty))
		newCost = totalCost.DivRound(decimal.NewFromInt(int64(newStock)), 2)
	} else {
		newCost = purchaseUnitCost
	}

	p.Quantity = newStock
	p.CostPrice = newCost
	p.SellingPrice = newSellingPrice
	return nil
}

// Consume removes sold stock. It fails with ErrInsufficientStock before any
// mutation when qty exceeds the on-hand quantity; cost is unaffected by sales.
func Consume(p *domain.Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: consumed quantity must be positive, got %d", apperrors.ErrValidation, qty)
	}
	if qty > p.Quantity {
		return fmt.Errorf("%w: product %s has %d on hand, requested %d",
			apperrors.ErrInsufficientStock, p.Name, p.Quantity, qty)
	}
	p.Quantity -= qty
	return nil
}

// Rollback reverses a receipt on order deletion. Stock never goes below zero:
// this is a best-effort reversal, since part of the received quantity may
// already have been sold through.
func Rollback(p *domain.Product, qty int) {
	p.Quantity -= qty
	if p.Quantity < 0 {
		p.Quantity = 0
	}
}

// RestockFromReturn puts goods returned by a customer back on hand.
func RestockFromReturn(p *domain.Product, qty int) {
	p.Quantity += qty
}

// ReduceFromReturn removes goods sent back to a supplier. The result may go
// negative when the original receipt partially sold through; that is accepted
// business behavior, not an error.
func ReduceFromReturn(p *domain.Product, qty int) {
	p.Quantity -= qty
}
