package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a standalone settlement against a customer or supplier,
// optionally applied to a referenced order's due amount.
type Payment struct {
	PaymentID     string          `json:"paymentID"`
	PaymentNo     string          `json:"paymentNo"`
	EntityType    EntityType      `json:"entityType"`
	EntityName    string          `json:"entityName"`
	RefType       ReferenceType   `json:"refType"`
	RefID         string          `json:"refID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AccountName   string          `json:"accountName"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Remarks       string          `json:"remarks"`
	PaymentDate   time.Time       `json:"paymentDate"`
	AuditFields
}

// Recalculate restores the aggregate invariant after any mutation of
// AmountPaid or TotalAmount.
func (p *Payment) Recalculate() {
	p.PaymentStatus = DerivePaymentStatus(p.AmountPaid, p.TotalAmount)
}
