package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePaymentRequest defines a standalone settlement against a customer or
// supplier balance. RefType/RefID optionally tie the payment to an order so
// its paid amount and status are updated in the same transaction.
type CreatePaymentRequest struct {
	EntityType    string          `json:"entityType" binding:"required,oneof=CUSTOMER SUPPLIER"`
	EntityName    string          `json:"entityName" binding:"required"`
	RefType       string          `json:"refType"`
	RefID         string          `json:"refID"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required"`
	AmountPaid    decimal.Decimal `json:"amountPaid" binding:"required"`
	AccountName   string          `json:"accountName"`
	PaymentMethod string          `json:"paymentMethod"`
	Remarks       string          `json:"remarks"`
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID     string          `json:"paymentID"`
	PaymentNo     string          `json:"paymentNo"`
	EntityType    string          `json:"entityType"`
	EntityName    string          `json:"entityName"`
	RefType       string          `json:"refType"`
	RefID         string          `json:"refID"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AccountName   string          `json:"accountName"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

// ToPaymentResponse converts a domain.Payment.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:     p.PaymentID,
		PaymentNo:     p.PaymentNo,
		EntityType:    string(p.EntityType),
		EntityName:    p.EntityName,
		RefType:       string(p.RefType),
		RefID:         p.RefID,
		TotalAmount:   p.TotalAmount,
		AmountPaid:    p.AmountPaid,
		AccountName:   p.AccountName,
		PaymentMethod: p.PaymentMethod,
		PaymentStatus: string(p.PaymentStatus),
		PaymentDate:   p.PaymentDate,
	}
}
