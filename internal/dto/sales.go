package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckoutItemRequest is one line of a checkout request.
type CheckoutItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CheckoutRequest defines a POS checkout. The whole line-item batch is
// validated before any stock mutation; one bad line rejects the request.
type CheckoutRequest struct {
	CustomerName  string                `json:"customerName" binding:"required"`
	AccountName   string                `json:"accountName"`
	PaymentMethod string                `json:"paymentMethod"`
	Discount      decimal.Decimal       `json:"discount"`
	AmountPaid    decimal.Decimal       `json:"amountPaid"`
	Remarks       string                `json:"remarks"`
	Items         []CheckoutItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SalesOrderResponse defines the data returned for a sales order.
type SalesOrderResponse struct {
	OrderID       string          `json:"orderID"`
	InvoiceNo     string          `json:"invoiceNo"`
	CustomerName  string          `json:"customerName"`
	OrderDate     time.Time       `json:"orderDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Discount      decimal.Decimal `json:"discount"`
	GrandTotal    decimal.Decimal `json:"grandTotal"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	AmountDue     decimal.Decimal `json:"amountDue"`
	PaymentStatus string          `json:"paymentStatus"`
}

// ToSalesOrderResponse converts a domain.SalesOrder.
func ToSalesOrderResponse(o *domain.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		OrderID:       o.OrderID,
		InvoiceNo:     o.InvoiceNo,
		CustomerName:  o.CustomerName,
		OrderDate:     o.OrderDate,
		TotalAmount:   o.TotalAmount,
		Discount:      o.Discount,
		GrandTotal:    o.GrandTotal,
		AmountPaid:    o.AmountPaid,
		AmountDue:     o.AmountDue,
		PaymentStatus: string(o.PaymentStatus),
	}
}
