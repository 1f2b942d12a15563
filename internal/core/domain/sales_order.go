package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is a checkout aggregate. AmountDue and PaymentStatus are always
// recomputed from (AmountPaid, GrandTotal) via Recalculate; they are never
// patched independently.
type SalesOrder struct {
	OrderID       string           `json:"orderID"`
	InvoiceNo     string           `json:"invoiceNo"`
	CustomerName  string           `json:"customerName"`
	OrderDate     time.Time        `json:"orderDate"`
	TotalAmount   decimal.Decimal  `json:"totalAmount"`
	Discount      decimal.Decimal  `json:"discount"`
	GrandTotal    decimal.Decimal  `json:"grandTotal"`
	AmountPaid    decimal.Decimal  `json:"amountPaid"`
	AmountDue     decimal.Decimal  `json:"amountDue"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	Remarks       string           `json:"remarks"`
	Items         []SalesOrderItem `json:"items,omitempty"`
	AuditFields
}

// Recalculate restores the aggregate invariant after any mutation of
// AmountPaid or GrandTotal.
func (o *SalesOrder) Recalculate() {
	o.AmountDue = o.GrandTotal.Sub(o.AmountPaid)
	o.PaymentStatus = DerivePaymentStatus(o.AmountPaid, o.GrandTotal)
}

// SalesOrderItem is one sold line.
type SalesOrderItem struct {
	ItemID      string          `json:"itemID"`
	OrderID     string          `json:"orderID"`
	ProductID   string          `json:"productID"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
