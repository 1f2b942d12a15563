package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder is a goods-receipt aggregate. Receiving its items drives the
// weighted-average cost recalculation on each product.
type PurchaseOrder struct {
	OrderID         string              `json:"orderID"`
	PurchaseOrderNo string              `json:"purchaseOrderNo"`
	SupplierName    string              `json:"supplierName"`
	OrderDate       time.Time           `json:"orderDate"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	TotalVat        decimal.Decimal     `json:"totalVat"`
	Discount        decimal.Decimal     `json:"discount"`
	GrandTotal      decimal.Decimal     `json:"grandTotal"`
	AmountPaid      decimal.Decimal     `json:"amountPaid"`
	AmountDue       decimal.Decimal     `json:"amountDue"`
	PaymentStatus   PaymentStatus       `json:"paymentStatus"`
	Remarks         string              `json:"remarks"`
	Items           []PurchaseOrderItem `json:"items,omitempty"`
	AuditFields
}

// Recalculate restores the aggregate invariant after any mutation of
// AmountPaid or GrandTotal.
func (o *PurchaseOrder) Recalculate() {
	o.AmountDue = o.GrandTotal.Sub(o.AmountPaid)
	o.PaymentStatus = DerivePaymentStatus(o.AmountPaid, o.GrandTotal)
}

// PurchaseOrderItem is one received line. UnitCost feeds the weighted-average
// blend; SellingPrice is the new retail price applied on receipt.
type PurchaseOrderItem struct {
	ItemID       string          `json:"itemID"`
	OrderID      string          `json:"orderID"`
	ProductID    string          `json:"productID"`
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	VatAmount    decimal.Decimal `json:"vatAmount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}
