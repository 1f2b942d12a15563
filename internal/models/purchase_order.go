package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder represents a row of the purchase_orders table.
type PurchaseOrder struct {
	OrderID         string          `db:"order_id"`
	PurchaseOrderNo string          `db:"purchase_order_no"`
	SupplierName    string          `db:"supplier_name"`
	OrderDate       time.Time       `db:"order_date"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	TotalVat        decimal.Decimal `db:"total_vat"`
	Discount        decimal.Decimal `db:"discount"`
	GrandTotal      decimal.Decimal `db:"grand_total"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	AmountDue       decimal.Decimal `db:"amount_due"`
	PaymentStatus   string          `db:"payment_status"`
	Remarks         string          `db:"remarks"`
	AuditFields
}

// PurchaseOrderItem represents a row of the purchase_order_items table.
type PurchaseOrderItem struct {
	ItemID       string          `db:"item_id"`
	OrderID      string          `db:"order_id"`
	ProductID    string          `db:"product_id"`
	ProductName  string          `db:"product_name"`
	Quantity     int             `db:"quantity"`
	UnitCost     decimal.Decimal `db:"unit_cost"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	VatAmount    decimal.Decimal `db:"vat_amount"`
	Subtotal     decimal.Decimal `db:"subtotal"`
}
