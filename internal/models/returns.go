package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReturn represents a row of the sales_returns table. ReturnRefNo
// carries a unique constraint, which is what makes return processing
// idempotent.
type SalesReturn struct {
	ReturnID     string          `db:"return_id"`
	ReturnRefNo  string          `db:"return_ref_no"`
	CustomerName string          `db:"customer_name"`
	OrderID      string          `db:"order_id"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Remarks      string          `db:"remarks"`
	ReturnDate   time.Time       `db:"return_date"`
	AuditFields
}

// SalesReturnItem represents a row of the sales_return_items table.
type SalesReturnItem struct {
	ItemID           string          `db:"item_id"`
	ReturnID         string          `db:"return_id"`
	ProductID        string          `db:"product_id"`
	ProductName      string          `db:"product_name"`
	QuantityReturned int             `db:"quantity_returned"`
	UnitPrice        decimal.Decimal `db:"unit_price"`
}

// PurchaseReturn represents a row of the purchase_returns table.
type PurchaseReturn struct {
	ReturnID     string          `db:"return_id"`
	ReturnRefNo  string          `db:"return_ref_no"`
	SupplierName string          `db:"supplier_name"`
	OrderID      string          `db:"order_id"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	Remarks      string          `db:"remarks"`
	ReturnDate   time.Time       `db:"return_date"`
	AuditFields
}

// PurchaseReturnItem represents a row of the purchase_return_items table.
type PurchaseReturnItem struct {
	ItemID           string          `db:"item_id"`
	ReturnID         string          `db:"return_id"`
	ProductID        string          `db:"product_id"`
	ProductName      string          `db:"product_name"`
	QuantityReturned int             `db:"quantity_returned"`
	UnitCost         decimal.Decimal `db:"unit_cost"`
}
