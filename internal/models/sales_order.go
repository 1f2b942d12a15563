package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder represents a row of the sales_orders table.
type SalesOrder struct {
	OrderID       string          `db:"order_id"`
	InvoiceNo     string          `db:"invoice_no"`
	CustomerName  string          `db:"customer_name"`
	OrderDate     time.Time       `db:"order_date"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Discount      decimal.Decimal `db:"discount"`
	GrandTotal    decimal.Decimal `db:"grand_total"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	AmountDue     decimal.Decimal `db:"amount_due"`
	PaymentMethod string          `db:"payment_method"`
	PaymentStatus string          `db:"payment_status"`
	Remarks       string          `db:"remarks"`
	AuditFields
}

// SalesOrderItem represents a row of the sales_order_items table.
type SalesOrderItem struct {
	ItemID      string          `db:"item_id"`
	OrderID     string          `db:"order_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int             `db:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	Subtotal    decimal.Decimal `db:"subtotal"`
}
