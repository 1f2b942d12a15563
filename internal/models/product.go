package models

import (
	"github.com/shopspring/decimal"
)

// Product represents a row of the products table.
type Product struct {
	ProductID    string          `db:"product_id"`
	SKU          string          `db:"sku"`
	Name         string          `db:"name"`
	Quantity     int             `db:"quantity"`
	CostPrice    decimal.Decimal `db:"cost_price"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}
