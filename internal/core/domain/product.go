package domain

import (
	"github.com/shopspring/decimal"
)

// Product carries the two fields the costing engine owns: on-hand quantity
// and the weighted-average unit cost. CostPrice is recomputed on every
// purchase receipt, never simply overwritten.
type Product struct {
	ProductID    string          `json:"productID"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}
