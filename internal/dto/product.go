package dto

import (
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a catalog product.
type CreateProductRequest struct {
	SKU          string          `json:"sku" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	Quantity     int             `json:"quantity" binding:"gte=0"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID    string          `json:"productID"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
	IsActive     bool            `json:"isActive"`
}

// ToProductResponse converts a domain.Product.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:    p.ProductID,
		SKU:          p.SKU,
		Name:         p.Name,
		Quantity:     p.Quantity,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		IsActive:     p.IsActive,
	}
}
