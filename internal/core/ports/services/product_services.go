package services

import (
	"context"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/salesync/salesync_backend/internal/dto"
)

// ProductSvcFacade manages the product catalog. Stock and cost are owned by
// the checkout/receipt units of work; this facade only creates and reads.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
}
