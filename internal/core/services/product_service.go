package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
)

// productService manages the product catalog.
type productService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
}

// NewProductService creates a new product service.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo}
}

// Ensure productService implements the ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	now := time.Now()
	product := domain.Product{
		ProductID:    uuid.NewString(),
		SKU:          req.SKU,
		Name:         req.Name,
		Quantity:     req.Quantity,
		CostPrice:    req.CostPrice,
		SellingPrice: req.SellingPrice,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		s.LogError(ctx, err, "Failed to save product", slog.String("sku", req.SKU))
		return nil, err
	}

	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find product", slog.String("product_id", productID))
		return nil, err
	}
	return product, nil
}
