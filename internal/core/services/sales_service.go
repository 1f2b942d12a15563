package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
)

// salesService runs POS checkouts. The service validates the whole line-item
// batch upfront so an obviously bad request never reaches the database; the
// repository's guarded stock updates remain the final authority under
// concurrency.
type salesService struct {
	BaseService
	orderRepo          portsrepo.SalesOrderRepository
	productRepo        portsrepo.ProductReader
	defaultAccountName string
}

// NewSalesService creates a new sales service. defaultAccountName names the
// account credited when a checkout does not specify one.
func NewSalesService(orderRepo portsrepo.SalesOrderRepository, productRepo portsrepo.ProductReader, defaultAccountName string) portssvc.SalesSvcFacade {
	return &salesService{
		orderRepo:          orderRepo,
		productRepo:        productRepo,
		defaultAccountName: defaultAccountName,
	}
}

// Ensure salesService implements the SalesSvcFacade interface
var _ portssvc.SalesSvcFacade = (*salesService)(nil)

// newDocumentNo builds a human-readable document number such as
// INV-20250830143000-1A2B.
func newDocumentNo(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102150405"), uuid.NewString()[:4])
}

func (s *salesService) Checkout(ctx context.Context, req dto.CheckoutRequest, userID string) (*domain.SalesOrder, error) {
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrValidation)
	}
	if req.AmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: amount paid must not be negative", apperrors.ErrValidation)
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for checkout")
		return nil, err
	}

	// Validate every line before touching anything. One bad line rejects the
	// whole checkout.
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is inactive", apperrors.ErrValidation, product.Name)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, product.Name)
		}
		if item.Quantity > product.Quantity {
			return nil, fmt.Errorf("%w: product %s has %d on hand, requested %d",
				apperrors.ErrInsufficientStock, product.Name, product.Quantity, item.Quantity)
		}
	}

	now := time.Now()
	order := domain.SalesOrder{
		OrderID:       uuid.NewString(),
		InvoiceNo:     newDocumentNo("INV", now),
		CustomerName:  req.CustomerName,
		OrderDate:     now,
		Discount:      req.Discount,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		product := products[item.ProductID]
		subtotal := item.UnitPrice.Mul(decimalFromInt(item.Quantity))
		order.Items = append(order.Items, domain.SalesOrderItem{
			ItemID:      uuid.NewString(),
			OrderID:     order.OrderID,
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
	}
	order.GrandTotal = order.TotalAmount.Sub(order.Discount)
	order.Recalculate()

	var cashEntry *domain.LedgerEntry
	if order.AmountPaid.IsPositive() {
		entry, err := buildLedgerEntry(dto.RecordTransactionRequest{
			AccountName:   s.accountNameOrDefault(req.AccountName),
			Amount:        order.AmountPaid,
			Direction:     domain.CashIn,
			RefType:       string(domain.RefSaleOrder),
			RefID:         order.OrderID,
			EntityType:    string(domain.EntityCustomer),
			EntityName:    order.CustomerName,
			TrnRefNo:      order.InvoiceNo,
			Remarks:       req.Remarks,
			PaymentStatus: string(order.PaymentStatus),
		}, userID, now)
		if err != nil {
			return nil, err
		}
		entry.PaymentMethod = req.PaymentMethod
		cashEntry = &entry
	}

	if err := s.orderRepo.SaveCheckout(ctx, order, cashEntry); err != nil {
		s.LogError(ctx, err, "Checkout failed", slog.String("invoice_no", order.InvoiceNo))
		return nil, err
	}

	s.LogInfo(ctx, "Checkout completed",
		slog.String("order_id", order.OrderID),
		slog.String("invoice_no", order.InvoiceNo),
		slog.String("payment_status", string(order.PaymentStatus)))
	return &order, nil
}

func (s *salesService) accountNameOrDefault(name string) string {
	if name == "" {
		return s.defaultAccountName
	}
	return name
}

func (s *salesService) GetOrderByID(ctx context.Context, orderID string) (*domain.SalesOrder, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find sales order", slog.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (s *salesService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		s.LogError(ctx, err, "Failed to delete sales order", slog.String("order_id", orderID))
		return err
	}
	s.LogInfo(ctx, "Sales order deleted and items restocked", slog.String("order_id", orderID))
	return nil
}
