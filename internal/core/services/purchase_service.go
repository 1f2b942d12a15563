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

// purchaseService runs goods receipts. The weighted-average cost blend itself
// happens inside the repository's unit of work, under the product row locks.
type purchaseService struct {
	BaseService
	orderRepo          portsrepo.PurchaseOrderRepository
	productRepo        portsrepo.ProductReader
	defaultAccountName string
}

// NewPurchaseService creates a new purchase service.
func NewPurchaseService(orderRepo portsrepo.PurchaseOrderRepository, productRepo portsrepo.ProductReader, defaultAccountName string) portssvc.PurchaseSvcFacade {
	return &purchaseService{
		orderRepo:          orderRepo,
		productRepo:        productRepo,
		defaultAccountName: defaultAccountName,
	}
}

// Ensure purchaseService implements the PurchaseSvcFacade interface
var _ portssvc.PurchaseSvcFacade = (*purchaseService)(nil)

func (s *purchaseService) ReceiveGoods(ctx context.Context, req dto.ReceiptRequest, userID string) (*domain.PurchaseOrder, error) {
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
		s.LogError(ctx, err, "Failed to load products for receipt")
		return nil, err
	}

	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if item.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit cost must not be negative for product %s", apperrors.ErrValidation, product.Name)
		}
		if item.VatAmount.IsNegative() {
			return nil, fmt.Errorf("%w: VAT amount must not be negative for product %s", apperrors.ErrValidation, product.Name)
		}
	}

	now := time.Now()
	order := domain.PurchaseOrder{
		OrderID:         uuid.NewString(),
		PurchaseOrderNo: newDocumentNo("PO", now),
		SupplierName:    req.SupplierName,
		OrderDate:       now,
		Discount:        req.Discount,
		AmountPaid:      req.AmountPaid,
		Remarks:         req.Remarks,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		product := products[item.ProductID]
		sellingPrice := item.SellingPrice
		if sellingPrice.IsZero() {
			sellingPrice = product.SellingPrice
		}
		subtotal := item.UnitCost.Mul(decimalFromInt(item.Quantity)).Add(item.VatAmount)
		order.Items = append(order.Items, domain.PurchaseOrderItem{
			ItemID:       uuid.NewString(),
			OrderID:      order.OrderID,
			ProductID:    item.ProductID,
			ProductName:  product.Name,
			Quantity:     item.Quantity,
			UnitCost:     item.UnitCost,
			SellingPrice: sellingPrice,
			VatAmount:    item.VatAmount,
			Subtotal:     subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)
		order.TotalVat = order.TotalVat.Add(item.VatAmount)
	}
	order.GrandTotal = order.TotalAmount.Sub(order.Discount)
	order.Recalculate()

	var cashEntry *domain.LedgerEntry
	if order.AmountPaid.IsPositive() {
		accountName := req.AccountName
		if accountName == "" {
			accountName = s.defaultAccountName
		}
		entry, err := buildLedgerEntry(dto.RecordTransactionRequest{
			AccountName:   accountName,
			Amount:        order.AmountPaid,
			Direction:     domain.CashOut,
			RefType:       string(domain.RefPurchaseOrder),
			RefID:         order.OrderID,
			EntityType:    string(domain.EntitySupplier),
			EntityName:    order.SupplierName,
			TrnRefNo:      order.PurchaseOrderNo,
			Remarks:       req.Remarks,
			PaymentStatus: string(order.PaymentStatus),
		}, userID, now)
		if err != nil {
			return nil, err
		}
		entry.PaymentMethod = req.PaymentMethod
		cashEntry = &entry
	}

	if err := s.orderRepo.SaveReceipt(ctx, order, cashEntry); err != nil {
		s.LogError(ctx, err, "Goods receipt failed", slog.String("purchase_order_no", order.PurchaseOrderNo))
		return nil, err
	}

	s.LogInfo(ctx, "Goods receipt completed",
		slog.String("order_id", order.OrderID),
		slog.String("purchase_order_no", order.PurchaseOrderNo),
		slog.String("payment_status", string(order.PaymentStatus)))
	return &order, nil
}

func (s *purchaseService) GetOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find purchase order", slog.String("order_id", orderID))
		return nil, err
	}
	return order, nil
}

func (s *purchaseService) DeleteOrder(ctx context.Context, orderID string) error {
	if err := s.orderRepo.DeleteOrder(ctx, orderID); err != nil {
		s.LogError(ctx, err, "Failed to delete purchase order", slog.String("order_id", orderID))
		return err
	}
	s.LogInfo(ctx, "Purchase order deleted and received stock reversed", slog.String("order_id", orderID))
	return nil
}
