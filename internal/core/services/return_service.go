package services

import (
	"context"
	"errors"
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

// returnService processes customer and supplier returns. The return reference
// number is the idempotency key for both kinds: the unique constraint in the
// database is the final authority, but the service also checks upfront so a
// replay fails fast without opening a unit of work.
type returnService struct {
	BaseService
	salesReturnRepo    portsrepo.SalesReturnRepository
	purchaseReturnRepo portsrepo.PurchaseReturnRepository
	productRepo        portsrepo.ProductReader
	defaultAccountName string
}

// NewReturnService creates a new return service.
func NewReturnService(
	salesReturnRepo portsrepo.SalesReturnRepository,
	purchaseReturnRepo portsrepo.PurchaseReturnRepository,
	productRepo portsrepo.ProductReader,
	defaultAccountName string,
) portssvc.ReturnSvcFacade {
	return &returnService{
		salesReturnRepo:    salesReturnRepo,
		purchaseReturnRepo: purchaseReturnRepo,
		productRepo:        productRepo,
		defaultAccountName: defaultAccountName,
	}
}

// Ensure returnService implements the ReturnSvcFacade interface
var _ portssvc.ReturnSvcFacade = (*returnService)(nil)

func (s *returnService) ProcessSalesReturn(ctx context.Context, req dto.CreateSalesReturnRequest, userID string) (*domain.SalesReturn, error) {
	if _, err := s.salesReturnRepo.FindByReturnRefNo(ctx, req.ReturnRefNo); err == nil {
		return nil, fmt.Errorf("%w: sales return %s already processed", apperrors.ErrDuplicate, req.ReturnRefNo)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for sales return")
		return nil, err
	}

	now := time.Now()
	ret := domain.SalesReturn{
		ReturnID:     uuid.NewString(),
		ReturnRefNo:  req.ReturnRefNo,
		CustomerName: req.CustomerName,
		OrderID:      req.OrderID,
		Remarks:      req.Remarks,
		ReturnDate:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative for product %s", apperrors.ErrValidation, product.Name)
		}
		ret.Items = append(ret.Items, domain.SalesReturnItem{
			ItemID:           uuid.NewString(),
			ReturnID:         ret.ReturnID,
			ProductID:        item.ProductID,
			ProductName:      product.Name,
			QuantityReturned: item.QuantityReturned,
			UnitPrice:        item.UnitPrice,
		})
		ret.TotalAmount = ret.TotalAmount.Add(item.UnitPrice.Mul(decimalFromInt(item.QuantityReturned)))
	}

	// The refund reduces what the customer owes: a credit in their sub-ledger.
	entityEntry := domain.EntityLedgerEntry{
		EntryID:      uuid.NewString(),
		EntityType:   domain.EntityCustomer,
		EntityName:   req.CustomerName,
		TrnRefNo:     req.ReturnRefNo,
		TrnType:      domain.RefSaleReturn,
		CreditAmount: ret.TotalAmount,
		Remarks:      req.Remarks,
		TrnDate:      now,
		AuditFields:  ret.AuditFields,
	}

	accountName := req.AccountName
	if accountName == "" {
		accountName = s.defaultAccountName
	}
	cashEntry, err := buildLedgerEntry(dto.RecordTransactionRequest{
		AccountName: accountName,
		Amount:      ret.TotalAmount,
		Direction:   domain.CashOut,
		RefType:     string(domain.RefSaleReturn),
		RefID:       ret.ReturnID,
		EntityType:  string(domain.EntityCustomer),
		EntityName:  req.CustomerName,
		TrnRefNo:    req.ReturnRefNo,
		Remarks:     req.Remarks,
	}, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.salesReturnRepo.SaveReturn(ctx, ret, entityEntry, cashEntry); err != nil {
		s.LogError(ctx, err, "Failed to process sales return", slog.String("return_ref_no", req.ReturnRefNo))
		return nil, err
	}

	s.LogInfo(ctx, "Sales return processed",
		slog.String("return_id", ret.ReturnID),
		slog.String("return_ref_no", ret.ReturnRefNo),
		slog.String("total_amount", ret.TotalAmount.String()))
	return &ret, nil
}

func (s *returnService) ProcessPurchaseReturn(ctx context.Context, req dto.CreatePurchaseReturnRequest, userID string) (*domain.PurchaseReturn, error) {
	if _, err := s.purchaseReturnRepo.FindByReturnRefNo(ctx, req.ReturnRefNo); err == nil {
		return nil, fmt.Errorf("%w: purchase return %s already processed", apperrors.ErrDuplicate, req.ReturnRefNo)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, productIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for purchase return")
		return nil, err
	}

	now := time.Now()
	ret := domain.PurchaseReturn{
		ReturnID:     uuid.NewString(),
		ReturnRefNo:  req.ReturnRefNo,
		SupplierName: req.SupplierName,
		OrderID:      req.OrderID,
		Remarks:      req.Remarks,
		ReturnDate:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		if item.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: unit cost must not be negative for product %s", apperrors.ErrValidation, product.Name)
		}
		ret.Items = append(ret.Items, domain.PurchaseReturnItem{
			ItemID:           uuid.NewString(),
			ReturnID:         ret.ReturnID,
			ProductID:        item.ProductID,
			ProductName:      product.Name,
			QuantityReturned: item.QuantityReturned,
			UnitCost:         item.UnitCost,
		})
		ret.TotalAmount = ret.TotalAmount.Add(item.UnitCost.Mul(decimalFromInt(item.QuantityReturned)))
	}

	// Goods go back, so the payable shrinks: a debit in the supplier's
	// sub-ledger and cash (or credit) flowing back in.
	entityEntry := domain.EntityLedgerEntry{
		EntryID:     uuid.NewString(),
		EntityType:  domain.EntitySupplier,
		EntityName:  req.SupplierName,
		TrnRefNo:    req.ReturnRefNo,
		TrnType:     domain.RefPurchaseReturn,
		DebitAmount: ret.TotalAmount,
		Remarks:     req.Remarks,
		TrnDate:     now,
		AuditFields: ret.AuditFields,
	}

	accountName := req.AccountName
	if accountName == "" {
		accountName = s.defaultAccountName
	}
	cashEntry, err := buildLedgerEntry(dto.RecordTransactionRequest{
		AccountName: accountName,
		Amount:      ret.TotalAmount,
		Direction:   domain.CashIn,
		RefType:     string(domain.RefPurchaseReturn),
		RefID:       ret.ReturnID,
		EntityType:  string(domain.EntitySupplier),
		EntityName:  req.SupplierName,
		TrnRefNo:    req.ReturnRefNo,
		Remarks:     req.Remarks,
	}, userID, now)
	if err != nil {
		return nil, err
	}

	if err := s.purchaseReturnRepo.SaveReturn(ctx, ret, entityEntry, cashEntry); err != nil {
		s.LogError(ctx, err, "Failed to process purchase return", slog.String("return_ref_no", req.ReturnRefNo))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase return processed",
		slog.String("return_id", ret.ReturnID),
		slog.String("return_ref_no", ret.ReturnRefNo),
		slog.String("total_amount", ret.TotalAmount.String()))
	return &ret, nil
}

func (s *returnService) GetSalesReturnByRefNo(ctx context.Context, returnRefNo string) (*domain.SalesReturn, error) {
	ret, err := s.salesReturnRepo.FindByReturnRefNo(ctx, returnRefNo)
	if err != nil {
		s.LogError(ctx, err, "Failed to find sales return", slog.String("return_ref_no", returnRefNo))
		return nil, err
	}
	return ret, nil
}

func (s *returnService) GetPurchaseReturnByRefNo(ctx context.Context, returnRefNo string) (*domain.PurchaseReturn, error) {
	ret, err := s.purchaseReturnRepo.FindByReturnRefNo(ctx, returnRefNo)
	if err != nil {
		s.LogError(ctx, err, "Failed to find purchase return", slog.String("return_ref_no", returnRefNo))
		return nil, err
	}
	return ret, nil
}
