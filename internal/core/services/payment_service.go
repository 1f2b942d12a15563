package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/salesync/salesync_backend/internal/dto"
)

// paymentService records standalone settlements. A customer payment is cash
// in, a supplier payment is cash out; both write the counterparty sub-ledger
// and, when the payment references an order, settle that order's due amount in
// the same transaction.
type paymentService struct {
	BaseService
	paymentRepo        portsrepo.PaymentRepository
	salesOrderRepo     portsrepo.SalesOrderRepository
	purchaseOrderRepo  portsrepo.PurchaseOrderRepository
	defaultAccountName string
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepository,
	salesOrderRepo portsrepo.SalesOrderRepository,
	purchaseOrderRepo portsrepo.PurchaseOrderRepository,
	defaultAccountName string,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:        paymentRepo,
		salesOrderRepo:     salesOrderRepo,
		purchaseOrderRepo:  purchaseOrderRepo,
		defaultAccountName: defaultAccountName,
	}
}

// Ensure paymentService implements the PaymentSvcFacade interface
var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	entityType := domain.EntityType(req.EntityType)
	if entityType != domain.EntityCustomer && entityType != domain.EntitySupplier {
		return nil, fmt.Errorf("%w: payments settle CUSTOMER or SUPPLIER balances, got %q", apperrors.ErrInvalidEntityType, req.EntityType)
	}
	if !req.AmountPaid.IsPositive() {
		return nil, fmt.Errorf("%w: amount paid must be positive", apperrors.ErrValidation)
	}
	if req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: total amount must not be negative", apperrors.ErrValidation)
	}

	refType := domain.ReferenceType(req.RefType)
	if req.RefType != "" {
		if refType != domain.RefSaleOrder && refType != domain.RefPurchaseOrder {
			return nil, fmt.Errorf("%w: payments may reference SALE_ORDER or PURCHASE_ORDER, got %q", apperrors.ErrInvalidReferenceType, req.RefType)
		}
		if req.RefID == "" {
			return nil, fmt.Errorf("%w: refID is required when refType is set", apperrors.ErrValidation)
		}
	}

	now := time.Now()
	payment := domain.Payment{
		PaymentID:     uuid.NewString(),
		PaymentNo:     newDocumentNo("PAY", now),
		EntityType:    entityType,
		EntityName:    req.EntityName,
		RefType:       refType,
		RefID:         req.RefID,
		TotalAmount:   req.TotalAmount,
		AmountPaid:    req.AmountPaid,
		AccountName:   req.AccountName,
		PaymentMethod: req.PaymentMethod,
		Remarks:       req.Remarks,
		PaymentDate:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if payment.AccountName == "" {
		payment.AccountName = s.defaultAccountName
	}
	payment.Recalculate()

	// Customer money arrives, supplier money leaves. The sub-ledger mirrors
	// that: a customer settlement is a credit against their receivable, a
	// supplier settlement a debit against the payable.
	direction := domain.CashIn
	entityEntry := domain.EntityLedgerEntry{
		EntryID:     uuid.NewString(),
		EntityType:  entityType,
		EntityName:  req.EntityName,
		TrnRefNo:    payment.PaymentNo,
		TrnType:     domain.RefPayment,
		Remarks:     req.Remarks,
		TrnDate:     now,
		AuditFields: payment.AuditFields,
	}
	if entityType == domain.EntitySupplier {
		direction = domain.CashOut
		entityEntry.DebitAmount = req.AmountPaid
	} else {
		entityEntry.CreditAmount = req.AmountPaid
	}

	cashEntry, err := buildLedgerEntry(dto.RecordTransactionRequest{
		AccountName:   payment.AccountName,
		Amount:        req.AmountPaid,
		Direction:     direction,
		RefType:       string(domain.RefPayment),
		RefID:         payment.PaymentID,
		EntityType:    req.EntityType,
		EntityName:    req.EntityName,
		TrnRefNo:      payment.PaymentNo,
		Remarks:       req.Remarks,
		PaymentStatus: string(payment.PaymentStatus),
	}, userID, now)
	if err != nil {
		return nil, err
	}
	cashEntry.PaymentMethod = req.PaymentMethod

	settle := s.settleFunc(payment, userID, now)

	if err := s.paymentRepo.SavePayment(ctx, payment, entityEntry, cashEntry, settle); err != nil {
		s.LogError(ctx, err, "Failed to save payment", slog.String("payment_no", payment.PaymentNo))
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_no", payment.PaymentNo),
		slog.String("entity_type", string(entityType)))
	return &payment, nil
}

// settleFunc builds the in-transaction callback that applies the payment to
// its referenced order, or nil for an unreferenced payment.
func (s *paymentService) settleFunc(payment domain.Payment, userID string, now time.Time) func(ctx context.Context, tx pgx.Tx) error {
	if payment.RefType == "" {
		return nil
	}

	// The order is read inside the transaction with its row locked, so two
	// concurrent payments against the same order serialize and neither
	// settlement is lost.
	switch payment.RefType {
	case domain.RefSaleOrder:
		return func(ctx context.Context, tx pgx.Tx) error {
			order, err := s.salesOrderRepo.FindOrderByIDForUpdate(ctx, tx, payment.RefID)
			if err != nil {
				return fmt.Errorf("referenced sales order: %w", err)
			}
			order.AmountPaid = order.AmountPaid.Add(payment.AmountPaid)
			order.Recalculate()
			return s.salesOrderRepo.UpdatePaymentInTx(ctx, tx, order.OrderID, order.AmountPaid, order.AmountDue, order.PaymentStatus, userID, now)
		}
	case domain.RefPurchaseOrder:
		return func(ctx context.Context, tx pgx.Tx) error {
			order, err := s.purchaseOrderRepo.FindOrderByIDForUpdate(ctx, tx, payment.RefID)
			if err != nil {
				return fmt.Errorf("referenced purchase order: %w", err)
			}
			order.AmountPaid = order.AmountPaid.Add(payment.AmountPaid)
			order.Recalculate()
			return s.purchaseOrderRepo.UpdatePaymentInTx(ctx, tx, order.OrderID, order.AmountPaid, order.AmountDue, order.PaymentStatus, userID, now)
		}
	}
	return nil
}

func (s *paymentService) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		return nil, err
	}
	return payment, nil
}
