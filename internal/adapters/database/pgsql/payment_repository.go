package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/salesync/salesync_backend/internal/apperrors"
	"github.com/salesync/salesync_backend/internal/core/domain"
	portsrepo "github.com/salesync/salesync_backend/internal/core/ports/repositories"
	"github.com/salesync/salesync_backend/internal/models"
)

type paymentRepository struct {
	baseRepository
	ledgerRepo       portsrepo.LedgerWriter
	entityLedgerRepo portsrepo.EntityLedgerWriter
}

// NewPaymentRepository creates a new repository for standalone payments.
func NewPaymentRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerWriter, entityLedgerRepo portsrepo.EntityLedgerWriter) portsrepo.PaymentRepository {
	return &paymentRepository{baseRepository{pool: pool}, ledgerRepo, entityLedgerRepo}
}

var _ portsrepo.PaymentRepository = (*paymentRepository)(nil)

// SavePayment is the atomic settlement unit of work: insert the payment row,
// append the counterparty sub-ledger entry and the cash ledger entry, and run
// the optional order settlement callback, all in one transaction.
func (r *paymentRepository) SavePayment(ctx context.Context, payment domain.Payment, entityEntry domain.EntityLedgerEntry, cashEntry domain.LedgerEntry, settle func(ctx context.Context, tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO payments (payment_id, payment_no, entity_type, entity_name, ref_type, ref_id, total_amount, amount_paid, account_name, payment_method, payment_status, remarks, payment_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, query,
		payment.PaymentID,
		payment.PaymentNo,
		string(payment.EntityType),
		payment.EntityName,
		string(payment.RefType),
		payment.RefID,
		payment.TotalAmount,
		payment.AmountPaid,
		payment.AccountName,
		payment.PaymentMethod,
		string(payment.PaymentStatus),
		payment.Remarks,
		payment.PaymentDate,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment %s", apperrors.ErrDuplicate, payment.PaymentNo)
		}
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}

	if _, err := r.entityLedgerRepo.AppendEntityEntryInTx(ctx, tx, entityEntry); err != nil {
		return err
	}
	if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, cashEntry); err != nil {
		return err
	}

	if settle != nil {
		if err := settle(ctx, tx); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

func (r *paymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, payment_no, entity_type, entity_name, ref_type, ref_id, total_amount, amount_paid, account_name, payment_method, payment_status, remarks, payment_date, created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_id = $1;
	`
	var m models.Payment
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&m.PaymentID,
		&m.PaymentNo,
		&m.EntityType,
		&m.EntityName,
		&m.RefType,
		&m.RefID,
		&m.TotalAmount,
		&m.AmountPaid,
		&m.AccountName,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.Remarks,
		&m.PaymentDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}

	payment := domain.Payment{
		PaymentID:     m.PaymentID,
		PaymentNo:     m.PaymentNo,
		EntityType:    domain.EntityType(m.EntityType),
		EntityName:    m.EntityName,
		RefType:       domain.ReferenceType(m.RefType),
		RefID:         m.RefID,
		TotalAmount:   m.TotalAmount,
		AmountPaid:    m.AmountPaid,
		AccountName:   m.AccountName,
		PaymentMethod: m.PaymentMethod,
		PaymentStatus: domain.PaymentStatus(m.PaymentStatus),
		Remarks:       m.Remarks,
		PaymentDate:   m.PaymentDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	return &payment, nil
}
