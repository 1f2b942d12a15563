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

const dateLayout = "2006-01-02"

// ledgerService is the single write path into the append-only ledger. Every
// business flow that moves cash funnels through a ledger entry built here or
// by one of the order-level services reusing buildLedgerEntry.
type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// financialYearOf returns the April-to-March financial year label for a date,
// e.g. "2025-2026" for any date from 2025-04-01 through 2026-03-31.
func financialYearOf(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		return fmt.Sprintf("%d-%d", year-1, year)
	}
	return fmt.Sprintf("%d-%d", year, year+1)
}

// buildLedgerEntry validates the directional fields and assembles an entry
// ready for appending. Account-derived fields (AccountID, AccountType,
// BalanceAfter, PaymentMethod fallback) are filled by the repository while it
// holds the account row lock.
func buildLedgerEntry(req dto.RecordTransactionRequest, userID string, now time.Time) (domain.LedgerEntry, error) {
	if req.Amount.IsNegative() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: amount must not be negative, got %s", apperrors.ErrValidation, req.Amount)
	}
	if !req.Direction.IsValid() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDirection, req.Direction)
	}
	refType := domain.ReferenceType(req.RefType)
	if !refType.IsValid() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidReferenceType, req.RefType)
	}
	entityType := domain.EntityType(req.EntityType)
	if !entityType.IsValid() {
		return domain.LedgerEntry{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidEntityType, req.EntityType)
	}

	return domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		AccountName:   req.AccountName,
		Amount:        req.Amount,
		Direction:     req.Direction,
		RefType:       refType,
		RefID:         req.RefID,
		EntityType:    entityType,
		EntityName:    req.EntityName,
		TrnRefNo:      req.TrnRefNo,
		PaymentStatus: req.PaymentStatus,
		Remarks:       req.Remarks,
		FinancialYear: financialYearOf(now),
		TrnDate:       now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.LedgerEntry, error) {
	entry, err := buildLedgerEntry(req, userID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Ledger entry failed validation", slog.String("account_name", req.AccountName))
		return nil, err
	}

	saved, err := s.ledgerRepo.AppendEntry(ctx, entry)
	if err != nil {
		s.LogError(ctx, err, "Failed to append ledger entry",
			slog.String("account_name", req.AccountName),
			slog.String("ref_type", req.RefType))
		return nil, err
	}

	s.LogInfo(ctx, "Ledger entry recorded",
		slog.String("entry_id", saved.EntryID),
		slog.String("account_name", saved.AccountName),
		slog.String("direction", string(saved.Direction)))
	return saved, nil
}

func (s *ledgerService) GetEntriesByAccountName(ctx context.Context, accountName string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindEntriesByAccountName(ctx, accountName)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("account_name", accountName))
		return nil, err
	}
	return entries, nil
}

func (s *ledgerService) GetEntriesByEntity(ctx context.Context, entityType domain.EntityType, entityName string, fromDate, toDate string) ([]domain.LedgerEntry, error) {
	if !entityType.IsValid() {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidEntityType, entityType)
	}

	filter := portsrepo.LedgerEntryFilter{
		EntityType: entityType,
		EntityName: entityName,
	}
	if fromDate != "" {
		from, err := time.Parse(dateLayout, fromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid fromDate %q", apperrors.ErrValidation, fromDate)
		}
		filter.FromDate = &from
	}
	if toDate != "" {
		to, err := time.Parse(dateLayout, toDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid toDate %q", apperrors.ErrValidation, toDate)
		}
		// inclusive upper bound
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &end
	}

	entries, err := s.ledgerRepo.FindEntriesByEntity(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries by entity",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_name", entityName))
		return nil, err
	}
	return entries, nil
}
