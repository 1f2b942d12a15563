package services

import (
	"context"
	"log/slog"

	"github.com/salesync/salesync_backend/internal/core/domain"
	portssvc "github.com/salesync/salesync_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// summaryService derives aggregate reports from the append-only ledger. It is
// a pure read-side projection: nothing here writes, and every figure is
// recomputed from the underlying entries on each call.
type summaryService struct {
	BaseService
	ledgerSvc portssvc.LedgerReaderSvc
}

// NewSummaryService creates a new summary service.
func NewSummaryService(ledgerSvc portssvc.LedgerReaderSvc) portssvc.SummarySvcFacade {
	return &summaryService{ledgerSvc: ledgerSvc}
}

// Ensure summaryService implements the SummarySvcFacade interface
var _ portssvc.SummarySvcFacade = (*summaryService)(nil)

// BuildSummary aggregates the matching ledger slice. Entries arrive ordered
// oldest first; the opening balance is reconstructed by undoing the first
// entry's effect on its own balance snapshot, so the report never needs state
// from outside the filtered window.
func (s *summaryService) BuildSummary(ctx context.Context, entityType domain.EntityType, entityName, fromDate, toDate string) (domain.LedgerSummary, error) {
	entries, err := s.ledgerSvc.GetEntriesByEntity(ctx, entityType, entityName, fromDate, toDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries for summary",
			slog.String("entity_type", string(entityType)),
			slog.String("entity_name", entityName))
		return domain.LedgerSummary{}, err
	}

	if len(entries) == 0 {
		summary := domain.EmptyLedgerSummary(entityType, "No transactions found for the given criteria")
		summary.EntityName = entityName
		summary.FromDate = fromDate
		summary.ToDate = toDate
		return summary, nil
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, e := range entries {
		// CASH_IN is the credit column of the report, CASH_OUT the debit column.
		if e.Direction == domain.CashIn {
			totalCredit = totalCredit.Add(e.Amount)
		} else {
			totalDebit = totalDebit.Add(e.Amount)
		}
	}

	first := entries[0]
	last := entries[len(entries)-1]
	openingBalance := first.BalanceAfter.Sub(first.SignedEffect())
	closingBalance := last.BalanceAfter

	return domain.LedgerSummary{
		EntityName:        entityName,
		EntityType:        entityType,
		FromDate:          fromDate,
		ToDate:            toDate,
		TotalDebit:        totalDebit,
		TotalCredit:       totalCredit,
		OpeningBalance:    openingBalance,
		ClosingBalance:    closingBalance,
		NetBalance:        netBalance(entityType, totalDebit, totalCredit),
		TotalTransactions: len(entries),
		Entries:           entries,
		Success:           true,
		Message:           "Summary generated successfully",
	}, nil
}

// netBalance applies the entity-relative sign: customers owe the business
// (credit - debit, a receivable), the business owes suppliers
// (debit - credit, a payable).
func netBalance(entityType domain.EntityType, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if entityType == domain.EntitySupplier {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

func (s *summaryService) ReceivableForCustomer(ctx context.Context, customerName string) (decimal.Decimal, error) {
	summary, err := s.BuildSummary(ctx, domain.EntityCustomer, customerName, "", "")
	if err != nil {
		return decimal.Zero, err
	}
	return summary.NetBalance, nil
}

func (s *summaryService) PayableForSupplier(ctx context.Context, supplierName string) (decimal.Decimal, error) {
	summary, err := s.BuildSummary(ctx, domain.EntitySupplier, supplierName, "", "")
	if err != nil {
		return decimal.Zero, err
	}
	return summary.NetBalance, nil
}
