package domain

import (
	"github.com/shopspring/decimal"
)

// LedgerSummary is the aggregate view over a filtered slice of the append-only
// ledger. Debit/credit here are the summary layer's interpretation of entry
// directions: CASH_IN maps to the credit column, CASH_OUT to the debit column.
//
// NetBalance carries the intentional sign flip between entity types:
// for CUSTOMER it is credit - debit (positive = receivable, the customer owes
// the business); for SUPPLIER it is debit - credit (positive = payable, the
// business owes the supplier).
type LedgerSummary struct {
	EntityName        string          `json:"entityName"`
	EntityType        EntityType      `json:"entityType"`
	FromDate          string          `json:"fromDate"`
	ToDate            string          `json:"toDate"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`
	NetBalance        decimal.Decimal `json:"netBalance"`
	TotalTransactions int             `json:"totalTransactions"`
	Entries           []LedgerEntry   `json:"transactions"`
	Success           bool            `json:"success"`
	Message           string          `json:"message"`
}

// EmptyLedgerSummary reports a zeroed summary for a filter that matched no
// rows. This is a successful outcome, not an error.
func EmptyLedgerSummary(entityType EntityType, message string) LedgerSummary {
	return LedgerSummary{
		EntityType:        entityType,
		TotalDebit:        decimal.Zero,
		TotalCredit:       decimal.Zero,
		OpeningBalance:    decimal.Zero,
		ClosingBalance:    decimal.Zero,
		NetBalance:        decimal.Zero,
		TotalTransactions: 0,
		Entries:           []LedgerEntry{},
		Success:           true,
		Message:           message,
	}
}
