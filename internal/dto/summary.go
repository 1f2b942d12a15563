package dto

import (
	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummaryQueryParams defines the query parameters of the ledger summary
// endpoints. Dates use the 2006-01-02 layout; both are optional.
type SummaryQueryParams struct {
	EntityName string `form:"entityName"`
	FromDate   string `form:"fromDate"`
	ToDate     string `form:"toDate"`
}

// LedgerSummaryResponse is the aggregate report over a filtered ledger slice.
type LedgerSummaryResponse struct {
	EntityName        string                `json:"entityName"`
	EntityType        string                `json:"entityType"`
	FromDate          string                `json:"fromDate"`
	ToDate            string                `json:"toDate"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	OpeningBalance    decimal.Decimal       `json:"openingBalance"`
	ClosingBalance    decimal.Decimal       `json:"closingBalance"`
	NetBalance        decimal.Decimal       `json:"netBalance"`
	TotalTransactions int                   `json:"totalTransactions"`
	Transactions      []LedgerEntryResponse `json:"transactions"`
	Success           bool                  `json:"success"`
	Message           string                `json:"message"`
}

// ToLedgerSummaryResponse converts a domain.LedgerSummary.
func ToLedgerSummaryResponse(s domain.LedgerSummary) LedgerSummaryResponse {
	return LedgerSummaryResponse{
		EntityName:        s.EntityName,
		EntityType:        string(s.EntityType),
		FromDate:          s.FromDate,
		ToDate:            s.ToDate,
		TotalDebit:        s.TotalDebit,
		TotalCredit:       s.TotalCredit,
		OpeningBalance:    s.OpeningBalance,
		ClosingBalance:    s.ClosingBalance,
		NetBalance:        s.NetBalance,
		TotalTransactions: s.TotalTransactions,
		Transactions:      ToListLedgerEntryResponse(s.Entries),
		Success:           s.Success,
		Message:           s.Message,
	}
}

// BalanceProjectionResponse is the single-number receivable/payable view.
type BalanceProjectionResponse struct {
	EntityName string          `json:"entityName"`
	EntityType string          `json:"entityType"`
	Amount     decimal.Decimal `json:"amount"`
}
