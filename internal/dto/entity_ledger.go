package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EntityLedgerEntryResponse is one row of a customer or supplier sub-ledger.
type EntityLedgerEntryResponse struct {
	ID           int64           `json:"id"`
	EntryID      string          `json:"entryID"`
	EntityType   string          `json:"entityType"`
	EntityName   string          `json:"entityName"`
	TrnRefNo     string          `json:"trnRefNo"`
	TrnType      string          `json:"trnType"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Remarks      string          `json:"remarks"`
	TrnDate      time.Time       `json:"trnDate"`
}

// ToListEntityLedgerEntryResponse converts a slice of sub-ledger entries.
func ToListEntityLedgerEntryResponse(entries []domain.EntityLedgerEntry) []EntityLedgerEntryResponse {
	res := make([]EntityLedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = EntityLedgerEntryResponse{
			ID:           e.ID,
			EntryID:      e.EntryID,
			EntityType:   string(e.EntityType),
			EntityName:   e.EntityName,
			TrnRefNo:     e.TrnRefNo,
			TrnType:      string(e.TrnType),
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
			BalanceAfter: e.BalanceAfter,
			Remarks:      e.Remarks,
			TrnDate:      e.TrnDate,
		}
	}
	return res
}
