package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines the parameters of one ledger append.
type RecordTransactionRequest struct {
	AccountName   string           `json:"accountName" binding:"required"`
	Amount        decimal.Decimal  `json:"amount" binding:"required"`
	Direction     domain.Direction `json:"direction" binding:"required,oneof=CASH_IN CASH_OUT"`
	RefType       string           `json:"refType" binding:"required"`
	RefID         string           `json:"refID"`
	EntityType    string           `json:"entityType" binding:"required"`
	EntityName    string           `json:"entityName"`
	TrnRefNo      string           `json:"trnRefNo"`
	Remarks       string           `json:"remarks"`
	PaymentStatus string           `json:"paymentStatus"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
type LedgerEntryResponse struct {
	ID            int64           `json:"id"`
	EntryID       string          `json:"entryID"`
	AccountName   string          `json:"accountName"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     string          `json:"direction"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	RefType       string          `json:"refType"`
	RefID         string          `json:"refID"`
	EntityType    string          `json:"entityType"`
	EntityName    string          `json:"entityName"`
	TrnRefNo      string          `json:"trnRefNo"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Remarks       string          `json:"remarks"`
	TrnDate       time.Time       `json:"trnDate"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response form.
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:            e.ID,
		EntryID:       e.EntryID,
		AccountName:   e.AccountName,
		Amount:        e.Amount,
		Direction:     string(e.Direction),
		BalanceAfter:  e.BalanceAfter,
		RefType:       string(e.RefType),
		RefID:         e.RefID,
		EntityType:    string(e.EntityType),
		EntityName:    e.EntityName,
		TrnRefNo:      e.TrnRefNo,
		PaymentMethod: e.PaymentMethod,
		PaymentStatus: e.PaymentStatus,
		Remarks:       e.Remarks,
		TrnDate:       e.TrnDate,
	}
}

// ToListLedgerEntryResponse converts a slice of ledger entries.
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return res
}
