package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents a row of the append-only ledger_entries table.
// ID is a BIGSERIAL used as the stable tie-break when ordering entries that
// share a transaction timestamp; EntryID is the public identifier.
type LedgerEntry struct {
	ID            int64           `db:"id"`
	EntryID       string          `db:"entry_id"`
	AccountID     string          `db:"account_id"`
	AccountName   string          `db:"account_name"`
	AccountType   string          `db:"account_type"`
	Amount        decimal.Decimal `db:"amount"`
	Direction     string          `db:"direction"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	RefType       string          `db:"ref_type"`
	RefID         string          `db:"ref_id"`
	EntityType    string          `db:"entity_type"`
	EntityName    string          `db:"entity_name"`
	TrnRefNo      string          `db:"trn_ref_no"`
	PaymentMethod string          `db:"payment_method"`
	PaymentStatus string          `db:"payment_status"`
	Remarks       string          `db:"remarks"`
	FinancialYear string          `db:"financial_year"`
	TrnDate       time.Time       `db:"trn_date"`
	AuditFields
}

// EntityLedgerEntry represents a row of the entity_ledger table, the
// per-customer / per-supplier statement of account.
type EntityLedgerEntry struct {
	ID           int64           `db:"id"`
	EntryID      string          `db:"entry_id"`
	EntityType   string          `db:"entity_type"`
	EntityName   string          `db:"entity_name"`
	TrnRefNo     string          `db:"trn_ref_no"`
	TrnType      string          `db:"trn_type"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	BalanceAfter decimal.Decimal `db:"balance_after"`
	Remarks      string          `db:"remarks"`
	TrnDate      time.Time       `db:"trn_date"`
	AuditFields
}
