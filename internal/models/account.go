package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table. CurrentBalance is the
// persisted running balance after the latest ledger entry.
type Account struct {
	AccountID      string          `db:"account_id"`
	Name           string          `db:"name"`
	AccountType    string          `db:"account_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
