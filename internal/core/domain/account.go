package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the kind of financial holding point an account represents.
type AccountType string

const (
	AccountCash   AccountType = "CASH"
	AccountBank   AccountType = "BANK"
	AccountMobile AccountType = "MOBILE"
)

// IsValid reports whether the account type is one of the supported kinds.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountCash, AccountBank, AccountMobile:
		return true
	}
	return false
}

// Account represents a named financial holding point ("Cash at Hand", a bank
// account, a mobile wallet). CurrentBalance is the running balance after the
// most recent ledger entry and is written exclusively by the ledger recorder.
type Account struct {
	AccountID      string          `json:"accountID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
