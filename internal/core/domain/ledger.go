package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction indicates whether a ledger entry moves cash into or out of an account.
type Direction string

const (
	CashIn  Direction = "CASH_IN"
	CashOut Direction = "CASH_OUT"
)

// IsValid reports whether the direction is one of the two supported values.
func (d Direction) IsValid() bool {
	return d == CashIn || d == CashOut
}

// ReferenceType identifies the business event a ledger entry belongs to.
type ReferenceType string

const (
	RefSaleOrder      ReferenceType = "SALE_ORDER"
	RefPurchaseOrder  ReferenceType = "PURCHASE_ORDER"
	RefExpense        ReferenceType = "EXPENSE"
	RefPayment        ReferenceType = "PAYMENT"
	RefSaleReturn     ReferenceType = "SALE_RETURN"
	RefPurchaseReturn ReferenceType = "PURCHASE_RETURN"
)

// IsValid reports whether the reference type is a supported business event.
func (r ReferenceType) IsValid() bool {
	switch r {
	case RefSaleOrder, RefPurchaseOrder, RefExpense, RefPayment, RefSaleReturn, RefPurchaseReturn:
		return true
	}
	return false
}

// EntityType identifies the counterparty side of a ledger entry.
type EntityType string

const (
	EntityCustomer EntityType = "CUSTOMER"
	EntitySupplier EntityType = "SUPPLIER"
	EntityInternal EntityType = "INTERNAL"
)

// IsValid reports whether the entity type is supported.
func (e EntityType) IsValid() bool {
	switch e {
	case EntityCustomer, EntitySupplier, EntityInternal:
		return true
	}
	return false
}

// LedgerEntry is one immutable, append-only movement against a financial
// account. Entries store a positive Amount plus a Direction; the debit/credit
// interpretation for receivable/payable reporting happens only in the summary
// layer, never at the entry level.
type LedgerEntry struct {
	ID            int64           `json:"id"`
	EntryID       string          `json:"entryID"`
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     Direction       `json:"direction"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	RefType       ReferenceType   `json:"refType"`
	RefID         string          `json:"refID"`
	EntityType    EntityType      `json:"entityType"`
	EntityName    string          `json:"entityName"`
	TrnRefNo      string          `json:"trnRefNo"`
	PaymentMethod string          `json:"paymentMethod"`
	PaymentStatus string          `json:"paymentStatus"`
	Remarks       string          `json:"remarks"`
	FinancialYear string          `json:"financialYear"`
	TrnDate       time.Time       `json:"trnDate"`
	AuditFields
}

// SignedEffect is the entry's effect on the owning account's running balance:
// +Amount for CASH_IN, -Amount for CASH_OUT.
func (e LedgerEntry) SignedEffect() decimal.Decimal {
	if e.Direction == CashOut {
		return e.Amount.Neg()
	}
	return e.Amount
}

// NextBalance derives the running balance after applying the entry to the
// account's current balance. This is the only sanctioned balance arithmetic;
// the repository persists its result as both the entry's BalanceAfter snapshot
// and the account's new CurrentBalance.
func NextBalance(current decimal.Decimal, entry LedgerEntry) decimal.Decimal {
	return current.Add(entry.SignedEffect())
}

// EntityLedgerEntry is one row in the per-customer / per-supplier sub-ledger.
// Unlike the account ledger it keeps explicit debit/credit columns, mirroring
// the statement-of-account view counterparties expect.
type EntityLedgerEntry struct {
	ID           int64           `json:"id"`
	EntryID      string          `json:"entryID"`
	EntityType   EntityType      `json:"entityType"`
	EntityName   string          `json:"entityName"`
	TrnRefNo     string          `json:"trnRefNo"`
	TrnType      ReferenceType   `json:"trnType"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	BalanceAfter decimal.Decimal `json:"balanceAfter"`
	Remarks      string          `json:"remarks"`
	TrnDate      time.Time       `json:"trnDate"`
	AuditFields
}
