package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a row of the payments table.
type Payment struct {
	PaymentID     string          `db:"payment_id"`
	PaymentNo     string          `db:"payment_no"`
	EntityType    string          `db:"entity_type"`
	EntityName    string          `db:"entity_name"`
	RefType       string          `db:"ref_type"`
	RefID         string          `db:"ref_id"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	AmountPaid    decimal.Decimal `db:"amount_paid"`
	AccountName   string          `db:"account_name"`
	PaymentMethod string          `db:"payment_method"`
	PaymentStatus string          `db:"payment_status"`
	Remarks       string          `db:"remarks"`
	PaymentDate   time.Time       `db:"payment_date"`
	AuditFields
}
