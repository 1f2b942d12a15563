package dto

import (
	"time"

	"github.com/salesync/salesync_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a financial account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH BANK MOBILE"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
}

// AccountResponse defines the data returned for a financial account.
type AccountResponse struct {
	AccountID      string             `json:"accountID"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	OpeningBalance decimal.Decimal    `json:"openingBalance"`
	CurrentBalance decimal.Decimal    `json:"currentBalance"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Name:           acc.Name,
		AccountType:    acc.AccountType,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: acc.CurrentBalance,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
