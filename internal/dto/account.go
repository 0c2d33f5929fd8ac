package dto

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountResponse is an account without its transactions.
type AccountResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Currency         domain.Currency `json:"currency"`
	Symbol           string          `json:"symbol"`
	Balance          decimal.Decimal `json:"balance"`
	FormattedBalance string          `json:"formattedBalance"`
	TransactionCount int             `json:"transactionCount"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc domain.Account) AccountResponse {
	balance := accounting.Balance(acc.Transactions)
	return AccountResponse{
		ID:               acc.ID,
		Name:             acc.Name,
		Currency:         acc.Currency,
		Symbol:           acc.Currency.Details().Symbol,
		Balance:          balance,
		FormattedBalance: accounting.FormatAmount(balance, acc.Currency),
		TransactionCount: len(acc.Transactions),
	}
}

// ToAccountResponses converts a list of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, ToAccountResponse(acc))
	}
	return out
}
