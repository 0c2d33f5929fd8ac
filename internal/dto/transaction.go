package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionRequest creates or edits a transaction.
// Accounts are chosen by the ledger except for transfers and expenses.
type TransactionRequest struct {
	Amount          decimal.Decimal        `json:"amount"`
	Currency        string                 `json:"currency" binding:"required"`
	Type            domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE LIABILITY RECEIVABLE TRANSFER"`
	Description     string                 `json:"description" binding:"required"`
	Date            string                 `json:"date" binding:"required"` // YYYY-MM-DD or RFC 3339
	FromAccountID   string                 `json:"fromAccountId"`
	ToAccountID     string                 `json:"toAccountId"`
	SourceAccountID string                 `json:"sourceAccountId"`
	IncomeSource    domain.IncomeSource    `json:"incomeSource" binding:"omitempty,oneof=profit debt"`
}

// ToInput converts the request into a ledger input. id is empty on create.
func (r TransactionRequest) ToInput(id string) (domain.TransactionInput, error) {
	c, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return domain.TransactionInput{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	date, err := domain.ParseTime(r.Date)
	if err != nil {
		return domain.TransactionInput{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return domain.TransactionInput{
		ID:              id,
		Amount:          r.Amount,
		Currency:        c,
		Type:            r.Type,
		Description:     strings.TrimSpace(r.Description),
		Date:            date,
		FromAccountID:   r.FromAccountID,
		ToAccountID:     r.ToAccountID,
		SourceAccountID: r.SourceAccountID,
		IncomeSource:    r.IncomeSource,
	}, nil
}

// ListTransactionsParams are the query parameters of a transaction list.
type ListTransactionsParams struct {
	Type      domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE LIABILITY RECEIVABLE"`
	Search    string                 `form:"q"`
	StartDate string                 `form:"startDate"`
	EndDate   string                 `form:"endDate"`
	Limit     int                    `form:"limit" binding:"omitempty,min=1,max=500"`
	PageToken string                 `form:"pageToken"`
}

// ToFilter converts the query parameters into a transaction filter.
func (p ListTransactionsParams) ToFilter() (domain.TransactionFilter, error) {
	start, err := domain.ParseTime(p.StartDate)
	if err != nil {
		return domain.TransactionFilter{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	end, err := domain.ParseTime(p.EndDate)
	if err != nil {
		return domain.TransactionFilter{}, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return domain.TransactionFilter{Type: p.Type, Text: p.Search, StartDate: start, EndDate: end}, nil
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions  []domain.Transaction `json:"transactions"`
	NextPageToken string               `json:"nextPageToken,omitempty"`
}

// SettleDebtRequest pays down, or collects, part of a debt.
type SettleDebtRequest struct {
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	TargetAccountID string          `json:"targetAccountId" binding:"required"`
}
