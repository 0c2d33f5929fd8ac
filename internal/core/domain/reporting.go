package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Settings are the user-tunable alert parameters.
type Settings struct {
	SavingsThreshold  int64 `json:"savingsThreshold"`  // base currency
	SavingsPercentage int64 `json:"savingsPercentage"` // 1..100
}

// Validate checks the bounds a settings update must respect.
func (s Settings) Validate() error {
	if s.SavingsThreshold < 0 {
		return errors.New("savings threshold cannot be negative")
	}
	if s.SavingsPercentage < 1 || s.SavingsPercentage > 100 {
		return errors.New("savings percentage must be between 1 and 100")
	}
	return nil
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{SavingsThreshold: 100000, SavingsPercentage: 15}
}

// Summary holds the aggregate figures of all accounts in the base currency.
type Summary struct {
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	TotalLiabilities    decimal.Decimal `json:"totalLiabilities"`
	TotalReceivables    decimal.Decimal `json:"totalReceivables"`
	NetBalance          decimal.Decimal `json:"netBalance"`
	NetDeferredBalance  decimal.Decimal `json:"netDeferredBalance"`
	ProjectedNetBalance decimal.Decimal `json:"projectedNetBalance"`
	TotalSum            decimal.Decimal `json:"totalSum"`
}

// DebtStatus describes how much of a primary debt has been settled.
type DebtStatus struct {
	Debt          Transaction     `json:"debt"`
	AccountID     string          `json:"accountId"`
	Settled       decimal.Decimal `json:"settled"`
	Remaining     decimal.Decimal `json:"remaining"`
	FullySettled  bool            `json:"fullySettled"`
	SettlementIDs []string        `json:"settlementIds"`
}

// LocatedTransaction is a transaction together with the account holding it.
type LocatedTransaction struct {
	Transaction
	AccountID   string `json:"accountId"`
	AccountName string `json:"accountName"`
}

// TransactionFilter narrows a transaction list. Zero fields do not filter.
type TransactionFilter struct {
	Type      TransactionType
	Text      string    // case-insensitive description substring
	StartDate time.Time // inclusive calendar day
	EndDate   time.Time // inclusive calendar day
}

// Statement is the tabular view of an account handed to exporters.
type Statement struct {
	AccountName string
	Rows        []StatementRow
}

// StatementRow is one line of a Statement.
type StatementRow struct {
	Date           time.Time
	Description    string
	TypeLabel      string
	Amount         decimal.Decimal
	Currency       Currency
	CurrencySymbol string
}
