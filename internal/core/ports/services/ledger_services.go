package services

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerSvc applies state transitions to account snapshots.
// Every operation returns a new snapshot or an error, never both, and never modifies its input.
type LedgerSvc interface {
	// UpsertTransaction creates a transaction, or edits it when in.ID is set.
	UpsertTransaction(store *domain.Store, in domain.TransactionInput) (*domain.Store, error)
	// DeleteTransaction removes a transaction, its linked legs, and every settlement of it.
	DeleteTransaction(store *domain.Store, id string) (*domain.Store, error)
	// SettleDebt pays amountPaid of a LIABILITY/RECEIVABLE through targetAccountID.
	SettleDebt(store *domain.Store, debtID string, amountPaid decimal.Decimal, targetAccountID string) (*domain.Store, error)
	// ExchangeCurrencies moves money between the safes of two currencies.
	ExchangeCurrencies(store *domain.Store, in domain.ExchangeInput) (*domain.Store, error)
}

// GoalSvc manages saving goals.
type GoalSvc interface {
	CreateGoal(goals []domain.Goal, in domain.GoalInput) ([]domain.Goal, domain.Goal, error)
	UpdateGoal(goals []domain.Goal, in domain.GoalInput) ([]domain.Goal, domain.Goal, error)
	DeleteGoal(goals []domain.Goal, id string) ([]domain.Goal, error)
	// MonthlyContribution is what must be saved each month to reach the goal in time.
	MonthlyContribution(goal domain.Goal) decimal.Decimal
}

// AlertSvc derives alert state from real, never obfuscated, figures.
type AlertSvc interface {
	Evaluate(accounts []domain.Account, goals []domain.Goal, rates domain.ExchangeRates, settings domain.Settings, dismissed domain.Dismissals) domain.Alerts
}
