package services

import (
	"context"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc serves presentation reads. Figures go through the decoy
// projection whenever the session has it active.
type WalletReaderSvc interface {
	ListAccounts(ctx context.Context, sessionID string) ([]domain.Account, error)
	GetAccount(ctx context.Context, sessionID, accountID string) (domain.Account, error)
	// ListTransactions returns one page of an account's filtered transactions and the token of the next page.
	ListTransactions(ctx context.Context, sessionID, accountID string, filter domain.TransactionFilter, limit int, pageToken string) ([]domain.Transaction, string, error)
	GetSummary(ctx context.Context, sessionID string) (domain.Summary, error)
	ListByType(ctx context.Context, sessionID string, typ domain.TransactionType) ([]domain.LocatedTransaction, error)
	ListDebts(ctx context.Context, sessionID string) ([]domain.DebtStatus, error)
	GetAlerts(ctx context.Context, sessionID string) (domain.Alerts, error)
	ListGoals(ctx context.Context, sessionID string) ([]domain.Goal, error)
	GetSettings(ctx context.Context) (domain.Settings, domain.ExchangeRates)
	QuoteExchange(ctx context.Context, amount decimal.Decimal, from, to domain.Currency, rate decimal.Decimal) (suggestedRate, amountToReceive decimal.Decimal)
	BuildStatement(ctx context.Context, sessionID, accountID string, filter domain.TransactionFilter) (domain.Statement, error)
}

// WalletWriterSvc runs ledger operations against the real data and persists the result.
type WalletWriterSvc interface {
	UpsertTransaction(ctx context.Context, in domain.TransactionInput) error
	DeleteTransaction(ctx context.Context, id string) error
	SettleDebt(ctx context.Context, debtID string, amountPaid decimal.Decimal, targetAccountID string) error
	ExchangeCurrencies(ctx context.Context, in domain.ExchangeInput) error
	// TransferToSavings moves amount from the safe to the bank account of the currency
	// and dismisses the session's savings alert.
	TransferToSavings(ctx context.Context, sessionID string, amount decimal.Decimal, c domain.Currency) error
	CreateGoal(ctx context.Context, in domain.GoalInput) (domain.Goal, error)
	UpdateGoal(ctx context.Context, in domain.GoalInput) (domain.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	UpdateSettings(ctx context.Context, settings domain.Settings, rates domain.ExchangeRates) error
}

// BackupSvc produces and restores the backup document.
type BackupSvc interface {
	Backup(ctx context.Context) (domain.Backup, error)
	Restore(ctx context.Context, doc domain.Backup) error
}

// WalletSvcFacade combines every wallet operation.
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	BackupSvc
	// Load reads the persisted state, falling back to defaults for missing keys.
	Load(ctx context.Context) error
}
