package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger record.
type TransactionType string

const (
	Income     TransactionType = "INCOME"
	Expense    TransactionType = "EXPENSE"
	Liability  TransactionType = "LIABILITY"  // money owed by the user
	Receivable TransactionType = "RECEIVABLE" // money owed to the user
	// Transfer is only ever an input type. It is stored as an EXPENSE/INCOME pair.
	Transfer TransactionType = "TRANSFER"
)

var transactionTypeLabels = map[TransactionType]string{
	Income:     "دخل",
	Expense:    "مصروف",
	Liability:  "دين عليّ",
	Receivable: "دين لي",
	Transfer:   "تحويل بين الحسابات",
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	_, ok := transactionTypeLabels[t]
	return ok
}

// IsDebt reports whether t originates a debt.
func (t TransactionType) IsDebt() bool {
	return t == Liability || t == Receivable
}

// Label returns the display label used in statements.
func (t TransactionType) Label() string {
	if l, ok := transactionTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

// Description prefixes written by the ledger for generated records.
const (
	TransferToPrefix   = "تحويل إلى"
	TransferFromPrefix = "تحويل من"
	DebtIncomePrefix   = "مقابل دين:"
	CollectDebtPrefix  = "تحصيل دين:"
	PayDebtPrefix      = "سداد دين:"
	SettleDebtPrefix   = "تسوية دين:"
	ExchangeToPrefix   = "مصارفة إلى"
	ExchangeFromPrefix = "مصارفة من"

	SavingsTransferDescription = "تحويل للادخار"
)

// HistoryEntry records one amount change of a transaction.
type HistoryEntry struct {
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	ModifiedAt     time.Time       `json:"modifiedAt"`
}

// Transaction is a single record inside an account.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"` // always positive
	Currency    Currency        `json:"currency"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	History     []HistoryEntry  `json:"history,omitempty"` // oldest first
	// SettlesTransactionID marks a settlement record of a LIABILITY/RECEIVABLE.
	SettlesTransactionID string `json:"settlesTransactionId,omitempty"`
	// GroupID ties the legs of a transfer or of a settlement together.
	GroupID string `json:"groupId,omitempty"`
}

// IsSettlement reports whether t pays down another debt record.
func (t Transaction) IsSettlement() bool {
	return t.SettlesTransactionID != ""
}

// IsPrimaryDebt reports whether t originates a debt rather than settling one.
func (t Transaction) IsPrimaryDebt() bool {
	return t.Type.IsDebt() && !t.IsSettlement()
}

// Clone returns a copy of t that shares no slices with it.
func (t Transaction) Clone() Transaction {
	if t.History != nil {
		t.History = append([]HistoryEntry(nil), t.History...)
	}
	return t
}

// UnmarshalJSON accepts dates written either as RFC 3339 timestamps or as plain calendar days.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	aux := struct {
		*alias
		Date string `json:"date"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d, err := ParseTime(aux.Date)
	if err != nil {
		return fmt.Errorf("transaction %s: %w", t.ID, err)
	}
	t.Date = d
	return nil
}

// ParseTime parses an RFC 3339 timestamp or a YYYY-MM-DD day. The empty string yields the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return ts, nil
}

// IncomeSource tells where an INCOME came from.
type IncomeSource string

const (
	IncomeSourceProfit IncomeSource = "profit"
	// IncomeSourceDebt means the money was borrowed, so a LIABILITY is recorded alongside.
	IncomeSourceDebt IncomeSource = "debt"
)

// TransactionInput carries a create or edit request into the ledger.
type TransactionInput struct {
	ID              string // empty on create
	Amount          decimal.Decimal
	Currency        Currency
	Type            TransactionType
	Description     string
	Date            time.Time
	FromAccountID   string // TRANSFER
	ToAccountID     string // TRANSFER
	SourceAccountID string // EXPENSE
	IncomeSource    IncomeSource
}

// ExchangeInput carries a currency exchange between two safes.
type ExchangeInput struct {
	AmountToSell    decimal.Decimal
	FromCurrency    Currency
	ToCurrency      Currency
	Rate            decimal.Decimal
	AmountToReceive decimal.Decimal // already rounded by the caller
}
