package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsAlert suggests moving part of the cash into savings.
type SavingsAlert struct {
	Active          bool            `json:"active"`
	SuggestedAmount decimal.Decimal `json:"suggestedAmount"`
}

// DebtAlert reminds the user to pay debts while cash is available.
type DebtAlert struct {
	Active bool `json:"active"`
}

// GoalAlert is the monthly reminder for one goal.
type GoalAlert struct {
	Goal                Goal            `json:"goal"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	DismissalKey        string          `json:"dismissalKey"`
}

// Alerts is the full alert state for one session.
type Alerts struct {
	Savings SavingsAlert `json:"savings"`
	Debt    DebtAlert    `json:"debt"`
	Goals   []GoalAlert  `json:"goals"`
}

// Count returns the number of active alerts.
func (a Alerts) Count() int {
	n := len(a.Goals)
	if a.Savings.Active {
		n++
	}
	if a.Debt.Active {
		n++
	}
	return n
}

// Dismissals are the alerts the user closed during the current session.
type Dismissals struct {
	Savings bool
	Debt    bool
	Goals   map[string]bool // keyed by GoalDismissalKey
}

// GoalDismissalKey identifies a goal reminder for one calendar month, e.g. "goal-1-2024-5".
func GoalDismissalKey(goalID string, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", goalID, at.Year(), int(at.Month()))
}
