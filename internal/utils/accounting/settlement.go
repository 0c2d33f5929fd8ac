package accounting

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// settlementEpsilon absorbs rounding drift when deciding a debt is paid off.
var settlementEpsilon = decimal.New(1, -3)

// SettlementIndex maps debt ids to the records settling them.
// It is rebuilt from the transactions on every query and never updated in place.
type SettlementIndex struct {
	settled map[string]decimal.Decimal
	records map[string][]string
}

// BuildSettlementIndex scans every account for settlement records.
// Only the cash leg of a settlement (INCOME or EXPENSE) counts towards the settled amount.
// The mirrored LIABILITY/RECEIVABLE leg in the deferred account is listed but not summed.
func BuildSettlementIndex(accounts []domain.Account) SettlementIndex {
	idx := SettlementIndex{
		settled: map[string]decimal.Decimal{},
		records: map[string][]string{},
	}
	for _, acc := range accounts {
		for _, t := range acc.Transactions {
			if !t.IsSettlement() {
				continue
			}
			debtID := t.SettlesTransactionID
			idx.records[debtID] = append(idx.records[debtID], t.ID)
			if t.Type == domain.Income || t.Type == domain.Expense {
				idx.settled[debtID] = idx.settled[debtID].Add(t.Amount)
			}
		}
	}
	return idx
}

// Settled returns the amount already paid against debtID.
func (idx SettlementIndex) Settled(debtID string) decimal.Decimal {
	return idx.settled[debtID]
}

// SettlementIDs returns the ids of every record referencing debtID.
func (idx SettlementIndex) SettlementIDs(debtID string) []string {
	return append([]string(nil), idx.records[debtID]...)
}

// Remaining returns how much of debt is still open.
func (idx SettlementIndex) Remaining(debt domain.Transaction) decimal.Decimal {
	return debt.Amount.Sub(idx.Settled(debt.ID))
}

// IsFullySettled reports whether the remaining amount is within epsilon of zero.
func (idx SettlementIndex) IsFullySettled(debt domain.Transaction) bool {
	return idx.Remaining(debt).LessThanOrEqual(settlementEpsilon)
}

// DebtStatuses lists every primary debt held in a deferred account with its settlement state.
func DebtStatuses(accounts []domain.Account) []domain.DebtStatus {
	idx := BuildSettlementIndex(accounts)
	var out []domain.DebtStatus
	for _, acc := range accounts {
		if acc.Role() != domain.RoleDeferred {
			continue
		}
		for _, t := range acc.Transactions {
			if !t.IsPrimaryDebt() {
				continue
			}
			out = append(out, domain.DebtStatus{
				Debt:          t.Clone(),
				AccountID:     acc.ID,
				Settled:       idx.Settled(t.ID),
				Remaining:     idx.Remaining(t),
				FullySettled:  idx.IsFullySettled(t),
				SettlementIDs: idx.SettlementIDs(t.ID),
			})
		}
	}
	return out
}
