package services

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DecoyFactor scales every displayed amount while decoy mode is on.
var DecoyFactor = decimal.New(2, -1)

// ProjectDecoy returns the display view of accounts and goals. When inactive the inputs
// come back unchanged. When active the result is a deep copy with every transaction amount,
// history amount and goal target scaled by DecoyFactor and nothing else altered.
func ProjectDecoy(accounts []domain.Account, goals []domain.Goal, active bool) ([]domain.Account, []domain.Goal) {
	if !active {
		return accounts, goals
	}
	projected := domain.CloneAccounts(accounts)
	for i := range projected {
		txns := projected[i].Transactions
		for j := range txns {
			txns[j].Amount = txns[j].Amount.Mul(DecoyFactor)
			for k := range txns[j].History {
				txns[j].History[k].PreviousAmount = txns[j].History[k].PreviousAmount.Mul(DecoyFactor)
			}
		}
	}
	var projectedGoals []domain.Goal
	if goals != nil {
		projectedGoals = make([]domain.Goal, len(goals))
		for i, g := range goals {
			g.TargetAmount = g.TargetAmount.Mul(DecoyFactor)
			projectedGoals[i] = g
		}
	}
	return projected, projectedGoals
}

// projectAmount scales a single displayed figure.
func projectAmount(amount decimal.Decimal, active bool) decimal.Decimal {
	if !active {
		return amount
	}
	return amount.Mul(DecoyFactor)
}
