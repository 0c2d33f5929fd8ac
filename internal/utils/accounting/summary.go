package accounting

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeSummary folds every transaction into base-currency totals.
// Transfer legs are left out of income and expense.
func ComputeSummary(accounts []domain.Account, rates domain.ExchangeRates) domain.Summary {
	var s domain.Summary
	for _, acc := range accounts {
		for _, t := range acc.Transactions {
			if IsInternalTransfer(t) {
				continue
			}
			amount := Convert(t.Amount, t.Currency, rates)
			switch t.Type {
			case domain.Income:
				s.TotalIncome = s.TotalIncome.Add(amount)
			case domain.Expense:
				s.TotalExpenses = s.TotalExpenses.Add(amount)
			case domain.Liability:
				s.TotalLiabilities = s.TotalLiabilities.Add(amount)
			case domain.Receivable:
				s.TotalReceivables = s.TotalReceivables.Add(amount)
			}
		}
	}
	s.NetBalance = CashBalance(accounts, rates)
	s.NetDeferredBalance = s.TotalReceivables.Sub(s.TotalLiabilities)
	s.ProjectedNetBalance = s.NetBalance.Sub(s.TotalLiabilities)
	s.TotalSum = s.NetBalance.Add(s.NetDeferredBalance)
	return s
}

// CashBalance sums the converted balances of every safe and bank account.
func CashBalance(accounts []domain.Account, rates domain.ExchangeRates) decimal.Decimal {
	total := decimal.Zero
	for _, acc := range accounts {
		if !acc.Role().HoldsCash() {
			continue
		}
		total = total.Add(Convert(Balance(acc.Transactions), acc.Currency, rates))
	}
	return total
}

// OutstandingLiabilities sums, in base currency, what is still owed on every primary LIABILITY.
func OutstandingLiabilities(accounts []domain.Account, rates domain.ExchangeRates) decimal.Decimal {
	idx := BuildSettlementIndex(accounts)
	total := decimal.Zero
	for _, acc := range accounts {
		if acc.Role() != domain.RoleDeferred {
			continue
		}
		for _, t := range acc.Transactions {
			if t.Type != domain.Liability || t.IsSettlement() {
				continue
			}
			total = total.Add(Convert(idx.Remaining(t), t.Currency, rates))
		}
	}
	return total
}
