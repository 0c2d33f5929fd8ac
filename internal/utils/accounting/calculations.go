package accounting

import (
	"strings"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Convert expresses amount of currency c in the base currency.
// Unmapped currencies are treated as already being in base units.
func Convert(amount decimal.Decimal, c domain.Currency, rates domain.ExchangeRates) decimal.Decimal {
	return amount.Mul(rates.Rate(c))
}

// Balance is the sum of INCOME minus the sum of EXPENSE. Other types do not move cash.
func Balance(txns []domain.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case domain.Income:
			balance = balance.Add(t.Amount)
		case domain.Expense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// TotalByType sums the amounts of the transactions of one type.
func TotalByType(txns []domain.Transaction, typ domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// IsInternalTransfer reports whether t is one leg of a transfer between the user's own accounts.
// Legs written by the ledger share a group id. Any other income or expense whose
// description starts with "تحويل إلى" or "تحويل من" is treated as a transfer too.
func IsInternalTransfer(t domain.Transaction) bool {
	if t.Type != domain.Income && t.Type != domain.Expense {
		return false
	}
	if t.GroupID != "" && !t.IsSettlement() {
		return true
	}
	for _, prefix := range []string{domain.TransferToPrefix, domain.TransferFromPrefix} {
		if strings.HasPrefix(t.Description, prefix) {
			return true
		}
	}
	return false
}
