package accounting

import (
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
)

// FilterTransactions keeps the transactions matching every non-zero field of f.
// Day bounds are compared on calendar days in the timestamps' own location.
func FilterTransactions(txns []domain.Transaction, f domain.TransactionFilter) []domain.Transaction {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if text != "" && !strings.Contains(strings.ToLower(t.Description), text) {
			continue
		}
		day := startOfDay(t.Date)
		if !f.StartDate.IsZero() && day.Before(startOfDay(f.StartDate)) {
			continue
		}
		if !f.EndDate.IsZero() && day.After(startOfDay(f.EndDate)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TransactionsByType collects one type of record from every account, newest first.
// Transfer legs are skipped when listing INCOME or EXPENSE.
func TransactionsByType(accounts []domain.Account, typ domain.TransactionType) []domain.LocatedTransaction {
	var out []domain.LocatedTransaction
	for _, acc := range accounts {
		for _, t := range acc.Transactions {
			if t.Type != typ || IsInternalTransfer(t) {
				continue
			}
			out = append(out, domain.LocatedTransaction{Transaction: t.Clone(), AccountID: acc.ID, AccountName: acc.Name})
		}
	}
	slices.SortStableFunc(out, func(a, b domain.LocatedTransaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
