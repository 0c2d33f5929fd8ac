package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/SscSPs/smart_wallet/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func txn(id string, amount int64, typ domain.TransactionType) domain.Transaction {
	return domain.Transaction{ID: id, Amount: d(amount), Currency: domain.YER, Type: typ, Description: id}
}

func TestConvert(t *testing.T) {
	rates := domain.DefaultExchangeRates()

	assert.True(t, accounting.Convert(d(10), domain.USD, rates).Equal(d(5500)))
	assert.True(t, accounting.Convert(d(10), domain.YER, rates).Equal(d(10)))
	assert.True(t, accounting.Convert(d(10), domain.SAR, domain.ExchangeRates{}).Equal(d(10)), "unmapped currency is identity")
}

func TestBalance_IgnoresOrderAndDebtTypes(t *testing.T) {
	txns := []domain.Transaction{
		txn("a", 300000, domain.Income),
		txn("b", 15000, domain.Expense),
		txn("c", 50000, domain.Liability),
		txn("d", 2000, domain.Expense),
		txn("e", 1000, domain.Receivable),
	}
	reversed := []domain.Transaction{txns[4], txns[3], txns[2], txns[1], txns[0]}

	assert.True(t, accounting.Balance(txns).Equal(d(283000)))
	assert.True(t, accounting.Balance(reversed).Equal(accounting.Balance(txns)))
	assert.True(t, accounting.TotalByType(txns, domain.Expense).Equal(d(17000)))
}

func TestIsInternalTransfer(t *testing.T) {
	tests := []struct {
		name string
		txn  domain.Transaction
		want bool
	}{
		{"grouped leg", domain.Transaction{Type: domain.Expense, GroupID: "g1", Description: "anything"}, true},
		{"legacy generated leg", domain.Transaction{Type: domain.Income, Description: "تحويل من الصندوق المنزلي (ر.ي): ادخار"}, true},
		{"income described as a transfer", domain.Transaction{Type: domain.Income, Description: "تحويل من صديق"}, true},
		{"expense described as a transfer", domain.Transaction{Type: domain.Expense, Description: "تحويل إلى الوالد"}, true},
		{"prefix inside the text does not count", domain.Transaction{Type: domain.Income, Description: "مبلغ تحويل من صديق"}, false},
		{"exchange leg", domain.Transaction{Type: domain.Income, Description: domain.ExchangeFromPrefix + " 10,000 ر.ي بسعر 550"}, false},
		{"settlement pair is not a transfer", domain.Transaction{Type: domain.Expense, GroupID: "g2", SettlesTransactionID: "trans-2"}, false},
		{"debt type never counts", domain.Transaction{Type: domain.Liability, GroupID: "g3"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.IsInternalTransfer(tt.txn))
		})
	}
}

func TestSettlementIndex(t *testing.T) {
	debt := txn("debt", 25000, domain.Liability)
	accounts := []domain.Account{
		{ID: "acc-deferred-yer", Currency: domain.YER, Transactions: []domain.Transaction{
			debt,
			{ID: "mirror", Amount: d(20000), Type: domain.Receivable, SettlesTransactionID: "debt"},
		}},
		{ID: "safe-yer", Currency: domain.YER, Transactions: []domain.Transaction{
			{ID: "pay", Amount: d(20000), Type: domain.Expense, SettlesTransactionID: "debt"},
		}},
	}

	idx := accounting.BuildSettlementIndex(accounts)
	assert.True(t, idx.Settled("debt").Equal(d(20000)), "mirrored leg is not double counted")
	assert.True(t, idx.Remaining(debt).Equal(d(5000)))
	assert.False(t, idx.IsFullySettled(debt))
	assert.ElementsMatch(t, []string{"mirror", "pay"}, idx.SettlementIDs("debt"))

	accounts[1].Transactions = append(accounts[1].Transactions, domain.Transaction{
		ID: "pay2", Amount: decimal.RequireFromString("4999.9995"), Type: domain.Expense, SettlesTransactionID: "debt",
	})
	idx = accounting.BuildSettlementIndex(accounts)
	assert.True(t, idx.IsFullySettled(debt), "drift below epsilon counts as settled")

	assert.True(t, accounting.BuildSettlementIndex(nil).Remaining(debt).Equal(d(25000)))
}

func TestDebtStatuses_OnlyPrimaryDebts(t *testing.T) {
	store, err := domain.NewStore(domain.DefaultAccounts())
	require.NoError(t, err)

	statuses := accounting.DebtStatuses(store.Accounts())
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.True(t, s.Remaining.Equal(s.Debt.Amount))
		assert.Empty(t, s.SettlementIDs)
	}
}

func TestComputeSummary_DefaultData(t *testing.T) {
	store, err := domain.NewStore(domain.DefaultAccounts())
	require.NoError(t, err)
	rates := domain.DefaultExchangeRates()

	s := accounting.ComputeSummary(store.Accounts(), rates)

	// 300000 + 1000*140 + 500000; trans-7 is described as a transfer
	assert.True(t, s.TotalIncome.Equal(d(940000)), s.TotalIncome.String())
	// 15000 + 2000 + 50*550
	assert.True(t, s.TotalExpenses.Equal(d(44500)), s.TotalExpenses.String())
	// 25000 + 100*550
	assert.True(t, s.TotalLiabilities.Equal(d(80000)), s.TotalLiabilities.String())
	assert.True(t, s.TotalReceivables.Equal(d(50000)))
	assert.True(t, s.NetBalance.Equal(d(1170500)), s.NetBalance.String())
	assert.True(t, s.NetDeferredBalance.Equal(d(-30000)))
	assert.True(t, s.ProjectedNetBalance.Equal(d(1090500)))
	assert.True(t, s.TotalSum.Equal(d(1140500)))
}

func TestComputeSummary_SkipsTransferLegs(t *testing.T) {
	rates := domain.DefaultExchangeRates()
	accounts := []domain.Account{
		{ID: "safe-yer", Currency: domain.YER, Transactions: []domain.Transaction{
			txn("in", 1000, domain.Income),
			{ID: "out", Amount: d(400), Currency: domain.YER, Type: domain.Expense, GroupID: "g"},
		}},
		{ID: "acc-bank-yer", Currency: domain.YER, Transactions: []domain.Transaction{
			{ID: "in2", Amount: d(400), Currency: domain.YER, Type: domain.Income, GroupID: "g"},
		}},
	}

	s := accounting.ComputeSummary(accounts, rates)
	assert.True(t, s.TotalIncome.Equal(d(1000)))
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.NetBalance.Equal(d(1000)), "transfers do not change the net balance")
}

func TestOutstandingLiabilities(t *testing.T) {
	rates := domain.DefaultExchangeRates()
	accounts := []domain.Account{
		{ID: "acc-deferred-usd", Currency: domain.USD, Transactions: []domain.Transaction{
			{ID: "car", Amount: d(100), Currency: domain.USD, Type: domain.Liability},
			{ID: "mirror", Amount: d(40), Currency: domain.USD, Type: domain.Receivable, SettlesTransactionID: "car"},
		}},
		{ID: "safe-usd", Currency: domain.USD, Transactions: []domain.Transaction{
			{ID: "pay", Amount: d(40), Currency: domain.USD, Type: domain.Expense, SettlesTransactionID: "car"},
		}},
	}
	assert.True(t, accounting.OutstandingLiabilities(accounts, rates).Equal(d(60*550)))
}

func TestFilterTransactions(t *testing.T) {
	day := func(dd int) time.Time { return time.Date(2024, 5, dd, 15, 0, 0, 0, time.UTC) }
	txns := []domain.Transaction{
		{ID: "1", Type: domain.Expense, Description: "Coffee beans", Date: day(1)},
		{ID: "2", Type: domain.Income, Description: "Salary", Date: day(10)},
		{ID: "3", Type: domain.Expense, Description: "coffee shop", Date: day(20)},
	}

	ids := func(in []domain.Transaction) []string {
		out := []string{}
		for _, t := range in {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "3"}, ids(accounting.FilterTransactions(txns, domain.TransactionFilter{Type: domain.Expense})))
	assert.Equal(t, []string{"1", "3"}, ids(accounting.FilterTransactions(txns, domain.TransactionFilter{Text: "COFFEE"})))
	assert.Equal(t, []string{"2", "3"}, ids(accounting.FilterTransactions(txns, domain.TransactionFilter{
		StartDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})))
	assert.Equal(t, []string{"1", "2"}, ids(accounting.FilterTransactions(txns, domain.TransactionFilter{
		EndDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})), "end day is inclusive")
}

func TestTransactionsByType(t *testing.T) {
	store, err := domain.NewStore(domain.DefaultAccounts())
	require.NoError(t, err)

	incomes := accounting.TransactionsByType(store.Accounts(), domain.Income)
	require.Len(t, incomes, 3)
	assert.Equal(t, "trans-4", incomes[0].ID)
	for _, in := range incomes {
		assert.NotEqual(t, "trans-7", in.ID)
	}
	assert.Equal(t, "safe-yer", incomes[0].AccountID)
	for i := 1; i < len(incomes); i++ {
		assert.False(t, incomes[i].Date.After(incomes[i-1].Date))
	}
}

func TestExchangeQuote(t *testing.T) {
	rates := domain.DefaultExchangeRates()

	assert.True(t, accounting.SuggestedRate(domain.YER, domain.USD, rates).Equal(d(550)))
	assert.True(t, accounting.SuggestedRate(domain.USD, domain.YER, rates).Equal(d(550)))
	assert.Equal(t, "3.9286", accounting.SuggestedRate(domain.USD, domain.SAR, rates).StringFixed(4))
	assert.True(t, accounting.SuggestedRate(domain.USD, domain.USD, rates).IsZero())

	assert.Equal(t, "18.18", accounting.QuoteAmount(d(10000), domain.YER, d(550)).StringFixed(2))
	assert.True(t, accounting.QuoteAmount(d(10), domain.USD, d(550)).Equal(d(5500)))
	assert.True(t, accounting.QuoteAmount(d(0), domain.USD, d(550)).IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567", accounting.FormatAmount(d(1234567), domain.YER))
	assert.Equal(t, "18.18", accounting.FormatAmount(decimal.RequireFromString("18.18"), domain.USD))
}
