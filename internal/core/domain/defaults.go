package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func seed(id string, amount int64, c Currency, typ TransactionType, desc, date string) Transaction {
	d, err := time.Parse(time.RFC3339, date)
	if err != nil {
		panic(err)
	}
	return Transaction{ID: id, Amount: decimal.NewFromInt(amount), Currency: c, Type: typ, Description: desc, Date: d}
}

// DefaultAccounts returns the fixed account set with its sample history,
// used when nothing has been persisted yet.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "acc-deferred-yer", Name: "الحساب الآجل (ر.ي)", Currency: YER, Transactions: []Transaction{
			seed("trans-1", 50000, YER, Receivable, "دين للسيد أحمد", "2024-05-20T10:00:00Z"),
			seed("trans-2", 25000, YER, Liability, "دين لمحلات البدر", "2024-05-15T14:30:00Z"),
		}},
		{ID: "acc-deferred-usd", Name: "الحساب الآجل ($)", Currency: USD, Transactions: []Transaction{
			seed("trans-3", 100, USD, Liability, "قسط شهري للسيارة", "2024-05-01T09:00:00Z"),
		}},
		{ID: "acc-deferred-sar", Name: "الحساب الآجل (ر.س)", Currency: SAR, Transactions: []Transaction{}},
		{ID: "safe-yer", Name: "الصندوق المنزلي (ر.ي)", Currency: YER, Transactions: []Transaction{
			seed("trans-6", 2000, YER, Expense, "شراء قهوة", "2024-05-27T11:00:00Z"),
			seed("trans-5", 15000, YER, Expense, "مصاريف بقالة", "2024-05-26T18:00:00Z"),
			seed("trans-4", 300000, YER, Income, "راتب شهر مايو", "2024-05-25T08:00:00Z"),
		}},
		{ID: "safe-usd", Name: "الصندوق المنزلي ($)", Currency: USD, Transactions: []Transaction{
			seed("trans-8", 50, USD, Expense, "فاتورة انترنت", "2024-05-28T10:00:00Z"),
			seed("trans-7", 500, USD, Income, "تحويل من صديق", "2024-05-22T16:00:00Z"),
		}},
		{ID: "safe-sar", Name: "الصندوق المنزلي (ر.س)", Currency: SAR, Transactions: []Transaction{
			seed("trans-9", 1000, SAR, Income, "هدية", "2024-05-10T20:00:00Z"),
		}},
		{ID: "acc-bank-yer", Name: "الحساب البنكي (ر.ي)", Currency: YER, Transactions: []Transaction{
			seed("trans-10", 500000, YER, Income, "رصيد افتتاحي للادخار", "2024-05-01T00:00:00Z"),
		}},
		{ID: "acc-bank-usd", Name: "الحساب البنكي ($)", Currency: USD, Transactions: []Transaction{}},
		{ID: "acc-bank-sar", Name: "الحساب البنكي (ر.س)", Currency: SAR, Transactions: []Transaction{}},
	}
}
