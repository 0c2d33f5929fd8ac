package accounting

import (
	"github.com/Rhymond/go-money"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount renders amount with thousands separators and the currency's usual
// number of fraction digits, without a symbol.
func FormatAmount(amount decimal.Decimal, c domain.Currency) string {
	cur := money.GetCurrency(string(c))
	if cur == nil {
		return amount.String()
	}
	fraction := cur.Fraction
	if amount.Equal(amount.Truncate(0)) {
		fraction = 0
	}
	minor := amount.Shift(int32(fraction)).Round(0).IntPart()
	return money.NewFormatter(fraction, cur.Decimal, cur.Thousand, "", "1").Format(minor)
}
