package accounting

import (
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SuggestedRate returns the rate to pre-fill for an exchange from one currency to another.
// With the base currency on either side it is the foreign currency's rate; otherwise it is
// the cross rate rounded to four places. Zero means no suggestion.
func SuggestedRate(from, to domain.Currency, rates domain.ExchangeRates) decimal.Decimal {
	switch {
	case from == to:
		return decimal.Zero
	case from == domain.BaseCurrency:
		return rates[to]
	case to == domain.BaseCurrency:
		return rates[from]
	}
	fromRate, toRate := rates[from], rates[to]
	if !fromRate.IsPositive() || !toRate.IsPositive() {
		return decimal.Zero
	}
	return fromRate.DivRound(toRate, 4)
}

// QuoteAmount returns what selling amount at rate yields, rounded to two places.
// Selling the base currency divides by the rate, anything else multiplies.
func QuoteAmount(amount decimal.Decimal, from domain.Currency, rate decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}
	if from == domain.BaseCurrency {
		return amount.DivRound(rate, 2)
	}
	return amount.Mul(rate).Round(2)
}
