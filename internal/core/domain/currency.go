package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is one of the closed set of currencies the wallet tracks.
type Currency string

const (
	YER Currency = "YER"
	USD Currency = "USD"
	SAR Currency = "SAR"
)

// BaseCurrency is the currency every summary figure is converted into.
const BaseCurrency = YER

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{YER, USD, SAR}

// CurrencyDetails holds display metadata for a currency.
type CurrencyDetails struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var currencyDetails = map[Currency]CurrencyDetails{
	YER: {Symbol: "ر.ي.", Name: "ريال يمني"},
	USD: {Symbol: "$", Name: "دولار أمريكي"},
	SAR: {Symbol: "ر.س.", Name: "ريال سعودي"},
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	_, ok := currencyDetails[c]
	return ok
}

// Details returns the symbol and display name of c.
// Unknown currencies fall back to their code.
func (c Currency) Details() CurrencyDetails {
	if d, ok := currencyDetails[c]; ok {
		return d
	}
	return CurrencyDetails{Symbol: string(c), Name: string(c)}
}

// Slug is the lower-case form used inside account ids.
func (c Currency) Slug() string {
	return strings.ToLower(string(c))
}

// ParseCurrency accepts a currency code in any letter case.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// ExchangeRates maps a currency to the number of base-currency units per one unit of it.
type ExchangeRates map[Currency]decimal.Decimal

// Rate returns the rate for c. Missing or non-positive entries are treated as 1.
func (r ExchangeRates) Rate(c Currency) decimal.Decimal {
	if rate, ok := r[c]; ok && rate.IsPositive() {
		return rate
	}
	return decimal.NewFromInt(1)
}

// Clone returns an independent copy of r.
func (r ExchangeRates) Clone() ExchangeRates {
	out := make(ExchangeRates, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DefaultExchangeRates is the rate table used when none has been saved yet.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		YER: decimal.NewFromInt(1),
		USD: decimal.NewFromInt(550),
		SAR: decimal.NewFromInt(140),
	}
}
