package dto

import (
	"fmt"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettingsRequest replaces the alert settings and the exchange rates.
type SettingsRequest struct {
	SavingsThreshold  int64                      `json:"savingsThreshold" binding:"min=0"`
	SavingsPercentage int64                      `json:"savingsPercentage" binding:"required,min=1,max=100"`
	ExchangeRates     map[string]decimal.Decimal `json:"exchangeRates" binding:"required,min=1"`
}

// ToDomain splits the request into settings and rates.
func (r SettingsRequest) ToDomain() (domain.Settings, domain.ExchangeRates, error) {
	rates := make(domain.ExchangeRates, len(r.ExchangeRates))
	for code, rate := range r.ExchangeRates {
		c, err := domain.ParseCurrency(code)
		if err != nil {
			return domain.Settings{}, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		rates[c] = rate
	}
	return domain.Settings{SavingsThreshold: r.SavingsThreshold, SavingsPercentage: r.SavingsPercentage}, rates, nil
}

// SettingsResponse is the current configuration.
type SettingsResponse struct {
	domain.Settings
	ExchangeRates domain.ExchangeRates `json:"exchangeRates"`
	Currencies    []CurrencyResponse   `json:"currencies"`
}

// CurrencyResponse describes one supported currency.
type CurrencyResponse struct {
	Code   domain.Currency `json:"code"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
}

// ToSettingsResponse builds the settings payload.
func ToSettingsResponse(settings domain.Settings, rates domain.ExchangeRates) SettingsResponse {
	currencies := make([]CurrencyResponse, 0, len(domain.Currencies))
	for _, c := range domain.Currencies {
		d := c.Details()
		currencies = append(currencies, CurrencyResponse{Code: c, Symbol: d.Symbol, Name: d.Name})
	}
	return SettingsResponse{Settings: settings, ExchangeRates: rates, Currencies: currencies}
}
