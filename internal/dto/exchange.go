package dto

import (
	"fmt"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRequest sells one currency from its safe for another.
type ExchangeRequest struct {
	AmountToSell    decimal.Decimal `json:"amountToSell"`
	FromCurrency    string          `json:"fromCurrency" binding:"required"`
	ToCurrency      string          `json:"toCurrency" binding:"required"`
	Rate            decimal.Decimal `json:"rate"`
	AmountToReceive decimal.Decimal `json:"amountToReceive"`
}

// ToInput converts the request into a ledger exchange input.
func (r ExchangeRequest) ToInput() (domain.ExchangeInput, error) {
	from, to, err := parsePair(r.FromCurrency, r.ToCurrency)
	if err != nil {
		return domain.ExchangeInput{}, err
	}
	return domain.ExchangeInput{
		AmountToSell:    r.AmountToSell,
		FromCurrency:    from,
		ToCurrency:      to,
		Rate:            r.Rate,
		AmountToReceive: r.AmountToReceive,
	}, nil
}

// ExchangeQuoteParams are the query parameters of an exchange quote.
type ExchangeQuoteParams struct {
	Amount string `form:"amount"`
	From   string `form:"from" binding:"required"`
	To     string `form:"to" binding:"required"`
	Rate   string `form:"rate"` // empty means the suggested rate
}

// Parse validates the quote parameters.
func (p ExchangeQuoteParams) Parse() (amount decimal.Decimal, from, to domain.Currency, rate decimal.Decimal, err error) {
	if from, to, err = parsePair(p.From, p.To); err != nil {
		return
	}
	if amount, err = optionalDecimal(p.Amount); err != nil {
		return
	}
	rate, err = optionalDecimal(p.Rate)
	return
}

// ExchangeQuoteResponse is the preview of an exchange.
type ExchangeQuoteResponse struct {
	SuggestedRate   decimal.Decimal `json:"suggestedRate"`
	AmountToReceive decimal.Decimal `json:"amountToReceive"`
}

// SavingsTransferRequest moves money from a safe into the bank account of the same currency.
type SavingsTransferRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" binding:"required"`
}

// ParseCurrency validates the currency of the transfer.
func (r SavingsTransferRequest) ParseCurrency() (domain.Currency, error) {
	c, err := domain.ParseCurrency(r.Currency)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return c, nil
}

func parsePair(fromCode, toCode string) (domain.Currency, domain.Currency, error) {
	from, err := domain.ParseCurrency(fromCode)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	to, err := domain.ParseCurrency(toCode)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return from, to, nil
}

func optionalDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid number %q", apperrors.ErrValidation, s)
	}
	return d, nil
}
