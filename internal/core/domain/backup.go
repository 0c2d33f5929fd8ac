package domain

// Backup is the document produced by a backup and consumed by a restore.
// A restore is only accepted when every field is present and non-empty.
type Backup struct {
	Accounts          []Account     `json:"accounts" validate:"required,min=1"`
	Goals             []Goal        `json:"goals" validate:"required"`
	SavingsThreshold  int64         `json:"savingsThreshold" validate:"required,gte=0"`
	SavingsPercentage int64         `json:"savingsPercentage" validate:"required,min=1,max=100"`
	ExchangeRates     ExchangeRates `json:"exchangeRates" validate:"required,min=1"`
}
