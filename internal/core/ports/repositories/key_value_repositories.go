package repositories

import "context"

// Keys under which the wallet state is persisted. Each value is JSON.
const (
	KeyAccounts          = "accounts"
	KeyExchangeRates     = "exchangeRates"
	KeyGoals             = "goals"
	KeySavingsThreshold  = "savingsThreshold"
	KeySavingsPercentage = "savingsPercentage"
	KeyPasswordHash      = "passwordHash"
)

// KeyValueReader loads persisted values.
type KeyValueReader interface {
	// Load returns the value stored under key, or apperrors.ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
}

// KeyValueWriter stores persisted values.
type KeyValueWriter interface {
	// Store writes value under key, replacing any previous value.
	Store(ctx context.Context, key string, value []byte) error
	// StoreBatch writes every entry atomically: all of them are stored or none is.
	StoreBatch(ctx context.Context, entries map[string][]byte) error
}

// KeyValueStore is the whole persistence port of the wallet.
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
}
