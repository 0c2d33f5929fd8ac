package repositories

import (
	"context"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
)

// StatementExporter publishes an already filtered account statement somewhere outside the wallet.
type StatementExporter interface {
	// Export writes the statement and returns a reference to where it landed.
	Export(ctx context.Context, stmt domain.Statement) (string, error)
}
