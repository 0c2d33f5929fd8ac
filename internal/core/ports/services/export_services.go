package services

import (
	"context"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
)

// ExportSvc publishes account statements through the configured exporter.
type ExportSvc interface {
	// Enabled reports whether an exporter is configured.
	Enabled() bool
	ExportStatement(ctx context.Context, sessionID, accountID string, filter domain.TransactionFilter) (string, error)
}
