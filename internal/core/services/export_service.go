package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
)

type exportService struct {
	BaseService
	wallet   portssvc.WalletReaderSvc
	exporter portsrepo.StatementExporter
}

// NewExportService creates the statement export service. exporter may be nil,
// in which case the service reports itself disabled.
func NewExportService(wallet portssvc.WalletReaderSvc, exporter portsrepo.StatementExporter, opts ...BaseOption) portssvc.ExportSvc {
	return &exportService{BaseService: newBaseService(opts...), wallet: wallet, exporter: exporter}
}

var _ portssvc.ExportSvc = (*exportService)(nil)

func (s *exportService) Enabled() bool {
	return s.exporter != nil
}

func (s *exportService) ExportStatement(ctx context.Context, sessionID, accountID string, filter domain.TransactionFilter) (string, error) {
	if !s.Enabled() {
		return "", fmt.Errorf("%w: no statement exporter is configured", apperrors.ErrNotFound)
	}
	stmt, err := s.wallet.BuildStatement(ctx, sessionID, accountID, filter)
	if err != nil {
		return "", err
	}
	ref, err := s.exporter.Export(ctx, stmt)
	if err != nil {
		s.LogError(ctx, err, "Statement export failed", slog.String("account_id", accountID))
		return "", fmt.Errorf("failed to export statement: %w", err)
	}
	s.LogInfo(ctx, "Statement exported", slog.String("account_id", accountID), slog.Int("rows", len(stmt.Rows)))
	return ref, nil
}
