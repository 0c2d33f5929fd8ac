// Package bootstrap opens the outbound adapters selected by the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/smart_wallet/internal/adapters/database/bolt"
	"github.com/SscSPs/smart_wallet/internal/adapters/database/pgsql"
	"github.com/SscSPs/smart_wallet/internal/adapters/export/sheets"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	"github.com/SscSPs/smart_wallet/internal/platform/config"
	"github.com/SscSPs/smart_wallet/pkg/database"
)

// OpenRepositories opens the configured key-value store and, when credentials are
// present, the Sheets exporter. The returned func releases the store.
func OpenRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	var (
		repos   portsrepo.RepositoryProvider
		closeFn func()
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if cfg.RunMigrations {
			logger.Info("Running database migrations...")
			applied, err := pgsql.RunMigrations(cfg.DatabaseURL)
			if err != nil {
				return repos, nil, fmt.Errorf("failed to apply migrations: %w", err)
			}
			if applied {
				logger.Info("Database migrations applied successfully.")
			} else {
				logger.Info("No new migrations to apply.")
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return repos, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		repos = pgsql.NewRepositoryProvider(pool)
		closeFn = func() { database.ClosePgxPool(pool) }

	default:
		repo, err := bolt.Open(cfg.BoltPath)
		if err != nil {
			return repos, nil, err
		}
		logger.Info("Opened bolt store", slog.String("path", cfg.BoltPath))
		repos = portsrepo.RepositoryProvider{KeyValue: repo}
		closeFn = func() {
			if err := repo.Close(); err != nil {
				logger.Error("Error closing bolt store", slog.String("error", err.Error()))
			}
		}
	}

	if cfg.SheetsEnabled() {
		client, err := sheets.NewFromServiceAccountFile(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleServiceAccountFile)
		if err != nil {
			closeFn()
			return repos, nil, fmt.Errorf("failed to initialize sheets export: %w", err)
		}
		repos.Exporter = client
		logger.Info("Sheets export enabled", slog.String("spreadsheet_id", cfg.GoogleSpreadsheetID))
	}

	return repos, closeFn, nil
}
