package services

import (
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The wallet still holds the default data; callers Load it before serving.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...BaseOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Session = NewSessionService(cfg.JWTExpiryDuration, opts...)

	goals := NewGoalService(opts...)
	container.Wallet = NewWalletService(WalletDeps{
		KeyValue: repos.KeyValue,
		Ledger:   NewLedgerService(opts...),
		Goals:    goals,
		Alerts:   NewAlertService(goals, opts...),
		Sessions: container.Session,
	}, opts...)

	container.Auth = NewAuthService(repos.KeyValue, container.Session, TokenConfig{
		Secret: cfg.JWTSecret,
		Expiry: cfg.JWTExpiryDuration,
		Issuer: cfg.JWTIssuer,
	}, opts...)

	container.Export = NewExportService(container.Wallet, repos.Exporter, opts...)

	return container
}
