package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/smart_wallet/internal/core/ports/services"
	"github.com/SscSPs/smart_wallet/internal/core/services"
	"github.com/SscSPs/smart_wallet/internal/platform/bootstrap"
	"github.com/SscSPs/smart_wallet/internal/platform/config"
	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&backupCmd{},
	&restoreCmd{},
	&summaryCmd{},
	&ratesCmd{},
	&statementCmd{},
}

// wallet is a loaded wallet with a session showing real figures.
type wallet struct {
	*portssvc.ServiceContainer
	session portssvc.Session
	close   func()
}

func openWallet(ctx context.Context) (*wallet, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	repos, closeFn, err := bootstrap.OpenRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	container := services.NewServiceContainer(cfg, repos)
	if err := container.Wallet.Load(ctx); err != nil {
		closeFn()
		return nil, fmt.Errorf("load wallet: %w", err)
	}

	sess := container.Session.Start()
	if sess, err = container.Session.SetDecoy(sess.ID, false); err != nil {
		closeFn()
		return nil, err
	}
	return &wallet{ServiceContainer: container, session: sess, close: closeFn}, nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
