// momo-sandbox runs a local emulation of the mobile-money API: token
// issuance, collection and disbursement endpoints, and API user
// provisioning. Intended for development and integration testing only.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wirepay/momo-go/pkg/config"
	"github.com/wirepay/momo-go/pkg/sandbox"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to setup logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting momo sandbox",
		zap.String("config", *configPath),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port))

	store := sandbox.NewStore()
	issuer := sandbox.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	handlers := sandbox.NewHandlers(store, issuer, cfg.Account, logger)
	router := sandbox.NewRouter(handlers, cfg.Monitoring.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sandbox.ServeAndWait(ctx, router, logger, &cfg.Server); err != nil {
		logger.Fatal("Sandbox server failed", zap.Error(err))
	}
}
