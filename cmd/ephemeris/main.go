package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/slimtomatillo/ephemeris/internal/api"
	"github.com/slimtomatillo/ephemeris/internal/auth"
	"github.com/slimtomatillo/ephemeris/internal/catalog"
	"github.com/slimtomatillo/ephemeris/internal/config"
	"github.com/slimtomatillo/ephemeris/internal/uphere"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := uphere.New(uphere.Config{
		APIKey:            cfg.APIKey,
		APIHost:           cfg.APIHost,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Timeout:           cfg.RequestTimeout,
	}, logger)

	cat := catalog.New(client, cfg.CacheTTL, logger)

	authCfg := auth.Config{
		Enabled: cfg.AuthToken != "",
		Token:   cfg.AuthToken,
	}

	srv := api.New(cfg.HTTPAddr, cat, client, authCfg, logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		"addr", cfg.HTTPAddr,
		"api_host", cfg.APIHost,
		"rate_per_second", cfg.RequestsPerSecond,
		"cache_ttl", cfg.CacheTTL.String(),
		"auth_enabled", authCfg.Enabled,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
