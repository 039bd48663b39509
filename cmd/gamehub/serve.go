// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 GameHub Contributors

package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"

	"github.com/gamehub/gamehub/internal/config"
	"github.com/gamehub/gamehub/internal/httpapi"
	"github.com/gamehub/gamehub/internal/identity"
	"github.com/gamehub/gamehub/internal/identity/google"
	"github.com/gamehub/gamehub/internal/identity/postgres"
	"github.com/gamehub/gamehub/internal/logging"
	"github.com/gamehub/gamehub/internal/observability"
)

// dbConnectAttempts bounds startup retries against a database that is
// still coming up.
const dbConnectAttempts = 5

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the identity service",
		Long: `Start the HTTP API that signs players in, provisions identities,
and authenticates session tokens.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd)
		},
	}

	// Flag names mirror config keys so they layer over the file directly
	cmd.Flags().String("server.listen_addr", "", "public API listen address")
	cmd.Flags().String("server.metrics_addr", "", "metrics/health HTTP address")
	cmd.Flags().String("log.format", "", "log format (json or text)")

	return cmd
}

// runServe wires the service together and blocks until shutdown.
func runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("gamehub", version, cfg.Log.Format)
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectPostgres(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	verifier, err := google.NewVerifier(ctx, google.Config{
		Issuer:   cfg.Google.Issuer,
		ClientID: cfg.Google.ClientID,
	})
	if err != nil {
		return err
	}

	tokens, err := identity.NewTokenService([]byte(cfg.Session.Secret.Reveal()), cfg.Session.TTL)
	if err != nil {
		return err
	}

	store := postgres.NewStore(pool)
	svc, err := identity.NewServiceWithLogger(store, verifier, tokens, logger)
	if err != nil {
		return err
	}

	// Observability server: readiness tracks database connectivity
	obsServer := observability.NewServer(cfg.Server.MetricsAddr, func() bool {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return pool.Ping(pingCtx) == nil
	})
	obsErrCh, err := obsServer.Start()
	if err != nil {
		return oops.Code("OBSERVABILITY_START_FAILED").Wrap(err)
	}
	go func() {
		if obsErr := <-obsErrCh; obsErr != nil {
			logger.Error("observability server error", "error", obsErr)
		}
	}()

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:   logger,
		Identity: svc,
		Tokens:   tokens,
	})
	apiServer := httpapi.NewServer(router, httpapi.DefaultServerConfig(cfg.Server.ListenAddr), logger)

	apiErrCh := make(chan error, 1)
	go func() {
		apiErrCh <- apiServer.Start()
	}()

	logger.Info("gamehub started",
		"listen_addr", cfg.Server.ListenAddr,
		"metrics_addr", obsServer.Addr(),
	)

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err = <-apiErrCh:
		if err != nil {
			logger.Error("API server failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if shutdownErr := apiServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("API server shutdown failed", "error", shutdownErr)
	}
	if stopErr := obsServer.Stop(shutdownCtx); stopErr != nil {
		logger.Error("observability server shutdown failed", "error", stopErr)
	}

	return err
}

// connectPostgres dials the database, retrying with exponential backoff
// while it comes up.
func connectPostgres(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.URL())
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "create connection pool").
			Wrap(err)
	}

	backoff := retry.WithMaxRetries(dbConnectAttempts, retry.NewFibonacci(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := pool.Ping(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").
			With("operation", "ping database").
			With("host", cfg.Host).
			Wrap(err)
	}

	return pool, nil
}
