// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CollegeCrew Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/collegecrew/collegecrew/internal/auth"
	authpg "github.com/collegecrew/collegecrew/internal/auth/postgres"
	"github.com/collegecrew/collegecrew/internal/config"
	"github.com/collegecrew/collegecrew/internal/httpapi"
	"github.com/collegecrew/collegecrew/internal/logging"
	mktpg "github.com/collegecrew/collegecrew/internal/marketplace/postgres"
	"github.com/collegecrew/collegecrew/internal/observability"
	"github.com/collegecrew/collegecrew/internal/store"
	"github.com/collegecrew/collegecrew/pkg/errutil"
)

const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the CollegeCrew API server",
		Long: `Start the HTTP API server handling registration, login, job
postings, bids, and transactions, plus an observability server for
metrics and health probes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg, cmd)
		},
	}

	cmd.Flags().String("database.url", "", "PostgreSQL connection URL")
	cmd.Flags().String("http.addr", config.DefaultHTTPAddr, "API listen address")
	cmd.Flags().String("metrics.addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log.format", config.DefaultLogFormat, "log format (json or text)")
	cmd.Flags().String("token.secret", "", "session token signing secret")
	cmd.Flags().Int64("token.lifetime_ms", 0, "session token lifetime in milliseconds")

	return cmd
}

// runServe wires the services together and runs until a shutdown
// signal arrives.
func runServe(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	if err := logging.SetDefault("collegecrew", version, cfg.LogFormat); err != nil {
		return err
	}
	logger := slog.Default()

	logger.Info("starting server",
		"http_addr", cfg.HTTPAddr,
		"metrics_addr", cfg.MetricsAddr,
		"log_format", cfg.LogFormat,
	)

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	identities := authpg.NewIdentityRepository(pool)
	institutions := authpg.NewInstitutionRepository(pool)
	jobs := mktpg.NewJobRepository(pool)
	bids := mktpg.NewBidRepository(pool)
	transactions := mktpg.NewTransactionRepository(pool)

	resolver, err := auth.NewInstitutionResolver(institutions)
	if err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:   cfg.TokenSecret,
		Lifetime: cfg.TokenLifetime,
	})
	if err != nil {
		return err
	}

	authService, err := auth.NewServiceWithLogger(identities, resolver, auth.NewArgon2idHasher(), tokens, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Observability first so readiness reflects database connectivity.
	var obsServer *observability.Server
	var metrics *observability.Metrics
	if cfg.MetricsAddr != "" {
		obsServer = observability.NewServer(cfg.MetricsAddr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), time.Second)
			defer pingCancel()
			return pool.Ping(pingCtx) == nil
		})
		metrics = obsServer.Metrics()
		if _, err := obsServer.Start(); err != nil {
			return err
		}
	}

	apiServer, err := httpapi.NewServer(cfg.HTTPAddr, authService, tokens, jobs, bids, transactions, metrics, logger)
	if err != nil {
		stopObservability(obsServer, logger)
		return err
	}

	apiErrCh, err := apiServer.Start()
	if err != nil {
		stopObservability(obsServer, logger)
		return err
	}

	cmd.Println("CollegeCrew server started")
	logger.Info("server ready", "api_addr", apiServer.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig.String())
	case apiErr, ok := <-apiErrCh:
		if ok && apiErr != nil {
			errutil.LogError(logger, "api server failed", apiErr)
		}
	case <-ctx.Done():
		logger.Info("context cancelled, shutting down")
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		errutil.LogError(logger, "error stopping api server", err)
	}
	stopObservability(obsServer, logger)

	logger.Info("shutdown complete")
	return nil
}

func stopObservability(obsServer *observability.Server, logger *slog.Logger) {
	if obsServer == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := obsServer.Stop(shutdownCtx); err != nil {
		errutil.LogError(logger, "error stopping observability server", err)
	}
}
