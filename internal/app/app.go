// Package app wires configuration, adapters, services, and transports
// into a runnable process.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/batch"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/candidate"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/task"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/extract"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/gleif"
	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/metrics"
	"github.com/leiscope/domain-resolver/internal/service/monitor"
	"github.com/leiscope/domain-resolver/internal/service/orchestrator"
	"github.com/leiscope/domain-resolver/internal/service/resolution"
	"github.com/leiscope/domain-resolver/internal/service/scoring"
	"github.com/leiscope/domain-resolver/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects
// the adapters, starts the background sweeps and the HTTP server, and
// blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	cache := rediscache.New(cfg.Redis, logger)
	if cache != nil {
		defer cache.Close() //nolint:errcheck
		if err := cache.Ping(ctx); err != nil {
			logger.Warn("resolved-domain cache unreachable, lookups fall through to postgres",
				slog.String("error", err.Error()))
		}
	}

	txm := postgres.NewTxManager(pool)
	tasks := task.New(pool)
	batches := batch.New(pool)
	candidates := candidate.New(pool)

	resolver := resolution.NewService(
		logger,
		tasks,
		candidates,
		extract.NewClient(cfg.Extractor, logger),
		gleif.NewClient(cfg.GLEIF, logger),
		cache,
		txm,
		resolution.Config{
			SuccessThreshold: cfg.Resolver.SuccessThreshold,
			CacheThreshold:   cfg.Resolver.CacheThreshold,
			TaskTimeout:      cfg.Resolver.TaskTimeout,
		},
		scoring.Weights{
			Name:         cfg.Scoring.NameWeight,
			Jurisdiction: cfg.Scoring.JurisdictionWeight,
			EntityType:   cfg.Scoring.EntityTypeWeight,
			Status:       cfg.Scoring.StatusWeight,
		},
	)

	orch := orchestrator.NewService(logger, batches, tasks, candidates, resolver, txm, cfg.Resolver.Concurrency)

	clock := monitor.SystemClock()
	stuck := monitor.NewStuck(logger, tasks, batches, clock, cfg.Resolver.TaskTimeout, cfg.Monitor.StuckInterval)
	health := monitor.NewHealth(logger, batches, tasks, orch, clock, cfg.Monitor.StallThreshold, cfg.Monitor.HealthInterval)
	go stuck.Run(ctx)
	go health.Run(ctx)

	if cfg.Metrics.Enabled {
		go metrics.Expose(cfg.Metrics.Addr, logger)
	}

	healthHandler := rest.NewHealthHandler(pool, nil, BuildVersion())
	if cache != nil {
		healthHandler = rest.NewHealthHandler(pool, cache, BuildVersion())
	}
	srv := rest.NewServer(logger, cfg.Server, cfg.CORS, rest.NewBatchHandler(logger, orch), healthHandler)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("application stopped")
	return nil
}
