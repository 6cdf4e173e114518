// Command cleanup bulk-clears finished batches and their tasks. It is
// the only deletion path in the system and is intended to be invoked by
// an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/batch"
	"github.com/leiscope/domain-resolver/internal/app"
	"github.com/leiscope/domain-resolver/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	deleted, err := batch.New(pool).DeleteFinished(ctx)
	if err != nil {
		logger.Error("cleanup failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("cleanup completed", slog.Int64("batches_deleted", deleted))
}
