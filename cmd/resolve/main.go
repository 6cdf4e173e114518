// Command resolve submits a domain list file as a batch and runs it to
// completion in-process, printing the per-domain results. Useful for
// ad-hoc lists without standing up the server.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/batch"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/candidate"
	"github.com/leiscope/domain-resolver/internal/adapter/postgres/task"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/extract"
	"github.com/leiscope/domain-resolver/internal/adapter/provider/gleif"
	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/app"
	"github.com/leiscope/domain-resolver/internal/config"
	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/service/orchestrator"
	"github.com/leiscope/domain-resolver/internal/service/resolution"
	"github.com/leiscope/domain-resolver/internal/service/scoring"
)

func main() {
	file := flag.String("file", "", "path to a file with one domain per line")
	name := flag.String("name", "", "batch name (defaults to the file name)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: resolve -file domains.txt [-name \"my batch\"]")
		os.Exit(1)
	}
	if *name == "" {
		*name = *file
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := app.NewLogger(cfg.Log)

	domains, err := readDomains(*file)
	if err != nil {
		logger.Error("read domain list", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	cache := rediscache.New(cfg.Redis, logger)
	if cache != nil {
		defer cache.Close() //nolint:errcheck
	}

	txm := postgres.NewTxManager(pool)
	tasks := task.New(pool)
	batches := batch.New(pool)
	candidates := candidate.New(pool)

	resolver := resolution.NewService(
		logger, tasks, candidates,
		extract.NewClient(cfg.Extractor, logger),
		gleif.NewClient(cfg.GLEIF, logger),
		cache, txm,
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

	b, err := orch.Submit(ctx, orchestrator.SubmitInput{Name: *name, Domains: domains})
	if err != nil {
		logger.Error("submit batch", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("batch submitted",
		slog.String("batch_id", b.ID.String()),
		slog.Int("tasks", b.TotalTasks))

	if err := orch.Run(ctx, b.ID); err != nil {
		logger.Error("batch run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	results, err := orch.Results(ctx, b.ID, domain.TaskFilter{})
	if err != nil {
		logger.Error("fetch results", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printResults(results)
}

func readDomains(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var domains []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		domains = append(domains, line)
	}
	return domains, scanner.Err()
}

func printResults(tasks []domain.Task) {
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusSuccess:
			name, lei := "", ""
			if t.CompanyName != nil {
				name = *t.CompanyName
			}
			if t.PrimaryLEI != nil {
				lei = *t.PrimaryLEI
			}
			confidence := 0
			if t.ConfidenceScore != nil {
				confidence = *t.ConfidenceScore
			}
			review := ""
			if t.ManualReviewRequired {
				review = " (review)"
			}
			fmt.Printf("%-40s %s  %s  confidence=%d%s\n", t.Domain, lei, name, confidence, review)
		default:
			reason := string(t.FailureCategory)
			if t.ErrorMessage != nil {
				reason = *t.ErrorMessage
			}
			fmt.Printf("%-40s FAILED: %s\n", t.Domain, reason)
		}
	}
}
