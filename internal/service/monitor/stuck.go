package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type stuckTaskRepo interface {
	ListProcessing(ctx context.Context) ([]domain.Task, error)
	MarkFailed(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)
}

type stuckBatchRepo interface {
	AddProgress(ctx context.Context, id uuid.UUID, processed, successes, failures int) error
}

// ---------------------------------------------------------------------------
// Stuck sweep
// ---------------------------------------------------------------------------

// Stuck force-fails tasks that have sat in PROCESSING past the task
// timeout, typically after a crashed worker or a hung collaborator. A
// force-failed task advances its batch counters like any other failure,
// so the batch can still complete.
type Stuck struct {
	tasks   stuckTaskRepo
	batches stuckBatchRepo
	clock   Clock
	log     *slog.Logger

	timeout  time.Duration
	interval time.Duration
}

func NewStuck(
	log *slog.Logger,
	tasks stuckTaskRepo,
	batches stuckBatchRepo,
	clock Clock,
	timeout, interval time.Duration,
) *Stuck {
	return &Stuck{
		tasks:    tasks,
		batches:  batches,
		clock:    clock,
		log:      log.With("service", "stuck_monitor"),
		timeout:  timeout,
		interval: interval,
	}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (m *Stuck) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.InfoContext(ctx, "stuck sweep started",
		slog.Duration("timeout", m.timeout),
		slog.Duration("interval", m.interval))

	for {
		select {
		case <-ctx.Done():
			m.log.InfoContext(ctx, "stuck sweep stopped")
			return
		case <-ticker.C:
			if err := m.Tick(ctx); err != nil {
				m.log.ErrorContext(ctx, "stuck sweep failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

// Tick performs one sweep. Per-task faults are logged and skipped so a
// single bad row cannot stall the sweep.
func (m *Stuck) Tick(ctx context.Context) error {
	now := m.clock.Now()

	tasks, err := m.tasks.ListProcessing(ctx)
	if err != nil {
		return fmt.Errorf("list processing tasks: %w", err)
	}

	for _, task := range tasks {
		if task.ProcessingStartedAt == nil {
			continue
		}
		elapsed := now.Sub(*task.ProcessingStartedAt)
		if elapsed <= m.timeout {
			continue
		}

		msg := fmt.Sprintf("task stuck in PROCESSING for %s, force-failed", elapsed.Round(time.Second))
		res := domain.TaskResult{
			FailureCategory:  domain.FailureCategoryStuck,
			ErrorMessage:     &msg,
			ProcessingTimeMs: elapsed.Milliseconds(),
		}

		ok, err := m.tasks.MarkFailed(ctx, task.ID, res, now)
		if err != nil {
			m.log.WarnContext(ctx, "could not force-fail stuck task",
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if !ok {
			// The task finished between listing and failing.
			continue
		}

		metrics.StuckTasksFailed.Inc()
		m.log.InfoContext(ctx, "force-failed stuck task",
			slog.String("task_id", task.ID.String()),
			slog.String("domain", task.Domain),
			slog.Duration("elapsed", elapsed))

		if err := m.batches.AddProgress(ctx, task.BatchID, 1, 0, 1); err != nil {
			m.log.WarnContext(ctx, "could not advance batch counters for stuck task",
				slog.String("batch_id", task.BatchID.String()),
				slog.String("task_id", task.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	return nil
}
