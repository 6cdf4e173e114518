package monitor

import (
	"context"
	"errors"
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

type healthBatchRepo interface {
	ListProcessing(ctx context.Context) ([]domain.Batch, error)
}

type healthTaskRepo interface {
	CountByStatus(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error)
	LatestProgress(ctx context.Context, batchID uuid.UUID) (*time.Time, error)
}

type batchRunner interface {
	Run(ctx context.Context, batchID uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Health sweep
// ---------------------------------------------------------------------------

// Health re-triggers PROCESSING batches that stopped making progress,
// typically after a process restart killed the run mid-batch. A batch
// is stalled when nothing is in flight and no task has finished within
// the stall threshold: either PENDING work lost its run, or every task
// is terminal and the batch itself still needs its final transition.
type Health struct {
	batches healthBatchRepo
	tasks   healthTaskRepo
	runner  batchRunner
	clock   Clock
	log     *slog.Logger

	stall    time.Duration
	interval time.Duration
}

func NewHealth(
	log *slog.Logger,
	batches healthBatchRepo,
	tasks healthTaskRepo,
	runner batchRunner,
	clock Clock,
	stall, interval time.Duration,
) *Health {
	return &Health{
		batches:  batches,
		tasks:    tasks,
		runner:   runner,
		clock:    clock,
		log:      log.With("service", "health_monitor"),
		stall:    stall,
		interval: interval,
	}
}

// Run sweeps on the configured interval until ctx is cancelled.
func (m *Health) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.InfoContext(ctx, "health sweep started",
		slog.Duration("stall_threshold", m.stall),
		slog.Duration("interval", m.interval))

	for {
		select {
		case <-ctx.Done():
			m.log.InfoContext(ctx, "health sweep stopped")
			return
		case <-ticker.C:
			if err := m.Tick(ctx); err != nil {
				m.log.ErrorContext(ctx, "health sweep failed",
					slog.String("error", err.Error()))
			}
		}
	}
}

// Tick performs one sweep. Per-batch faults are logged and skipped.
func (m *Health) Tick(ctx context.Context) error {
	batches, err := m.batches.ListProcessing(ctx)
	if err != nil {
		return fmt.Errorf("list processing batches: %w", err)
	}

	for _, batch := range batches {
		stalled, err := m.isStalled(ctx, batch)
		if err != nil {
			m.log.WarnContext(ctx, "could not check batch health",
				slog.String("batch_id", batch.ID.String()),
				slog.String("error", err.Error()))
			continue
		}
		if !stalled {
			continue
		}

		m.log.InfoContext(ctx, "resuming stalled batch",
			slog.String("batch_id", batch.ID.String()),
			slog.String("name", batch.Name))

		err = m.runner.Run(ctx, batch.ID)
		switch {
		case errors.Is(err, domain.ErrAlreadyRunning):
			m.log.DebugContext(ctx, "batch picked up by another run",
				slog.String("batch_id", batch.ID.String()))
		case err != nil:
			m.log.WarnContext(ctx, "batch resume failed",
				slog.String("batch_id", batch.ID.String()),
				slog.String("error", err.Error()))
		default:
			metrics.BatchesResumed.Inc()
		}
	}

	return nil
}

func (m *Health) isStalled(ctx context.Context, batch domain.Batch) (bool, error) {
	counts, err := m.tasks.CountByStatus(ctx, batch.ID)
	if err != nil {
		return false, fmt.Errorf("count tasks: %w", err)
	}

	var processing int
	for _, c := range counts {
		if c.Status == domain.TaskStatusProcessing {
			processing = c.Count
		}
	}
	// In-flight work means the run is alive. With nothing in flight the
	// batch needs a re-run either way: PENDING tasks to resume, or every
	// task terminal and only the final status transition left, e.g. after
	// the stuck sweep settled the last task of a dead run.
	if processing > 0 {
		return false, nil
	}

	last, err := m.tasks.LatestProgress(ctx, batch.ID)
	if err != nil {
		return false, fmt.Errorf("latest progress: %w", err)
	}
	since := batch.UploadedAt
	if last != nil {
		since = *last
	}

	return m.clock.Now().Sub(since) > m.stall, nil
}
