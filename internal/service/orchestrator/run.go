package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/metrics"
)

// Run executes one resolution pass over a batch: every runnable task is
// processed in chunks of the configured concurrency, with batch
// counters updated after each chunk is fully awaited. A second Run for
// the same batch in this process returns domain.ErrAlreadyRunning.
//
// Per-task faults never abort the run; only batch-level faults (losing
// the task list, losing the progress counters) mark the batch FAILED.
func (s *Service) Run(ctx context.Context, batchID uuid.UUID) error {
	if !s.tryAcquire(batchID) {
		return domain.ErrAlreadyRunning
	}
	defer s.release(batchID)

	ok, err := s.batches.MarkProcessing(ctx, batchID)
	if err != nil {
		return fmt.Errorf("mark batch %s processing: %w", batchID, err)
	}
	if !ok {
		// Already COMPLETED or FAILED; a repeat run is a no-op.
		s.log.InfoContext(ctx, "batch already finished, nothing to run",
			slog.String("batch_id", batchID.String()))
		return nil
	}

	runnable, err := s.tasks.ListRunnable(ctx, batchID)
	if err != nil {
		s.failBatch(ctx, batchID, fmt.Errorf("list runnable tasks: %w", err))
		return fmt.Errorf("list runnable tasks for batch %s: %w", batchID, err)
	}

	s.log.InfoContext(ctx, "batch run started",
		slog.String("batch_id", batchID.String()),
		slog.Int("runnable", len(runnable)))

	for start := 0; start < len(runnable); start += s.concurrency {
		end := start + s.concurrency
		if end > len(runnable) {
			end = len(runnable)
		}

		processed, successes, failures := s.runChunk(ctx, runnable[start:end])

		if processed > 0 {
			if err := s.batches.AddProgress(ctx, batchID, processed, successes, failures); err != nil {
				s.failBatch(ctx, batchID, fmt.Errorf("add progress: %w", err))
				return fmt.Errorf("add progress for batch %s: %w", batchID, err)
			}
		}

		if ctx.Err() != nil {
			// Shutdown mid-batch: leave the batch PROCESSING, the
			// health sweep resumes it on the next start.
			s.log.WarnContext(ctx, "batch run interrupted",
				slog.String("batch_id", batchID.String()))
			return ctx.Err()
		}
	}

	return s.finishIfDone(ctx, batchID)
}

// runChunk processes one chunk in parallel and reports how many tasks
// reached a terminal state, split into successes and failures. Tasks
// that could not be claimed, or whose terminal state could not be
// persisted, are not counted: the sweeps settle them later.
func (s *Service) runChunk(ctx context.Context, chunk []domain.Task) (processed, successes, failures int) {
	var succ, fail atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, task := range chunk {
		task := task
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.log.ErrorContext(gctx, "task panicked",
						slog.String("task_id", task.ID.String()),
						slog.String("domain", task.Domain),
						slog.Any("panic", r))
				}
			}()

			out, err := s.resolver.Process(gctx, task)
			if err != nil {
				s.log.ErrorContext(gctx, "task processing fault",
					slog.String("task_id", task.ID.String()),
					slog.String("domain", task.Domain),
					slog.String("error", err.Error()))
				return nil
			}
			if !out.Claimed {
				return nil
			}
			if out.Success {
				succ.Add(1)
			} else {
				fail.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	successes = int(succ.Load())
	failures = int(fail.Load())
	return successes + failures, successes, failures
}

// finishIfDone completes the batch when every task is terminal. A batch
// with leftovers stays PROCESSING for the sweeps to settle.
func (s *Service) finishIfDone(ctx context.Context, batchID uuid.UUID) error {
	counts, err := s.tasks.CountByStatus(ctx, batchID)
	if err != nil {
		s.log.WarnContext(ctx, "could not check batch completion",
			slog.String("batch_id", batchID.String()),
			slog.String("error", err.Error()))
		return nil
	}

	for _, c := range counts {
		if !c.Status.IsTerminal() && c.Count > 0 {
			s.log.InfoContext(ctx, "batch run finished with unsettled tasks",
				slog.String("batch_id", batchID.String()),
				slog.String("status", c.Status.String()),
				slog.Int("count", c.Count))
			return nil
		}
	}

	ok, err := s.batches.MarkCompleted(ctx, batchID, time.Now())
	if err != nil {
		return fmt.Errorf("mark batch %s completed: %w", batchID, err)
	}
	if ok {
		metrics.BatchesCompleted.WithLabelValues(domain.BatchStatusCompleted.String()).Inc()
		s.log.InfoContext(ctx, "batch completed", slog.String("batch_id", batchID.String()))
	}
	return nil
}

// failBatch marks the batch FAILED after an orchestrator-level fault.
func (s *Service) failBatch(ctx context.Context, batchID uuid.UUID, cause error) {
	s.log.ErrorContext(ctx, "batch run aborted",
		slog.String("batch_id", batchID.String()),
		slog.String("error", cause.Error()))

	ok, err := s.batches.MarkFailed(ctx, batchID, time.Now())
	if err != nil {
		s.log.ErrorContext(ctx, "could not mark batch failed",
			slog.String("batch_id", batchID.String()),
			slog.String("error", err.Error()))
		return
	}
	if ok {
		metrics.BatchesCompleted.WithLabelValues(domain.BatchStatusFailed.String()).Inc()
	}
}
