// Package batch implements the batch repository using PostgreSQL.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/domain"
)

// Repo provides batch persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new batch repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const batchColumns = `id, name, total_tasks, processed_tasks, successful_tasks,
       failed_tasks, status, uploaded_at, completed_at`

const getByIDSQL = `
SELECT ` + batchColumns + `
FROM batches
WHERE id = $1`

const listProcessingSQL = `
SELECT ` + batchColumns + `
FROM batches
WHERE status = 'PROCESSING'
ORDER BY uploaded_at ASC`

const markProcessingSQL = `
UPDATE batches
SET status = 'PROCESSING'
WHERE id = $1 AND status IN ('PENDING', 'PROCESSING')`

const addProgressSQL = `
UPDATE batches
SET processed_tasks = processed_tasks + $2,
    successful_tasks = successful_tasks + $3,
    failed_tasks = failed_tasks + $4
WHERE id = $1`

const markCompletedSQL = `
UPDATE batches
SET status = 'COMPLETED', completed_at = $2
WHERE id = $1 AND status = 'PROCESSING'`

const markFailedSQL = `
UPDATE batches
SET status = 'FAILED', completed_at = $2
WHERE id = $1 AND status IN ('PENDING', 'PROCESSING')`

const deleteFinishedSQL = `
DELETE FROM batches
WHERE status IN ('COMPLETED', 'FAILED')`

// Create inserts a new batch.
func (r *Repo) Create(ctx context.Context, b domain.Batch) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`INSERT INTO batches (id, name, total_tasks, status, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.Name, b.TotalTasks, string(b.Status), b.UploadedAt,
	)
	if err != nil {
		return postgres.MapError(err, "batch", b.ID)
	}

	return nil
}

// GetByID returns a batch by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	b, err := scanBatch(row)
	if err != nil {
		return domain.Batch{}, postgres.MapError(err, "batch", id)
	}

	return b, nil
}

// ListProcessing returns every PROCESSING batch, oldest first.
// Used by the batch health sweep.
func (r *Repo) ListProcessing(ctx context.Context) ([]domain.Batch, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listProcessingSQL)
	if err != nil {
		return nil, fmt.Errorf("list processing batches: %w", err)
	}
	defer rows.Close()

	var batches []domain.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	if batches == nil {
		batches = []domain.Batch{}
	}

	return batches, nil
}

// MarkProcessing transitions a batch to PROCESSING. Re-marking an already
// PROCESSING batch is a no-op success so a health-sweep re-run can proceed.
// Returns false when the batch is terminal or missing.
func (r *Repo) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markProcessingSQL, id)
	if err != nil {
		return false, postgres.MapError(err, "batch", id)
	}

	return tag.RowsAffected() == 1, nil
}

// AddProgress increments the batch counters by the outcome of one finished
// chunk. processed must equal successes + failures.
func (r *Repo) AddProgress(ctx context.Context, id uuid.UUID, processed, successes, failures int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, addProgressSQL, id, processed, successes, failures)
	if err != nil {
		return postgres.MapError(err, "batch", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("batch %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkCompleted transitions a batch PROCESSING → COMPLETED.
// Returns false when the batch was not PROCESSING.
func (r *Repo) MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markCompletedSQL, id, at)
	if err != nil {
		return false, postgres.MapError(err, "batch", id)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions a batch to FAILED (batch-level fault, e.g. the
// task list could not be loaded). Returns false when already terminal.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markFailedSQL, id, at)
	if err != nil {
		return false, postgres.MapError(err, "batch", id)
	}

	return tag.RowsAffected() == 1, nil
}

// DeleteFinished removes every COMPLETED and FAILED batch; tasks and
// candidates go with them via ON DELETE CASCADE. Returns the number of
// batches removed. This is the only deletion path for resolution data.
func (r *Repo) DeleteFinished(ctx context.Context) (int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteFinishedSQL)
	if err != nil {
		return 0, fmt.Errorf("delete finished batches: %w", err)
	}

	return tag.RowsAffected(), nil
}

func scanBatch(row pgx.Row) (domain.Batch, error) {
	var (
		b      domain.Batch
		status string
	)

	err := row.Scan(
		&b.ID, &b.Name, &b.TotalTasks, &b.ProcessedTasks, &b.SuccessfulTasks,
		&b.FailedTasks, &status, &b.UploadedAt, &b.CompletedAt,
	)
	if err != nil {
		return domain.Batch{}, err
	}

	b.Status = domain.BatchStatus(status)

	return b, nil
}
