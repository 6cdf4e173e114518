// Package task implements the resolution task repository using PostgreSQL.
// Status transitions are guarded UPDATEs (WHERE status = <expected>) so that
// the orchestrator and the stuck-task sweep can never double-transition a row.
package task

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/domain"
)

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const taskColumns = `id, batch_id, domain, domain_hash, status, company_name,
       confidence_score, extraction_method, failure_category, error_message,
       primary_lei, manual_review_required, processing_started_at, processed_at,
       processing_time_ms, retry_count, created_at, updated_at`

const getByIDSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1`

const listRunnableSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE batch_id = $1 AND status = 'PENDING'
ORDER BY created_at ASC`

const listProcessingSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE status = 'PROCESSING'
ORDER BY processing_started_at ASC NULLS FIRST`

const claimSQL = `
UPDATE tasks
SET status = 'PROCESSING', processing_started_at = $2, updated_at = $2
WHERE id = $1 AND status = 'PENDING'`

const markSuccessSQL = `
UPDATE tasks
SET status = 'SUCCESS',
    company_name = $2,
    confidence_score = $3,
    extraction_method = $4,
    failure_category = $5,
    primary_lei = $6,
    manual_review_required = $7,
    processing_time_ms = $8,
    error_message = NULL,
    processed_at = $9,
    updated_at = $9
WHERE id = $1 AND status = 'PROCESSING'`

const markFailedSQL = `
UPDATE tasks
SET status = 'FAILED',
    company_name = $2,
    confidence_score = $3,
    extraction_method = $4,
    failure_category = $5,
    error_message = $6,
    processing_time_ms = $7,
    retry_count = retry_count + 1,
    processed_at = $8,
    updated_at = $8
WHERE id = $1 AND status = 'PROCESSING'`

const countByStatusSQL = `
SELECT status, count(*) AS count
FROM tasks
WHERE batch_id = $1
GROUP BY status`

const latestProgressSQL = `
SELECT max(processed_at)
FROM tasks
WHERE batch_id = $1`

const findCachedResultSQL = `
SELECT ` + taskColumns + `
FROM tasks
WHERE domain_hash = $1
  AND status = 'SUCCESS'
  AND confidence_score >= $2
ORDER BY processed_at DESC
LIMIT 1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a task by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, postgres.MapError(err, "task", id)
	}

	return t, nil
}

// ListByBatch returns tasks of a batch, newest first, optionally filtered
// by status and paginated.
func (r *Repo) ListByBatch(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select(taskColumns).
		From("tasks").
		Where(sq.Eq{"batch_id": batchID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListRunnable returns the PENDING tasks of a batch in creation order.
// Tasks left PROCESSING by a crashed run are not returned; the stuck-task
// sweep force-fails those.
func (r *Repo) ListRunnable(ctx context.Context, batchID uuid.UUID) ([]domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRunnableSQL, batchID)
	if err != nil {
		return nil, fmt.Errorf("list runnable tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListProcessing returns every PROCESSING task across all batches,
// oldest claim first. Used by the stuck-task sweep.
func (r *Repo) ListProcessing(ctx context.Context) ([]domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listProcessingSQL)
	if err != nil {
		return nil, fmt.Errorf("list processing tasks: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows)
}

// CountByStatus returns task counts of a batch grouped by status.
// Only non-zero groups are returned.
func (r *Repo) CountByStatus(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusSQL, batchID)
	if err != nil {
		return nil, fmt.Errorf("count tasks by status: %w", err)
	}
	defer rows.Close()

	var counts []domain.TaskStatusCount
	for rows.Next() {
		var sc domain.TaskStatusCount
		var status string
		if err := rows.Scan(&status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		sc.Status = domain.TaskStatus(status)
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	if counts == nil {
		counts = []domain.TaskStatusCount{}
	}

	return counts, nil
}

// LatestProgress returns the most recent processed_at of any task in the
// batch, or nil when no task has completed yet. Used by the health sweep
// to detect stalled batches.
func (r *Repo) LatestProgress(ctx context.Context, batchID uuid.UUID) (*time.Time, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var latest *time.Time
	if err := querier.QueryRow(ctx, latestProgressSQL, batchID).Scan(&latest); err != nil {
		return nil, fmt.Errorf("latest progress: %w", err)
	}

	return latest, nil
}

// FindCachedResult returns the most recent successful resolution of the
// given domain hash with confidence at or above minConfidence, across all
// batches. Returns domain.ErrNotFound when no prior success qualifies.
func (r *Repo) FindCachedResult(ctx context.Context, domainHash string, minConfidence int) (domain.Task, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, findCachedResultSQL, domainHash, minConfidence)
	t, err := scanTask(row)
	if err != nil {
		return domain.Task{}, postgres.MapError(err, "task", uuid.Nil)
	}

	return t, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBulk inserts a set of PENDING tasks in one round trip.
func (r *Repo) CreateBulk(ctx context.Context, tasks []domain.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, t := range tasks {
		batch.Queue(
			`INSERT INTO tasks (id, batch_id, domain, domain_hash, status, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.BatchID, t.Domain, t.DomainHash, string(t.Status), t.CreatedAt, t.UpdatedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := range tasks {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "task", tasks[i].ID)
		}
	}

	return nil
}

// Claim transitions a task PENDING → PROCESSING and records the claim time.
// Returns false without error when the task was not PENDING (already claimed,
// already terminal, or missing).
func (r *Repo) Claim(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, claimSQL, id, startedAt)
	if err != nil {
		return false, postgres.MapError(err, "task", id)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkSuccess transitions a task PROCESSING → SUCCESS with the resolution
// outcome. Returns false when the task was not PROCESSING.
func (r *Repo) MarkSuccess(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markSuccessSQL, id,
		res.CompanyName,
		res.ConfidenceScore,
		string(res.ExtractionMethod),
		string(res.FailureCategory),
		res.PrimaryLEI,
		res.ManualReviewRequired,
		res.ProcessingTimeMs,
		processedAt,
	)
	if err != nil {
		return false, postgres.MapError(err, "task", id)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkFailed transitions a task PROCESSING → FAILED with the failure detail
// and increments retry_count. Returns false when the task was not PROCESSING.
func (r *Repo) MarkFailed(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markFailedSQL, id,
		res.CompanyName,
		res.ConfidenceScore,
		string(res.ExtractionMethod),
		string(res.FailureCategory),
		res.ErrorMessage,
		res.ProcessingTimeMs,
		processedAt,
	)
	if err != nil {
		return false, postgres.MapError(err, "task", id)
	}

	return tag.RowsAffected() == 1, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanTask scans a single row (pgx.Row or pgx.Rows) into a domain.Task.
func scanTask(row pgx.Row) (domain.Task, error) {
	var (
		t                        domain.Task
		status, method, category string
	)

	err := row.Scan(
		&t.ID, &t.BatchID, &t.Domain, &t.DomainHash, &status, &t.CompanyName,
		&t.ConfidenceScore, &method, &category, &t.ErrorMessage,
		&t.PrimaryLEI, &t.ManualReviewRequired, &t.ProcessingStartedAt, &t.ProcessedAt,
		&t.ProcessingTimeMs, &t.RetryCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	t.Status = domain.TaskStatus(status)
	t.ExtractionMethod = domain.ExtractionMethod(method)
	t.FailureCategory = domain.FailureCategory(category)

	return t, nil
}

func scanTasks(rows pgx.Rows) ([]domain.Task, error) {
	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	if tasks == nil {
		tasks = []domain.Task{}
	}

	return tasks, nil
}
