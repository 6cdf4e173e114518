// Package orchestrator implements batch lifecycle management: batch
// submission, the bounded-concurrency resolution run, and batch-level
// reporting.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/service/resolution"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type batchRepo interface {
	Create(ctx context.Context, b domain.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Batch, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error)
	AddProgress(ctx context.Context, id uuid.UUID, processed, successes, failures int) error
	MarkCompleted(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type taskRepo interface {
	CreateBulk(ctx context.Context, tasks []domain.Task) error
	ListRunnable(ctx context.Context, batchID uuid.UUID) ([]domain.Task, error)
	ListByBatch(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)
	CountByStatus(ctx context.Context, batchID uuid.UUID) ([]domain.TaskStatusCount, error)
}

type candidateRepo interface {
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error)
	JurisdictionDistribution(ctx context.Context, batchID uuid.UUID) ([]domain.JurisdictionCount, error)
}

type resolver interface {
	Process(ctx context.Context, task domain.Task) (resolution.Outcome, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service orchestrates batches. One Service instance guards against
// concurrent runs of the same batch within this process.
type Service struct {
	batches    batchRepo
	tasks      taskRepo
	candidates candidateRepo
	resolver   resolver
	tx         txManager
	log        *slog.Logger

	concurrency int

	mu      sync.Mutex
	running map[uuid.UUID]struct{}
}

// NewService creates an orchestrator. concurrency is the chunk size and
// the parallelism bound of a run.
func NewService(
	log *slog.Logger,
	batches batchRepo,
	tasks taskRepo,
	candidates candidateRepo,
	resolver resolver,
	tx txManager,
	concurrency int,
) *Service {
	return &Service{
		batches:     batches,
		tasks:       tasks,
		candidates:  candidates,
		resolver:    resolver,
		tx:          tx,
		log:         log.With("service", "orchestrator"),
		concurrency: concurrency,
		running:     make(map[uuid.UUID]struct{}),
	}
}

// tryAcquire marks a batch as running in this process. Returns false
// when a run is already in flight.
func (s *Service) tryAcquire(batchID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.running[batchID]; ok {
		return false
	}
	s.running[batchID] = struct{}{}
	return true
}

func (s *Service) release(batchID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.running, batchID)
}
