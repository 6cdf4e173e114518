// Package resolution implements the per-task pipeline that maps one
// domain name to a legal entity: claim, extract, registry lookup,
// validation, scoring, selection, persistence.
package resolution

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/service/scoring"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type taskRepo interface {
	Claim(ctx context.Context, id uuid.UUID, startedAt time.Time) (bool, error)
	MarkSuccess(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID, res domain.TaskResult, processedAt time.Time) (bool, error)
	FindCachedResult(ctx context.Context, domainHash string, minConfidence int) (domain.Task, error)
}

type candidateRepo interface {
	ReplaceForTask(ctx context.Context, taskID uuid.UUID, candidates []domain.Candidate) error
}

type extractor interface {
	Extract(ctx context.Context, domainName string) (domain.Extraction, error)
}

type registry interface {
	Search(ctx context.Context, companyName, jurisdictionHint string) ([]domain.Candidate, error)
}

type resultCache interface {
	Get(ctx context.Context, domainHash string) *rediscache.Entry
	Set(ctx context.Context, domainHash string, e rediscache.Entry)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds the pipeline thresholds.
type Config struct {
	// SuccessThreshold is the minimum match confidence for a task to
	// finish as SUCCESS.
	SuccessThreshold int
	// CacheThreshold is the minimum confidence a prior result needs
	// before it may be copied to a new task for the same domain.
	CacheThreshold int
	// TaskTimeout bounds one end-to-end resolution.
	TaskTimeout time.Duration
}

// Service resolves single tasks. Safe for concurrent use; the
// orchestrator runs many Process calls in parallel.
type Service struct {
	tasks      taskRepo
	candidates candidateRepo
	extractor  extractor
	registry   registry
	cache      resultCache
	tx         txManager
	scorer     *scoring.Scorer
	validator  *scoring.Validator
	selector   *scoring.Selector
	log        *slog.Logger
	cfg        Config
}

// NewService creates a resolution service. cache may be a nil
// *rediscache.Cache: the cached-copy path then falls through to the
// database lookup only.
func NewService(
	log *slog.Logger,
	tasks taskRepo,
	candidates candidateRepo,
	extractor extractor,
	registry registry,
	cache resultCache,
	tx txManager,
	cfg Config,
	weights scoring.Weights,
) *Service {
	return &Service{
		tasks:      tasks,
		candidates: candidates,
		extractor:  extractor,
		registry:   registry,
		cache:      cache,
		tx:         tx,
		scorer:     scoring.NewScorer(weights),
		validator:  scoring.NewValidator(),
		selector:   scoring.NewSelector(),
		log:        log.With("service", "resolution"),
		cfg:        cfg,
	}
}
