package resolution

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/leiscope/domain-resolver/internal/adapter/rediscache"
	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/metrics"
	"github.com/leiscope/domain-resolver/internal/service/scoring"
)

// Outcome is the result of processing one task.
type Outcome struct {
	// Claimed is false when the task was no longer PENDING, so nothing
	// was done. Unclaimed outcomes do not count toward batch progress.
	Claimed bool
	// Success reports whether the task ended as SUCCESS.
	Success bool
	// Category classifies the outcome; FailureCategoryNone on success.
	Category domain.FailureCategory
}

// Process runs the full resolution pipeline for one task and persists a
// terminal state. Business failures (no name, no match, rejected,
// low confidence) are recorded on the task and returned as a non-error
// Outcome; the error return is reserved for infrastructure faults where
// no terminal state could be persisted.
func (s *Service) Process(ctx context.Context, task domain.Task) (Outcome, error) {
	startedAt := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.TaskTimeout)
	defer cancel()

	claimed, err := s.tasks.Claim(ctx, task.ID, startedAt)
	if err != nil {
		return Outcome{}, fmt.Errorf("claim task %s: %w", task.ID, err)
	}
	if !claimed {
		s.log.DebugContext(ctx, "task not claimable, skipping",
			slog.String("task_id", task.ID.String()),
			slog.String("domain", task.Domain))
		return Outcome{}, nil
	}

	metrics.TasksInFlight.Inc()
	defer metrics.TasksInFlight.Dec()

	res, ranked := s.resolve(ctx, task)
	res.ProcessingTimeMs = time.Since(startedAt).Milliseconds()
	processedAt := time.Now()

	metrics.TaskDuration.Observe(time.Since(startedAt).Seconds())

	if res.FailureCategory == domain.FailureCategoryNone {
		if err := s.persistSuccess(ctx, task, res, ranked, processedAt); err != nil {
			return Outcome{Claimed: true}, err
		}
		s.writeCache(ctx, task, res)
		metrics.TasksProcessed.WithLabelValues(res.FailureCategory.String()).Inc()
		s.log.InfoContext(ctx, "task resolved",
			slog.String("task_id", task.ID.String()),
			slog.String("domain", task.Domain),
			slog.Int("confidence", derefInt(res.ConfidenceScore)),
			slog.Bool("manual_review", res.ManualReviewRequired))
		return Outcome{Claimed: true, Success: true, Category: res.FailureCategory}, nil
	}

	if err := s.persistFailure(ctx, task, res, ranked, processedAt); err != nil {
		return Outcome{Claimed: true}, err
	}
	metrics.TasksProcessed.WithLabelValues(res.FailureCategory.String()).Inc()
	s.log.InfoContext(ctx, "task failed",
		slog.String("task_id", task.ID.String()),
		slog.String("domain", task.Domain),
		slog.String("category", res.FailureCategory.String()),
		slog.String("error", derefStr(res.ErrorMessage)))
	return Outcome{Claimed: true, Success: false, Category: res.FailureCategory}, nil
}

// resolve computes the task's terminal result without touching storage,
// apart from the cached-result lookup. The returned candidate slice is
// non-empty only when scored candidates should be persisted.
func (s *Service) resolve(ctx context.Context, task domain.Task) (domain.TaskResult, []domain.Candidate) {
	if res, ok := s.fromCache(ctx, task); ok {
		return res, nil
	}

	extraction, err := s.extractor.Extract(ctx, task.Domain)
	if err != nil {
		return failure(domain.FailureCategoryTransport, err.Error()), nil
	}
	if !extraction.Succeeded(s.cfg.SuccessThreshold) {
		return failureFromExtraction(extraction), nil
	}

	candidates, err := s.registry.Search(ctx, extraction.CompanyName, scoring.JurisdictionHint(task.Domain))
	if err != nil {
		return failure(domain.FailureCategoryTransport, err.Error()), nil
	}
	metrics.RegistryCandidates.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return failure(domain.FailureCategoryNoMatch,
			fmt.Sprintf("no registry candidates for %q", extraction.CompanyName)), nil
	}

	valid, err := s.validator.ValidateAndRank(candidates, task.Domain, extraction.CompanyName)
	if err != nil {
		return failure(domain.FailureCategoryRejected,
			fmt.Sprintf("all %d candidates rejected as probable false positives", len(candidates))), nil
	}

	for i := range valid {
		s.scorer.Score(valid[i], extraction.CompanyName, task.Domain).Apply(&valid[i])
	}

	selection, err := s.selector.Select(valid)
	if err != nil {
		return failure(domain.FailureCategoryRejected, err.Error()), nil
	}

	confidence := selection.Primary.EffectiveScore()
	if confidence < s.cfg.SuccessThreshold {
		res := failure(domain.FailureCategoryLowScore,
			fmt.Sprintf("best candidate %q scored %d, below threshold %d",
				selection.Primary.LegalName, confidence, s.cfg.SuccessThreshold))
		res.CompanyName = &extraction.CompanyName
		res.ManualReviewRequired = true
		return res, selection.Ranked
	}

	return domain.TaskResult{
		CompanyName:          &extraction.CompanyName,
		ConfidenceScore:      &confidence,
		ExtractionMethod:     extraction.Method,
		FailureCategory:      domain.FailureCategoryNone,
		PrimaryLEI:           &selection.Primary.LEI,
		ManualReviewRequired: selection.ManualReviewRequired,
	}, selection.Ranked
}

// fromCache tries to copy a prior high-confidence result for the same
// domain. The copy is only taken when the cached name still looks like
// a registered company; anything else falls through to a fresh run.
func (s *Service) fromCache(ctx context.Context, task domain.Task) (domain.TaskResult, bool) {
	if entry := s.cache.Get(ctx, task.DomainHash); entry != nil {
		if entry.ConfidenceScore >= s.cfg.CacheThreshold && domain.HasCorporateSuffix(entry.CompanyName) {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cachedResult(entry.CompanyName, entry.ConfidenceScore, entry.PrimaryLEI), true
		}
	}

	prior, err := s.tasks.FindCachedResult(ctx, task.DomainHash, s.cfg.CacheThreshold)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "cached result lookup failed",
				slog.String("domain", task.Domain), slog.String("error", err.Error()))
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.TaskResult{}, false
	}
	if prior.CompanyName == nil || !domain.HasCorporateSuffix(*prior.CompanyName) {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return domain.TaskResult{}, false
	}

	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return cachedResult(*prior.CompanyName, derefInt(prior.ConfidenceScore), derefStr(prior.PrimaryLEI)), true
}

// persistSuccess stores the ranked candidates and the terminal SUCCESS
// state atomically.
func (s *Service) persistSuccess(ctx context.Context, task domain.Task, res domain.TaskResult, ranked []domain.Candidate, processedAt time.Time) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if len(ranked) > 0 {
			if err := s.candidates.ReplaceForTask(ctx, task.ID, ranked); err != nil {
				return fmt.Errorf("store candidates for task %s: %w", task.ID, err)
			}
		}
		ok, err := s.tasks.MarkSuccess(ctx, task.ID, res, processedAt)
		if err != nil {
			return fmt.Errorf("mark task %s success: %w", task.ID, err)
		}
		if !ok {
			// Force-failed by the stuck sweep while we were finishing.
			return fmt.Errorf("task %s left PROCESSING before completion: %w", task.ID, domain.ErrValidation)
		}
		return nil
	})
}

// persistFailure stores the terminal FAILED state, keeping any scored
// candidates for manual review.
func (s *Service) persistFailure(ctx context.Context, task domain.Task, res domain.TaskResult, ranked []domain.Candidate, processedAt time.Time) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if len(ranked) > 0 {
			if err := s.candidates.ReplaceForTask(ctx, task.ID, ranked); err != nil {
				return fmt.Errorf("store candidates for task %s: %w", task.ID, err)
			}
		}
		ok, err := s.tasks.MarkFailed(ctx, task.ID, res, processedAt)
		if err != nil {
			return fmt.Errorf("mark task %s failed: %w", task.ID, err)
		}
		if !ok {
			return fmt.Errorf("task %s left PROCESSING before completion: %w", task.ID, domain.ErrValidation)
		}
		return nil
	})
}

// writeCache records a success for future cached copies. Only results
// above the cache threshold with a corporate-looking name qualify.
func (s *Service) writeCache(ctx context.Context, task domain.Task, res domain.TaskResult) {
	if res.CompanyName == nil || res.ConfidenceScore == nil {
		return
	}
	if *res.ConfidenceScore < s.cfg.CacheThreshold || !domain.HasCorporateSuffix(*res.CompanyName) {
		return
	}
	s.cache.Set(ctx, task.DomainHash, rediscache.Entry{
		CompanyName:      *res.CompanyName,
		ConfidenceScore:  *res.ConfidenceScore,
		PrimaryLEI:       derefStr(res.PrimaryLEI),
		ExtractionMethod: res.ExtractionMethod.String(),
	})
}

func cachedResult(name string, confidence int, lei string) domain.TaskResult {
	res := domain.TaskResult{
		CompanyName:      &name,
		ConfidenceScore:  &confidence,
		ExtractionMethod: domain.ExtractionMethodCached,
		FailureCategory:  domain.FailureCategoryNone,
	}
	if lei != "" {
		res.PrimaryLEI = &lei
	}
	return res
}

// failureFromExtraction classifies an unsuccessful extraction. The
// extractor's own classification wins when it provides one.
func failureFromExtraction(e domain.Extraction) domain.TaskResult {
	msg := e.ErrorMessage
	category := e.FailureCategory
	switch {
	case category != domain.FailureCategoryNone:
		if msg == "" {
			msg = "extraction failed"
		}
	case e.CompanyName == "":
		category = domain.FailureCategoryNoName
		if msg == "" {
			msg = "no company name extracted"
		}
	case e.Connectivity == domain.ConnectivityUnreachable:
		category = domain.FailureCategoryTransport
		if msg == "" {
			msg = "site unreachable"
		}
	default:
		// Name present and site reachable: only the extractor's own
		// confidence can have vetoed it.
		category = domain.FailureCategoryLowScore
		if msg == "" {
			msg = fmt.Sprintf("extraction confidence %d too low", e.Confidence)
		}
	}
	res := failure(category, msg)
	if e.CompanyName != "" {
		res.CompanyName = &e.CompanyName
	}
	return res
}

func failure(category domain.FailureCategory, msg string) domain.TaskResult {
	return domain.TaskResult{
		FailureCategory: category,
		ErrorMessage:    &msg,
	}
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
