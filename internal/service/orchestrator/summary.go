package orchestrator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// ConfidenceBuckets groups successful resolutions by match confidence.
type ConfidenceBuckets struct {
	High   int // >= 85
	Medium int // 60..84
	Low    int // 30..59
}

// Summary is the batch-level report.
type Summary struct {
	Batch         domain.Batch
	StatusCounts  []domain.TaskStatusCount
	Confidence    ConfidenceBuckets
	ManualReview  int
	Jurisdictions []domain.JurisdictionCount
}

// Status returns the batch with its progress counters.
func (s *Service) Status(ctx context.Context, batchID uuid.UUID) (domain.Batch, error) {
	return s.batches.GetByID(ctx, batchID)
}

// Results lists a batch's tasks, newest first. The batch is fetched
// first so an unknown ID is ErrNotFound, not an empty list.
func (s *Service) Results(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error) {
	if _, err := s.batches.GetByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.tasks.ListByBatch(ctx, batchID, filter)
}

// TaskCandidates lists the ranked registry candidates stored for a
// task, primary first.
func (s *Service) TaskCandidates(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error) {
	return s.candidates.ListByTask(ctx, taskID)
}

// BatchSummary aggregates a finished or running batch: status counts,
// confidence distribution of the successes, how many selections need a
// human, and where the selected entities are registered.
func (s *Service) BatchSummary(ctx context.Context, batchID uuid.UUID) (Summary, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return Summary{}, err
	}

	counts, err := s.tasks.CountByStatus(ctx, batchID)
	if err != nil {
		return Summary{}, fmt.Errorf("count tasks: %w", err)
	}

	tasks, err := s.tasks.ListByBatch(ctx, batchID, domain.TaskFilter{})
	if err != nil {
		return Summary{}, fmt.Errorf("list tasks: %w", err)
	}

	out := Summary{
		Batch:        batch,
		StatusCounts: counts,
	}
	for _, t := range tasks {
		if t.ManualReviewRequired {
			out.ManualReview++
		}
		if t.Status != domain.TaskStatusSuccess || t.ConfidenceScore == nil {
			continue
		}
		switch c := *t.ConfidenceScore; {
		case c >= 85:
			out.Confidence.High++
		case c >= 60:
			out.Confidence.Medium++
		default:
			out.Confidence.Low++
		}
	}

	jurisdictions, err := s.candidates.JurisdictionDistribution(ctx, batchID)
	if err != nil {
		return Summary{}, fmt.Errorf("jurisdiction distribution: %w", err)
	}
	out.Jurisdictions = jurisdictions

	return out, nil
}
