package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// SubmitInput carries a new batch request.
type SubmitInput struct {
	Name    string
	Domains []string
}

// Submit validates, normalizes, and persists a new batch with one
// PENDING task per distinct domain. Duplicate and empty entries are
// dropped; a batch with nothing left to do is a validation error.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (domain.Batch, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Batch{}, domain.NewValidationError("name", "must not be empty")
	}
	if len(in.Domains) == 0 {
		return domain.Batch{}, domain.NewValidationError("domains", "must not be empty")
	}

	batch := domain.Batch{
		ID:         uuid.New(),
		Name:       name,
		Status:     domain.BatchStatusPending,
		UploadedAt: time.Now(),
	}

	seen := make(map[string]struct{}, len(in.Domains))
	tasks := make([]domain.Task, 0, len(in.Domains))
	for _, raw := range in.Domains {
		normalized := domain.NormalizeDomain(raw)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		tasks = append(tasks, domain.Task{
			ID:         uuid.New(),
			BatchID:    batch.ID,
			Domain:     normalized,
			DomainHash: domain.DomainHash(normalized),
			Status:     domain.TaskStatusPending,
		})
	}
	if len(tasks) == 0 {
		return domain.Batch{}, domain.NewValidationError("domains", "no valid domains after normalization")
	}
	batch.TotalTasks = len(tasks)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.batches.Create(ctx, batch); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		if err := s.tasks.CreateBulk(ctx, tasks); err != nil {
			return fmt.Errorf("create tasks: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Batch{}, err
	}

	s.log.InfoContext(ctx, "batch submitted",
		slog.String("batch_id", batch.ID.String()),
		slog.String("name", batch.Name),
		slog.Int("tasks", batch.TotalTasks))

	return batch, nil
}
