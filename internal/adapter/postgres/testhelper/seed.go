package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leiscope/domain-resolver/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBatch creates a batch with the given number of total tasks and status PENDING.
// Returns the filled domain.Batch.
func SeedBatch(t *testing.T, pool *pgxpool.Pool, totalTasks int) domain.Batch {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	batch := domain.Batch{
		ID:         uuid.New(),
		Name:       "test-batch-" + uniqueSuffix(),
		TotalTasks: totalTasks,
		Status:     domain.BatchStatusPending,
		UploadedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO batches (id, name, total_tasks, status, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		batch.ID, batch.Name, batch.TotalTasks, string(batch.Status), batch.UploadedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBatch insert: %v", err)
	}

	return batch
}

// SeedTask creates a PENDING task for the given batch and domain name.
// Returns the filled domain.Task.
func SeedTask(t *testing.T, pool *pgxpool.Pool, batchID uuid.UUID, domainName string) domain.Task {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	task := domain.Task{
		ID:         uuid.New(),
		BatchID:    batchID,
		Domain:     domainName,
		DomainHash: domain.DomainHash(domainName),
		Status:     domain.TaskStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tasks (id, batch_id, domain, domain_hash, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.BatchID, task.Domain, task.DomainHash, string(task.Status), task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask insert: %v", err)
	}

	return task
}

// SeedSuccessfulTask creates a SUCCESS task with a resolved company name,
// confidence score, and LEI. Used for cached-result lookup tests.
func SeedSuccessfulTask(t *testing.T, pool *pgxpool.Pool, batchID uuid.UUID, domainName, companyName string, confidence int) domain.Task {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	lei := "5493001KJTIIGC8Y1R12"
	task := domain.Task{
		ID:               uuid.New(),
		BatchID:          batchID,
		Domain:           domainName,
		DomainHash:       domain.DomainHash(domainName),
		Status:           domain.TaskStatusSuccess,
		CompanyName:      &companyName,
		ConfidenceScore:  &confidence,
		ExtractionMethod: domain.ExtractionMethodTitle,
		FailureCategory:  domain.FailureCategoryNone,
		PrimaryLEI:       &lei,
		ProcessedAt:      &now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tasks (id, batch_id, domain, domain_hash, status, company_name,
		                    confidence_score, extraction_method, failure_category,
		                    primary_lei, processed_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		task.ID, task.BatchID, task.Domain, task.DomainHash, string(task.Status),
		task.CompanyName, task.ConfidenceScore, string(task.ExtractionMethod),
		string(task.FailureCategory), task.PrimaryLEI, task.ProcessedAt,
		task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSuccessfulTask insert: %v", err)
	}

	return task
}

// SeedCandidate creates a candidate row for the given task.
func SeedCandidate(t *testing.T, pool *pgxpool.Pool, taskID uuid.UUID, legalName string, primary bool) domain.Candidate {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	c := domain.Candidate{
		ID:                 uuid.New(),
		TaskID:             taskID,
		LEI:                "529900T8BM49AURSDO55",
		LegalName:          legalName,
		Jurisdiction:       "US",
		EntityStatus:       domain.EntityStatusActive,
		RegistrationStatus: domain.RegistrationStatusIssued,
		City:               "New York",
		Country:            "US",
		WeightedScore:      80,
		RankPosition:       1,
		IsPrimarySelection: primary,
		CreatedAt:          now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO candidates (id, task_id, lei, legal_name, jurisdiction, entity_status,
		                         registration_status, city, country, weighted_score,
		                         rank_position, is_primary_selection, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		c.ID, c.TaskID, c.LEI, c.LegalName, c.Jurisdiction, string(c.EntityStatus),
		string(c.RegistrationStatus), c.City, c.Country, c.WeightedScore,
		c.RankPosition, c.IsPrimarySelection, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCandidate insert: %v", err)
	}

	return c
}
