// Package candidate implements the registry candidate repository using PostgreSQL.
package candidate

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/leiscope/domain-resolver/internal/adapter/postgres"
	"github.com/leiscope/domain-resolver/internal/domain"
)

// Repo provides candidate persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new candidate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const candidateColumns = `id, task_id, lei, legal_name, jurisdiction, entity_status,
       registration_status, legal_form, city, country, name_match_score,
       jurisdiction_score, entity_type_score, status_score, validation_score,
       weighted_score, rank_position, is_primary_selection, created_at`

const listByTaskSQL = `
SELECT ` + candidateColumns + `
FROM candidates
WHERE task_id = $1
ORDER BY rank_position ASC`

const insertSQL = `
INSERT INTO candidates (id, task_id, lei, legal_name, jurisdiction, entity_status,
                        registration_status, legal_form, city, country, name_match_score,
                        jurisdiction_score, entity_type_score, status_score, validation_score,
                        weighted_score, rank_position, is_primary_selection, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

const jurisdictionDistributionSQL = `
SELECT c.jurisdiction, count(*) AS count
FROM candidates c
JOIN tasks t ON c.task_id = t.id
WHERE t.batch_id = $1 AND c.is_primary_selection
GROUP BY c.jurisdiction
ORDER BY count DESC, c.jurisdiction ASC`

// ReplaceForTask removes any previously stored candidates of the task and
// inserts the given ranked set in one round trip. Call inside a transaction
// together with the task result write.
func (r *Repo) ReplaceForTask(ctx context.Context, taskID uuid.UUID, candidates []domain.Candidate) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM candidates WHERE task_id = $1`, taskID)
	for _, c := range candidates {
		batch.Queue(insertSQL,
			c.ID, taskID, c.LEI, c.LegalName, c.Jurisdiction, string(c.EntityStatus),
			string(c.RegistrationStatus), c.LegalForm, c.City, c.Country, c.NameMatchScore,
			c.JurisdictionScore, c.EntityTypeScore, c.StatusScore, c.ValidationScore,
			c.WeightedScore, c.RankPosition, c.IsPrimarySelection, c.CreatedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "candidate", taskID)
		}
	}

	return nil
}

// ListByTask returns the stored candidates of a task in rank order.
func (r *Repo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByTaskSQL, taskID)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	if candidates == nil {
		candidates = []domain.Candidate{}
	}

	return candidates, nil
}

// JurisdictionDistribution returns how the primary selections of a batch
// distribute over jurisdictions, most common first.
func (r *Repo) JurisdictionDistribution(ctx context.Context, batchID uuid.UUID) ([]domain.JurisdictionCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, jurisdictionDistributionSQL, batchID)
	if err != nil {
		return nil, fmt.Errorf("jurisdiction distribution: %w", err)
	}
	defer rows.Close()

	var counts []domain.JurisdictionCount
	for rows.Next() {
		var jc domain.JurisdictionCount
		if err := rows.Scan(&jc.Jurisdiction, &jc.Count); err != nil {
			return nil, fmt.Errorf("scan jurisdiction count: %w", err)
		}
		counts = append(counts, jc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate jurisdiction counts: %w", err)
	}

	if counts == nil {
		counts = []domain.JurisdictionCount{}
	}

	return counts, nil
}

func scanCandidate(row pgx.Row) (domain.Candidate, error) {
	var (
		c                       domain.Candidate
		entityStatus, regStatus string
	)

	err := row.Scan(
		&c.ID, &c.TaskID, &c.LEI, &c.LegalName, &c.Jurisdiction, &entityStatus,
		&regStatus, &c.LegalForm, &c.City, &c.Country, &c.NameMatchScore,
		&c.JurisdictionScore, &c.EntityTypeScore, &c.StatusScore, &c.ValidationScore,
		&c.WeightedScore, &c.RankPosition, &c.IsPrimarySelection, &c.CreatedAt,
	)
	if err != nil {
		return domain.Candidate{}, err
	}

	c.EntityStatus = domain.EntityStatus(entityStatus)
	c.RegistrationStatus = domain.RegistrationStatus(regStatus)

	return c, nil
}
