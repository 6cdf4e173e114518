// Package rest exposes the batch API over HTTP.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/leiscope/domain-resolver/internal/domain"
	"github.com/leiscope/domain-resolver/internal/service/orchestrator"
)

// batchOrchestrator defines the slice of the orchestrator the REST
// layer consumes.
type batchOrchestrator interface {
	Submit(ctx context.Context, in orchestrator.SubmitInput) (domain.Batch, error)
	Run(ctx context.Context, batchID uuid.UUID) error
	Status(ctx context.Context, batchID uuid.UUID) (domain.Batch, error)
	Results(ctx context.Context, batchID uuid.UUID, filter domain.TaskFilter) ([]domain.Task, error)
	BatchSummary(ctx context.Context, batchID uuid.UUID) (orchestrator.Summary, error)
	TaskCandidates(ctx context.Context, taskID uuid.UUID) ([]domain.Candidate, error)
}

// BatchHandler serves the batch endpoints.
type BatchHandler struct {
	svc batchOrchestrator
	log *slog.Logger
}

func NewBatchHandler(log *slog.Logger, svc batchOrchestrator) *BatchHandler {
	return &BatchHandler{svc: svc, log: log.With("handler", "batches")}
}

type submitRequest struct {
	Name    string   `json:"name"`
	Domains []string `json:"domains"`
}

type batchResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Status          string     `json:"status"`
	TotalTasks      int        `json:"total_tasks"`
	ProcessedTasks  int        `json:"processed_tasks"`
	SuccessfulTasks int        `json:"successful_tasks"`
	FailedTasks     int        `json:"failed_tasks"`
	UploadedAt      time.Time  `json:"uploaded_at"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}

type taskResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Domain               string     `json:"domain"`
	Status               string     `json:"status"`
	CompanyName          *string    `json:"company_name,omitempty"`
	ConfidenceScore      *int       `json:"confidence_score,omitempty"`
	ExtractionMethod     string     `json:"extraction_method,omitempty"`
	FailureCategory      string     `json:"failure_category,omitempty"`
	ErrorMessage         *string    `json:"error_message,omitempty"`
	PrimaryLEI           *string    `json:"primary_lei,omitempty"`
	ManualReviewRequired bool       `json:"manual_review_required"`
	ProcessedAt          *time.Time `json:"processed_at,omitempty"`
	ProcessingTimeMs     int64      `json:"processing_time_ms"`
}

type candidateResponse struct {
	LEI                string `json:"lei"`
	LegalName          string `json:"legal_name"`
	Jurisdiction       string `json:"jurisdiction,omitempty"`
	EntityStatus       string `json:"entity_status,omitempty"`
	RegistrationStatus string `json:"registration_status,omitempty"`
	LegalForm          string `json:"legal_form,omitempty"`
	City               string `json:"city,omitempty"`
	Country            string `json:"country,omitempty"`
	WeightedScore      int    `json:"weighted_score"`
	ValidationScore    int    `json:"validation_score"`
	RankPosition       int    `json:"rank_position"`
	IsPrimarySelection bool   `json:"is_primary_selection"`
}

type summaryResponse struct {
	Batch        batchResponse  `json:"batch"`
	StatusCounts map[string]int `json:"status_counts"`
	Confidence   struct {
		High   int `json:"high"`
		Medium int `json:"medium"`
		Low    int `json:"low"`
	} `json:"confidence"`
	ManualReview  int            `json:"manual_review"`
	Jurisdictions map[string]int `json:"jurisdictions"`
}

// Submit handles POST /api/v1/batches. The batch is persisted and its
// run is started in the background; the response returns immediately
// with the PENDING batch.
func (h *BatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(r.Context(), w, h.log, domain.NewValidationError("body", "invalid JSON"))
		return
	}

	batch, err := h.svc.Submit(r.Context(), orchestrator.SubmitInput{
		Name:    req.Name,
		Domains: req.Domains,
	})
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	// The run outlives the request.
	runCtx := context.WithoutCancel(r.Context())
	go func() {
		if err := h.svc.Run(runCtx, batch.ID); err != nil && !errors.Is(err, domain.ErrAlreadyRunning) {
			h.log.ErrorContext(runCtx, "background batch run failed",
				slog.String("batch_id", batch.ID.String()),
				slog.String("error", err.Error()))
		}
	}()

	writeJSON(w, http.StatusCreated, toBatchResponse(batch))
}

// Get handles GET /api/v1/batches/{id}.
func (h *BatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, h.log, domain.NewValidationError("id", "must be a valid UUID"))
		return
	}

	batch, err := h.svc.Status(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toBatchResponse(batch))
}

// Tasks handles GET /api/v1/batches/{id}/tasks with optional status,
// limit, and offset query parameters.
func (h *BatchHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, h.log, domain.NewValidationError("id", "must be a valid UUID"))
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	tasks, err := h.svc.Results(r.Context(), id, filter)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// Summary handles GET /api/v1/batches/{id}/summary.
func (h *BatchHandler) Summary(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, h.log, domain.NewValidationError("id", "must be a valid UUID"))
		return
	}

	sum, err := h.svc.BatchSummary(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	resp := summaryResponse{
		Batch:         toBatchResponse(sum.Batch),
		StatusCounts:  make(map[string]int, len(sum.StatusCounts)),
		ManualReview:  sum.ManualReview,
		Jurisdictions: make(map[string]int, len(sum.Jurisdictions)),
	}
	resp.Confidence.High = sum.Confidence.High
	resp.Confidence.Medium = sum.Confidence.Medium
	resp.Confidence.Low = sum.Confidence.Low
	for _, c := range sum.StatusCounts {
		resp.StatusCounts[c.Status.String()] = c.Count
	}
	for _, j := range sum.Jurisdictions {
		resp.Jurisdictions[j.Jurisdiction] = j.Count
	}

	writeJSON(w, http.StatusOK, resp)
}

// Candidates handles GET /api/v1/tasks/{id}/candidates.
func (h *BatchHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(r.Context(), w, h.log, domain.NewValidationError("id", "must be a valid UUID"))
		return
	}

	candidates, err := h.svc.TaskCandidates(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.log, err)
		return
	}

	out := make([]candidateResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, candidateResponse{
			LEI:                c.LEI,
			LegalName:          c.LegalName,
			Jurisdiction:       c.Jurisdiction,
			EntityStatus:       string(c.EntityStatus),
			RegistrationStatus: string(c.RegistrationStatus),
			LegalForm:          c.LegalForm,
			City:               c.City,
			Country:            c.Country,
			WeightedScore:      c.WeightedScore,
			ValidationScore:    c.ValidationScore,
			RankPosition:       c.RankPosition,
			IsPrimarySelection: c.IsPrimarySelection,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func taskFilterFromQuery(r *http.Request) (domain.TaskFilter, error) {
	var filter domain.TaskFilter

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.IsValid() {
			return filter, domain.NewValidationError("status", "unknown task status")
		}
		filter.Status = &status
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, domain.NewValidationError("limit", "must be a non-negative integer")
		}
		filter.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, domain.NewValidationError("offset", "must be a non-negative integer")
		}
		filter.Offset = offset
	}

	return filter, nil
}

func toBatchResponse(b domain.Batch) batchResponse {
	return batchResponse{
		ID:              b.ID,
		Name:            b.Name,
		Status:          b.Status.String(),
		TotalTasks:      b.TotalTasks,
		ProcessedTasks:  b.ProcessedTasks,
		SuccessfulTasks: b.SuccessfulTasks,
		FailedTasks:     b.FailedTasks,
		UploadedAt:      b.UploadedAt,
		CompletedAt:     b.CompletedAt,
	}
}

func toTaskResponse(t domain.Task) taskResponse {
	resp := taskResponse{
		ID:                   t.ID,
		Domain:               t.Domain,
		Status:               t.Status.String(),
		CompanyName:          t.CompanyName,
		ConfidenceScore:      t.ConfidenceScore,
		ExtractionMethod:     string(t.ExtractionMethod),
		ErrorMessage:         t.ErrorMessage,
		PrimaryLEI:           t.PrimaryLEI,
		ManualReviewRequired: t.ManualReviewRequired,
		ProcessedAt:          t.ProcessedAt,
		ProcessingTimeMs:     t.ProcessingTimeMs,
	}
	if t.FailureCategory != domain.FailureCategoryNone {
		resp.FailureCategory = string(t.FailureCategory)
	}
	return resp
}
