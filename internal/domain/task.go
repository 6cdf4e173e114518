package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is one resolution attempt mapping a single domain to a legal
// entity within one batch.
type Task struct {
	ID                   uuid.UUID
	BatchID              uuid.UUID
	Domain               string
	DomainHash           string // md5 of the lowercased domain, stable across batches
	Status               TaskStatus
	CompanyName          *string
	ConfidenceScore      *int // 0..100
	ExtractionMethod     ExtractionMethod
	FailureCategory      FailureCategory
	ErrorMessage         *string
	PrimaryLEI           *string
	ManualReviewRequired bool
	ProcessingStartedAt  *time.Time
	ProcessedAt          *time.Time
	ProcessingTimeMs     int64
	RetryCount           int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsTerminal reports whether the task has reached a final state.
func (t *Task) IsTerminal() bool { return t.Status.IsTerminal() }

// Batch is a named group of tasks submitted and tracked together.
type Batch struct {
	ID              uuid.UUID
	Name            string
	TotalTasks      int
	ProcessedTasks  int
	SuccessfulTasks int
	FailedTasks     int
	Status          BatchStatus
	UploadedAt      time.Time
	CompletedAt     *time.Time
}

// Done reports whether every task in the batch is terminal.
func (b *Batch) Done() bool {
	return b.TotalTasks > 0 && b.ProcessedTasks >= b.TotalTasks
}

// TaskResult captures the outcome of one task run, ready to be written
// back as a partial-field patch.
type TaskResult struct {
	CompanyName          *string
	ConfidenceScore      *int
	ExtractionMethod     ExtractionMethod
	FailureCategory      FailureCategory
	ErrorMessage         *string
	PrimaryLEI           *string
	ManualReviewRequired bool
	ProcessingTimeMs     int64
}
