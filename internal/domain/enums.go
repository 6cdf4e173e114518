package domain

// TaskStatus represents the lifecycle state of a domain resolution task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusSuccess    TaskStatus = "SUCCESS"
	TaskStatusFailed     TaskStatus = "FAILED"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusSuccess, TaskStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the task can never transition again.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusSuccess || s == TaskStatusFailed
}

// BatchStatus represents the lifecycle state of a batch.
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "PENDING"
	BatchStatusProcessing BatchStatus = "PROCESSING"
	BatchStatusCompleted  BatchStatus = "COMPLETED"
	BatchStatusFailed     BatchStatus = "FAILED"
)

func (s BatchStatus) String() string { return string(s) }

func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusPending, BatchStatusProcessing, BatchStatusCompleted, BatchStatusFailed:
		return true
	}
	return false
}

func (s BatchStatus) IsTerminal() bool {
	return s == BatchStatusCompleted || s == BatchStatusFailed
}

// FailureCategory classifies why a task ended the way it did.
// Stored alongside the human-readable error message so callers can
// distinguish retryable transport trouble from terminal rejections.
type FailureCategory string

const (
	FailureCategoryNone         FailureCategory = "SUCCESS"
	FailureCategoryTransport    FailureCategory = "TRANSPORT_ERROR"
	FailureCategoryNoName       FailureCategory = "NO_NAME_EXTRACTED"
	FailureCategoryNoMatch      FailureCategory = "NO_CANDIDATES"
	FailureCategoryRejected     FailureCategory = "VALIDATION_REJECTED"
	FailureCategoryLowScore     FailureCategory = "LOW_CONFIDENCE"
	FailureCategoryStuck        FailureCategory = "STUCK_TIMEOUT"
	FailureCategoryOrchestrator FailureCategory = "ORCHESTRATOR_FAULT"
)

func (c FailureCategory) String() string { return string(c) }

func (c FailureCategory) IsValid() bool {
	switch c {
	case FailureCategoryNone, FailureCategoryTransport, FailureCategoryNoName,
		FailureCategoryNoMatch, FailureCategoryRejected, FailureCategoryLowScore,
		FailureCategoryStuck, FailureCategoryOrchestrator:
		return true
	}
	return false
}

// Connectivity reports whether the extractor could reach the target site.
type Connectivity string

const (
	ConnectivityOK          Connectivity = "OK"
	ConnectivityUnreachable Connectivity = "UNREACHABLE"
	ConnectivityUnknown     Connectivity = "UNKNOWN"
)

func (c Connectivity) String() string { return string(c) }

func (c Connectivity) IsValid() bool {
	switch c {
	case ConnectivityOK, ConnectivityUnreachable, ConnectivityUnknown:
		return true
	}
	return false
}

// ExtractionMethod records which heuristic produced the company name.
type ExtractionMethod string

const (
	ExtractionMethodTitle      ExtractionMethod = "title"
	ExtractionMethodMetaTag    ExtractionMethod = "meta_tag"
	ExtractionMethodStructured ExtractionMethod = "structured_data"
	ExtractionMethodCopyright  ExtractionMethod = "copyright"
	ExtractionMethodLLM        ExtractionMethod = "llm"
	ExtractionMethodCached     ExtractionMethod = "cached"
)

func (m ExtractionMethod) String() string { return string(m) }

// EntityStatus is the GLEIF entity status of a candidate.
type EntityStatus string

const (
	EntityStatusActive   EntityStatus = "ACTIVE"
	EntityStatusInactive EntityStatus = "INACTIVE"
	EntityStatusNull     EntityStatus = "NULL"
)

func (s EntityStatus) String() string { return string(s) }

// RegistrationStatus is the GLEIF registration status of a candidate's LEI.
type RegistrationStatus string

const (
	RegistrationStatusIssued    RegistrationStatus = "ISSUED"
	RegistrationStatusLapsed    RegistrationStatus = "LAPSED"
	RegistrationStatusRetired   RegistrationStatus = "RETIRED"
	RegistrationStatusMerged    RegistrationStatus = "MERGED"
	RegistrationStatusPending   RegistrationStatus = "PENDING_VALIDATION"
	RegistrationStatusCancelled RegistrationStatus = "CANCELLED"
)

func (s RegistrationStatus) String() string { return string(s) }
