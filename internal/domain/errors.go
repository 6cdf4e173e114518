package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")

	// ErrAlreadyRunning is returned when a second orchestrator run is
	// attempted while one is in progress for this process instance.
	ErrAlreadyRunning = errors.New("batch run already in progress")

	// ErrNoCandidates means the registry returned zero results for the
	// extracted name. Distinct from ErrNoValidCandidates below.
	ErrNoCandidates = errors.New("no registry candidates found")

	// ErrNoValidCandidates means candidates existed but every one was
	// filtered out as a probable false positive. Never folded into
	// ErrNoCandidates: callers report the two differently.
	ErrNoValidCandidates = errors.New("no valid candidates after filtering")

	// ErrLowConfidence means a name resolved but scored below the
	// configured success threshold.
	ErrLowConfidence = errors.New("confidence below success threshold")
)

// TransportError wraps a network-level failure from an external
// collaborator so it stays distinguishable from business rejections.
type TransportError struct {
	Collaborator string // "gleif", "extractor"
	Err          error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Collaborator, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err is (or wraps) a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}
