package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during evaluation operations.
var (
	// ErrMalformedInput indicates that a role spec or candidate doc
	// failed required-field validation. This error is fatal for the
	// evaluation; no partial result is produced.
	ErrMalformedInput = errors.New("malformed input")

	// ErrServiceUnavailable indicates that an optional backing service
	// (embedding, reasoning) is unreachable or timed out. It is always
	// recovered locally via a fallback path and never surfaces to the
	// caller of Evaluate.
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrMalformedServiceResponse indicates that a backing service
	// responded but the response failed schema validation. Callers treat
	// it identically to ErrServiceUnavailable for the failing call.
	ErrMalformedServiceResponse = errors.New("malformed service response")

	// ErrInvalidConfiguration indicates that engine configuration is
	// invalid or incomplete. It is fatal at configuration-load time,
	// never raised per evaluation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures and unwraps to
// ErrMalformedInput so callers can classify it with errors.Is.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap classifies every validation failure as malformed input.
func (e *ValidationError) Unwrap() error { return ErrMalformedInput }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}

func sprintfTokenError(field string, idx int) string {
	return fmt.Sprintf("%s[%d] must not be blank", field, idx)
}
