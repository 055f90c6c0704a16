package ports

import (
	"errors"
	"fmt"
	"time"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// Common infrastructure errors that can occur during external service
// interactions. Each sentinel wraps the domain error kind it belongs
// to, so callers can classify any service failure with errors.Is
// against either layer: the transport-level sentinels here, or the
// coarse domain kinds.
var (
	// ErrTokenLimitExceeded indicates that the LLM token limit has been
	// exceeded.
	ErrTokenLimitExceeded = fmt.Errorf("token limit exceeded: %w", domain.ErrServiceUnavailable)

	// ErrRateLimited indicates that the service has rate limited the request.
	ErrRateLimited = fmt.Errorf("rate limited: %w", domain.ErrServiceUnavailable)

	// ErrServiceUnavailable indicates that the external service is unavailable.
	ErrServiceUnavailable = fmt.Errorf("%w", domain.ErrServiceUnavailable)

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = fmt.Errorf("operation timed out: %w", domain.ErrServiceUnavailable)

	// ErrInvalidResponse indicates that the service returned a response
	// that failed parsing or schema validation.
	ErrInvalidResponse = fmt.Errorf("invalid response: %w", domain.ErrMalformedServiceResponse)

	// ErrAuthenticationFailed indicates that authentication with the
	// service failed.
	ErrAuthenticationFailed = fmt.Errorf("authentication failed: %w", domain.ErrServiceUnavailable)
)

// IsDegradable reports whether an error from a backing service should
// be absorbed by a fallback path rather than surfaced to the caller.
// Every service-level failure mode degrades; programming errors do not.
func IsDegradable(err error) bool {
	return errors.Is(err, ErrServiceUnavailable) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrInvalidResponse) ||
		errors.Is(err, ErrTokenLimitExceeded) ||
		errors.Is(err, ErrAuthenticationFailed)
}

// LLMError represents an error from an LLM provider.
// It includes details about the model, operation, and any rate limit
// information.
type LLMError struct {
	// Model is the identifier of the LLM model that generated the error.
	Model string

	// Operation is the name of the operation that failed.
	Operation string

	// Err is the underlying error that occurred.
	Err error

	// TokensUsed is the number of tokens consumed before the error occurred.
	TokensUsed int

	// RetryAfter indicates how long to wait before retrying, if applicable.
	RetryAfter *time.Duration
}

// Error implements the error interface for LLMError.
func (e *LLMError) Error() string {
	msg := fmt.Sprintf("LLM error: model=%s, operation=%s, err=%v", e.Model, e.Operation, e.Err)
	if e.TokensUsed > 0 {
		msg += fmt.Sprintf(", tokens_used=%d", e.TokensUsed)
	}
	if e.RetryAfter != nil {
		msg += fmt.Sprintf(", retry_after=%v", *e.RetryAfter)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *LLMError) Unwrap() error { return e.Err }

// IsRetryable returns true if the error is temporary and the operation
// can be retried.
func (e *LLMError) IsRetryable() bool {
	// Only network/service-level errors are retryable; logic errors are not
	return errors.Is(e.Err, ErrRateLimited) ||
		errors.Is(e.Err, ErrServiceUnavailable) ||
		errors.Is(e.Err, ErrTimeout)
}

// NewLLMError creates a new LLMError with the given details.
func NewLLMError(model, operation string, err error) *LLMError {
	return &LLMError{
		Model:     model,
		Operation: operation,
		Err:       err,
	}
}
