package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// Common errors returned by the client and providers.
var (
	// ErrEmptyAPIKey indicates that an API key was required but not provided.
	ErrEmptyAPIKey = errors.New("API key cannot be empty")

	// ErrEmptyResponse indicates that the provider returned an empty body.
	ErrEmptyResponse = errors.New("empty response from API")

	// ErrNoResponseChoice indicates that the response contained no choices.
	ErrNoResponseChoice = errors.New("no response choices returned")
)

// ErrorType categorizes a provider error for standardized handling,
// such as determining retryability and fallback classification.
type ErrorType int

const (
	// ErrorTypeUnknown indicates an error of an undetermined category.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeAuthentication indicates an invalid or rejected credential.
	ErrorTypeAuthentication
	// ErrorTypeRateLimit indicates the provider throttled the request.
	ErrorTypeRateLimit
	// ErrorTypeBadRequest indicates malformed parameters.
	ErrorTypeBadRequest
	// ErrorTypeNotFound indicates a missing resource, e.g. an unknown model.
	ErrorTypeNotFound
	// ErrorTypeServerError indicates a failure on the provider's side.
	ErrorTypeServerError
	// ErrorTypeContentPolicy indicates the request was blocked by a policy.
	ErrorTypeContentPolicy
	// ErrorTypeTimeout indicates the request deadline elapsed.
	ErrorTypeTimeout
)

// ProviderError normalizes provider-specific failures into a common
// shape. It maps onto the ports-level sentinels through Is, so the
// capability resolver and scorers can classify failures without knowing
// which provider produced them.
type ProviderError struct {
	// Type classifies the error.
	Type ErrorType
	// Provider names the backing service, e.g. "openai".
	Provider string
	// StatusCode holds the HTTP status from the provider, if any.
	StatusCode int
	// Message is the provider's error message.
	Message string
	// WrappedError is the original underlying error.
	WrappedError error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	base := fmt.Sprintf("%s error", e.Provider)
	if e.StatusCode > 0 {
		base += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		base += ": " + e.Message
	}
	if e.WrappedError != nil {
		base += fmt.Sprintf(": %v", e.WrappedError)
	}
	return base
}

// Unwrap returns the underlying error for errors.As inspection.
func (e *ProviderError) Unwrap() error { return e.WrappedError }

// Is maps the classified error type onto a ports-level sentinel and
// delegates to errors.Is, so callers can classify with either the
// ports sentinels or the domain kinds they wrap.
func (e *ProviderError) Is(target error) bool {
	var sentinel error
	switch e.Type {
	case ErrorTypeRateLimit:
		sentinel = ports.ErrRateLimited
	case ErrorTypeTimeout:
		sentinel = ports.ErrTimeout
	case ErrorTypeAuthentication:
		sentinel = ports.ErrAuthenticationFailed
	case ErrorTypeServerError, ErrorTypeNotFound, ErrorTypeUnknown:
		sentinel = ports.ErrServiceUnavailable
	case ErrorTypeBadRequest, ErrorTypeContentPolicy:
		sentinel = ports.ErrInvalidResponse
	default:
		return false
	}
	return errors.Is(sentinel, target)
}

// IsRetryable reports whether the failed request may be retried.
// Transient issues like throttling and server errors are retryable;
// authentication and request errors are not.
func (e *ProviderError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeServerError, ErrorTypeTimeout:
		return true
	default:
		return false
	}
}

// NewProviderError builds a standardized error from a provider response.
func NewProviderError(provider string, errType ErrorType, statusCode int, message string, wrapped error) *ProviderError {
	return &ProviderError{
		Type:         errType,
		Provider:     provider,
		StatusCode:   statusCode,
		Message:      message,
		WrappedError: wrapped,
	}
}

// ErrorClassifier converts provider-specific failures into ProviderError
// instances using HTTP status codes and context state.
type ErrorClassifier struct {
	// Provider names the backing service this classifier reports for.
	Provider string
}

// ClassifyHTTPError classifies an error by its HTTP status code.
func (ec *ErrorClassifier) ClassifyHTTPError(statusCode int, message string, err error) *ProviderError {
	var errType ErrorType
	switch {
	case statusCode == 401 || statusCode == 403:
		errType = ErrorTypeAuthentication
	case statusCode == 429:
		errType = ErrorTypeRateLimit
	case statusCode == 404:
		errType = ErrorTypeNotFound
	case statusCode >= 500:
		errType = ErrorTypeServerError
	case statusCode >= 400:
		errType = ErrorTypeBadRequest
	default:
		errType = ErrorTypeUnknown
	}
	return NewProviderError(ec.Provider, errType, statusCode, message, err)
}

// ClassifyContextError classifies context cancellation and deadline
// errors. Both are reported as timeouts: from the engine's perspective a
// canceled call and an expired call degrade identically.
func (ec *ErrorClassifier) ClassifyContextError(err error) *ProviderError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return NewProviderError(ec.Provider, ErrorTypeTimeout, 0, "deadline exceeded", err)
	case errors.Is(err, context.Canceled):
		return NewProviderError(ec.Provider, ErrorTypeTimeout, 0, "request canceled", err)
	default:
		return NewProviderError(ec.Provider, ErrorTypeUnknown, 0, "", err)
	}
}

// isContextError reports whether err stems from context cancellation.
func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
