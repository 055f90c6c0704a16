package ports

import (
	"context"
	"time"
)

// Embedder defines the interface for the optional vector-embedding
// service behind the semantic scorer's primary path.
// Implementations should handle provider-specific details like
// authentication, request formatting, and response parsing.
type Embedder interface {
	// Embed converts text into a fixed-length numeric vector.
	// It returns ErrServiceUnavailable-classified errors when the
	// backing service is unreachable, and ErrInvalidResponse-classified
	// errors when the service responds with an unusable payload.
	Embed(ctx context.Context, text string) ([]float64, error)

	// Dimensions returns the length of the vectors this embedder
	// produces. It is advisory; a zero value means unknown.
	Dimensions() int
}

// Assessment is the structured output of the generative-reasoning
// service: a bounded fit judgment plus narrative feedback.
type Assessment struct {
	// Score is the fit judgment in [0,100].
	Score float64 `json:"score" validate:"min=0,max=100"`

	// Feedback is the narrative improvement feedback. It must be
	// non-empty for the assessment to be accepted.
	Feedback string `json:"feedback" validate:"required,min=10"`

	// Strengths lists aspects of the candidate that match the role.
	Strengths []string `json:"strengths,omitempty"`

	// Weaknesses lists gaps or concerns the reasoning identified.
	Weaknesses []string `json:"weaknesses,omitempty"`
}

// AssessmentRequest carries the inputs for one reasoning call.
// MatchedSkills and MissingSkills ground the generative judgment in the
// lexical matcher's output, discouraging hallucinated matches.
type AssessmentRequest struct {
	// RoleTitle is the role title for prompt context.
	RoleTitle string

	// RoleText is the normalized job-description text.
	RoleText string

	// CandidateText is the normalized resume text.
	CandidateText string

	// MatchedSkills lists required skills the candidate was found to
	// have.
	MatchedSkills []string

	// MissingSkills lists required skills the candidate lacks.
	MissingSkills []string
}

// ReasoningClient defines the interface for the optional
// generative-reasoning service behind the reasoning scorer's primary
// path.
type ReasoningClient interface {
	// Assess judges the candidate's fit for the role. Implementations
	// must validate the service response and return an
	// ErrInvalidResponse-classified error for out-of-range scores or
	// empty feedback so the caller can fall back deterministically.
	Assess(ctx context.Context, req AssessmentRequest) (Assessment, error)
}

// LLMClient defines the interface for interacting with Large Language
// Model providers. The reasoning client is built on top of it.
// Implementations should handle provider-specific details like
// authentication, request formatting, and response parsing.
type LLMClient interface {
	// Complete sends a completion request to the LLM provider.
	// It returns the generated text and any error encountered.
	// The implementation should handle rate limiting, retries, and
	// timeouts.
	//
	// The options map allows flexibility for different providers
	// without changing the interface. Common options include:
	//   - "temperature": float64 (0.0-1.0)
	//   - "max_tokens": int
	Complete(ctx context.Context, prompt string, options map[string]any) (string, error)

	// EstimateTokens calculates the approximate token count for a given
	// text. This is useful for cost estimation and staying within model
	// limits.
	EstimateTokens(text string) (int, error)

	// GetModel returns the model identifier being used by this client.
	GetModel() string
}

// MetricsCollector defines the interface for collecting operational
// metrics. Implementations should integrate with observability
// platforms like Prometheus or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like scores.
	RecordHistogram(metric string, value float64, labels map[string]string)
}
