// Package llm provides the service clients behind the relevance engine's
// optional signals: chat-completion providers (OpenAI, Anthropic, Google)
// for generative fit reasoning and an embedding client for semantic
// similarity. Providers are abstracted behind a small CoreLLM interface
// and composed with middleware for timeouts, retries, rate limiting, and
// metrics, so the engine can swap providers or add operational behavior
// without touching scoring code.
//
// Basic usage:
//
//	client, err := llm.NewClient("openai", llm.ClientConfig{
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	    Model:  "gpt-4o-mini",
//	    Middleware: []llm.Middleware{
//	        llm.TimeoutMiddleware(10 * time.Second),
//	        llm.RetryMiddleware(2, 200*time.Millisecond, 2*time.Second),
//	    },
//	})
//	reasoner := llm.NewFitReasoner(client, llm.DefaultFitReasonerConfig())
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// CoreLLM defines the minimal interface that completion providers must
// implement. Middleware wraps any conforming implementation.
type CoreLLM interface {
	// DoRequest sends a prompt to the provider and returns the response
	// text along with input and output token counts.
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (response string, tokensIn, tokensOut int, err error)

	// GetModel returns the currently configured model name.
	GetModel() string

	// SetModel updates the model used for subsequent requests.
	SetModel(model string)
}

// Middleware wraps a CoreLLM implementation to add cross-cutting
// functionality such as timeouts, retries, rate limiting, or metrics.
type Middleware func(CoreLLM) CoreLLM

// ClientConfig holds the configuration for creating a provider client.
type ClientConfig struct {
	// APIKey authenticates requests to the provider.
	APIKey string

	// Model specifies which model to use. Empty selects the provider's
	// default.
	Model string

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string

	// Timeout bounds individual HTTP requests. Zero means no
	// client-level timeout; the engine still applies its own per-call
	// deadline.
	Timeout time.Duration

	// Middleware is applied in the order given, first entry outermost.
	Middleware []Middleware
}

// providerFactory constructs a CoreLLM for one provider type.
type providerFactory func(ClientConfig) (CoreLLM, error)

var providerFactories = map[string]providerFactory{}

// RegisterProviderFactory registers a provider constructor under a name.
// Providers self-register from their init functions.
func RegisterProviderFactory(name string, factory providerFactory) {
	providerFactories[name] = factory
}

// Client implements ports.LLMClient over a middleware-wrapped CoreLLM.
type Client struct {
	core      CoreLLM
	estimator *TokenEstimator
}

var _ ports.LLMClient = (*Client)(nil)

// NewClient creates a provider client with its middleware chain applied.
func NewClient(providerType string, config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}

	factory, ok := providerFactories[providerType]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", providerType)
	}

	core, err := factory(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", providerType, err)
	}

	// Apply middleware in reverse order so the first entry is outermost.
	for i := len(config.Middleware) - 1; i >= 0; i-- {
		core = config.Middleware[i](core)
	}

	return &Client{core: core, estimator: NewTokenEstimator()}, nil
}

// NewClientFromCore wraps an existing CoreLLM, mainly for tests.
func NewClientFromCore(core CoreLLM) *Client {
	return &Client{core: core, estimator: NewTokenEstimator()}
}

// Complete sends a completion request through the middleware chain.
func (c *Client) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	response, _, _, err := c.core.DoRequest(ctx, prompt, options)
	if err != nil {
		return "", ports.NewLLMError(c.core.GetModel(), "complete", err)
	}
	return response, nil
}

// EstimateTokens approximates the token count of the given text.
func (c *Client) EstimateTokens(text string) (int, error) {
	return c.estimator.Estimate(text), nil
}

// GetModel returns the model identifier in use.
func (c *Client) GetModel() string { return c.core.GetModel() }

// TokenEstimator approximates token counts from character counts when an
// exact tokenizer is not available.
type TokenEstimator struct {
	// CharactersPerToken is the assumed average characters per token.
	CharactersPerToken float64
}

// NewTokenEstimator returns an estimator tuned for English text.
func NewTokenEstimator() *TokenEstimator {
	return &TokenEstimator{CharactersPerToken: 4.0}
}

// Estimate returns the approximate token count for text.
func (t *TokenEstimator) Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text)) / t.CharactersPerToken)
}
