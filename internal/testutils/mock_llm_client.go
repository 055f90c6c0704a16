package testutils

import (
	"context"
	"sync"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// MockLLMClient implements the LLMClient interface with a scripted
// response queue for testing prompt-and-parse code paths.
type MockLLMClient struct {
	mu sync.Mutex

	// model is the mock model identifier.
	model string

	// response is the default reply when the queue is empty.
	response string

	// queue holds replies consumed in order before the default applies.
	queue []string

	// err, when set, fails every call.
	err error

	// prompts records every prompt received, in call order.
	prompts []string
}

var _ ports.LLMClient = (*MockLLMClient)(nil)

// NewMockLLMClient creates a mock client that replies with response to
// every completion request.
func NewMockLLMClient(model, response string) *MockLLMClient {
	return &MockLLMClient{model: model, response: response}
}

// QueueResponses appends replies consumed one per call before the
// default response resumes.
func (m *MockLLMClient) QueueResponses(responses ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// FailWith makes every subsequent call return err.
func (m *MockLLMClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Prompts returns a copy of the received prompts in call order.
func (m *MockLLMClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// Complete returns the next scripted reply.
func (m *MockLLMClient) Complete(ctx context.Context, prompt string, options map[string]any) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)

	if m.err != nil {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(m.queue) > 0 {
		r := m.queue[0]
		m.queue = m.queue[1:]
		return r, nil
	}
	return m.response, nil
}

// EstimateTokens approximates four characters per token.
func (m *MockLLMClient) EstimateTokens(text string) (int, error) {
	return (len(text) + 3) / 4, nil
}

// GetModel returns the mock model identifier.
func (m *MockLLMClient) GetModel() string { return m.model }
