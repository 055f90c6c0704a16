// Package testutils provides deterministic mock implementations of the
// backing-service interfaces for testing the scoring pipeline without
// network access.
package testutils

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// MockEmbedder implements the Embedder interface with deterministic
// vectors derived from the input text. Identical texts embed to
// identical vectors and share high cosine similarity with texts that
// share words, which is enough signal for pipeline tests.
type MockEmbedder struct {
	mu sync.Mutex

	// dimensions is the vector length returned for every embedding.
	dimensions int

	// failures is a queue of errors returned before embedding succeeds.
	failures []error

	// permanentErr, when set, fails every call.
	permanentErr error

	// calls counts Embed invocations, including failed ones.
	calls int
}

var _ ports.Embedder = (*MockEmbedder)(nil)

// NewMockEmbedder creates a mock embedder producing vectors of the
// given length.
func NewMockEmbedder(dimensions int) *MockEmbedder {
	return &MockEmbedder{dimensions: dimensions}
}

// FailNext queues errors to return from the next calls to Embed, in
// order, before successful embedding resumes.
func (m *MockEmbedder) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// FailAlways makes every subsequent call return err.
func (m *MockEmbedder) FailAlways(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permanentErr = err
}

// Calls returns the number of Embed invocations so far.
func (m *MockEmbedder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Embed returns a deterministic bag-of-words vector for the text.
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.mu.Lock()
	m.calls++
	if m.permanentErr != nil {
		err := m.permanentErr
		m.mu.Unlock()
		return nil, err
	}
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		m.mu.Unlock()
		return nil, err
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vector := make([]float64, m.dimensions)
	for _, word := range splitWords(text) {
		h := fnv.New32a()
		h.Write([]byte(word))
		vector[int(h.Sum32())%m.dimensions]++
	}
	return vector, nil
}

// Dimensions returns the configured vector length.
func (m *MockEmbedder) Dimensions() int { return m.dimensions }

func splitWords(text string) []string {
	var words []string
	start := -1
	for i, r := range text {
		isWord := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if isWord && start == -1 {
			start = i
		}
		if !isWord && start != -1 {
			words = append(words, text[start:i])
			start = -1
		}
	}
	if start != -1 {
		words = append(words, text[start:])
	}
	return words
}
