package testutils

import (
	"context"
	"sync"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// MockReasoner implements the ReasoningClient interface with scripted
// assessments for testing the reasoning scorer and the capability
// resolver without a live model.
type MockReasoner struct {
	mu sync.Mutex

	// assessment is the default response for every successful call.
	assessment ports.Assessment

	// failures is a queue of errors returned before assessment resumes.
	failures []error

	// permanentErr, when set, fails every call.
	permanentErr error

	// calls counts Assess invocations, including failed ones.
	calls int

	// requests records every request received, in call order.
	requests []ports.AssessmentRequest
}

var _ ports.ReasoningClient = (*MockReasoner)(nil)

// NewMockReasoner creates a mock reasoner that returns the given
// assessment for every call.
func NewMockReasoner(assessment ports.Assessment) *MockReasoner {
	return &MockReasoner{assessment: assessment}
}

// FailNext queues errors to return from the next calls to Assess, in
// order, before successful assessment resumes.
func (m *MockReasoner) FailNext(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// FailAlways makes every subsequent call return err.
func (m *MockReasoner) FailAlways(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permanentErr = err
}

// Calls returns the number of Assess invocations so far.
func (m *MockReasoner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requests returns a copy of the received requests in call order.
func (m *MockReasoner) Requests() []ports.AssessmentRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.AssessmentRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Assess returns the scripted assessment or the next queued error.
func (m *MockReasoner) Assess(ctx context.Context, req ports.AssessmentRequest) (ports.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.requests = append(m.requests, req)

	if m.permanentErr != nil {
		return ports.Assessment{}, m.permanentErr
	}
	if len(m.failures) > 0 {
		err := m.failures[0]
		m.failures = m.failures[1:]
		return ports.Assessment{}, err
	}
	if err := ctx.Err(); err != nil {
		return ports.Assessment{}, err
	}
	return m.assessment, nil
}
