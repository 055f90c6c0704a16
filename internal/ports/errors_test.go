package ports

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

func TestSentinelsWrapDomainKinds(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
		kind     error
	}{
		{name: "token limit", sentinel: ErrTokenLimitExceeded, kind: domain.ErrServiceUnavailable},
		{name: "rate limited", sentinel: ErrRateLimited, kind: domain.ErrServiceUnavailable},
		{name: "unavailable", sentinel: ErrServiceUnavailable, kind: domain.ErrServiceUnavailable},
		{name: "timeout", sentinel: ErrTimeout, kind: domain.ErrServiceUnavailable},
		{name: "invalid response", sentinel: ErrInvalidResponse, kind: domain.ErrMalformedServiceResponse},
		{name: "authentication", sentinel: ErrAuthenticationFailed, kind: domain.ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.sentinel, tt.kind))
			// Wrapping once more preserves both classifications.
			wrapped := fmt.Errorf("calling provider: %w", tt.sentinel)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.True(t, errors.Is(wrapped, tt.kind))
		})
	}
}

func TestIsDegradable(t *testing.T) {
	for _, sentinel := range []error{
		ErrTokenLimitExceeded,
		ErrRateLimited,
		ErrServiceUnavailable,
		ErrTimeout,
		ErrInvalidResponse,
		ErrAuthenticationFailed,
	} {
		assert.True(t, IsDegradable(sentinel), sentinel.Error())
	}

	assert.False(t, IsDegradable(errors.New("programming error")))
	assert.False(t, IsDegradable(domain.ErrMalformedInput))
}
