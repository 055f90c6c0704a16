package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkatyal/resume-relevance/internal/ports"
	"github.com/nkatyal/resume-relevance/internal/testutils"
)

func testAssessmentRequest() ports.AssessmentRequest {
	return ports.AssessmentRequest{
		RoleTitle:     "Backend Engineer",
		RoleText:      "We need golang and kubernetes experience.",
		CandidateText: "Five years of golang services.",
		MatchedSkills: []string{"golang"},
		MissingSkills: []string{"kubernetes"},
	}
}

func TestNewFitReasoner(t *testing.T) {
	client := testutils.NewMockLLMClient("mock", "{}")

	tests := []struct {
		name      string
		client    ports.LLMClient
		config    FitReasonerConfig
		wantError bool
	}{
		{name: "default configuration", client: client, config: DefaultFitReasonerConfig()},
		{name: "nil client", client: nil, config: DefaultFitReasonerConfig(), wantError: true},
		{
			name:      "empty prompt template",
			client:    client,
			config:    FitReasonerConfig{Temperature: 0.2, MaxTokens: 500},
			wantError: true,
		},
		{
			name:   "temperature above maximum",
			client: client,
			config: FitReasonerConfig{
				PromptTemplate: DefaultFitReasonerConfig().PromptTemplate,
				Temperature:    1.5,
				MaxTokens:      500,
			},
			wantError: true,
		},
		{
			name:   "unparseable template",
			client: client,
			config: FitReasonerConfig{
				PromptTemplate: "this template {{.Is broken and long enough to pass validation",
				Temperature:    0.2,
				MaxTokens:      500,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasoner, err := NewFitReasoner(tt.client, tt.config)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, reasoner)
		})
	}
}

func TestFitReasonerAssess(t *testing.T) {
	client := testutils.NewMockLLMClient("mock",
		`{"score": 78, "feedback": "Solid Go background, learn Kubernetes.", "strengths": ["golang"], "weaknesses": ["kubernetes"]}`)
	reasoner, err := NewFitReasoner(client, DefaultFitReasonerConfig())
	require.NoError(t, err)

	assessment, err := reasoner.Assess(context.Background(), testAssessmentRequest())
	require.NoError(t, err)

	assert.Equal(t, 78.0, assessment.Score)
	assert.Equal(t, "Solid Go background, learn Kubernetes.", assessment.Feedback)
	assert.Equal(t, []string{"golang"}, assessment.Strengths)

	// The rendered prompt embeds the verified skill lists.
	prompts := client.Prompts()
	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Backend Engineer")
	assert.Contains(t, prompts[0], "golang")
	assert.Contains(t, prompts[0], "kubernetes")
}

func TestFitReasonerAssessRejectsBadResponses(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no JSON at all", response: "I think the candidate is great!"},
		{name: "malformed JSON", response: `{"score": 78, "feedback":`},
		{name: "score above range", response: `{"score": 150, "feedback": "Great candidate overall."}`},
		{name: "negative score", response: `{"score": -5, "feedback": "Not a fit for this role."}`},
		{name: "missing feedback", response: `{"score": 70}`},
		{name: "feedback too short", response: `{"score": 70, "feedback": "ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testutils.NewMockLLMClient("mock", tt.response)
			reasoner, err := NewFitReasoner(client, DefaultFitReasonerConfig())
			require.NoError(t, err)

			_, err = reasoner.Assess(context.Background(), testAssessmentRequest())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ports.ErrInvalidResponse),
				"parse failures must classify as invalid responses, got %v", err)
		})
	}
}

func TestFitReasonerPropagatesClientErrors(t *testing.T) {
	client := testutils.NewMockLLMClient("mock", "{}")
	client.FailWith(NewProviderError("mock", ErrorTypeServerError, 503, "down", nil))
	reasoner, err := NewFitReasoner(client, DefaultFitReasonerConfig())
	require.NoError(t, err)

	_, err = reasoner.Assess(context.Background(), testAssessmentRequest())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrServiceUnavailable))
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare object",
			response: `{"score": 80}`,
			want:     `{"score": 80}`,
		},
		{
			name:     "markdown fenced",
			response: "```json\n{\"score\": 80}\n```",
			want:     `{"score": 80}`,
		},
		{
			name:     "surrounded by prose",
			response: `Here is my assessment: {"score": 80} Hope that helps!`,
			want:     `{"score": 80}`,
		},
		{
			name:     "nested objects",
			response: `{"a": {"b": 1}, "c": 2}`,
			want:     `{"a": {"b": 1}, "c": 2}`,
		},
		{
			name:     "braces inside strings",
			response: `{"feedback": "use {braces} carefully"}`,
			want:     `{"feedback": "use {braces} carefully"}`,
		},
		{
			name:     "no JSON",
			response: "plain text only",
			want:     "",
		},
		{
			name:     "unterminated object",
			response: `{"score": 80`,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSON(tt.response))
		})
	}
}
