package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/nkatyal/resume-relevance/internal/ports"
)

// Default reasoning request parameters.
const (
	// DefaultReasonerTemperature keeps fit judgments near-deterministic.
	DefaultReasonerTemperature = 0.2

	// DefaultReasonerMaxTokens leaves room for narrative feedback.
	DefaultReasonerMaxTokens = 700
)

// defaultFitPrompt asks for a bounded judgment grounded in the lexical
// matcher's output. The JSON contract mirrors ports.Assessment.
const defaultFitPrompt = `You are an experienced technical recruiter evaluating a resume against a job description.

JOB: {{.RoleTitle}}

JOB DESCRIPTION:
{{.RoleText}}

RESUME:
{{.CandidateText}}

Skills already verified as present: {{join .MatchedSkills ", "}}
Required skills verified as missing: {{join .MissingSkills ", "}}

Judge the candidate's overall fit. Do not claim skills beyond the verified lists above.
Respond with valid JSON in exactly this format:
{"score": <0-100 number>, "feedback": "<actionable improvement feedback>", "strengths": ["<strength>"], "weaknesses": ["<weakness>"]}`

// FitReasonerConfig defines the configuration for the fit reasoner.
type FitReasonerConfig struct {
	// PromptTemplate is the Go template for the reasoning prompt. It
	// receives a ports.AssessmentRequest and a join helper.
	PromptTemplate string `validate:"required,min=50"`

	// Temperature controls sampling randomness (0.0-1.0).
	Temperature float64 `validate:"min=0,max=1"`

	// MaxTokens bounds the response length.
	MaxTokens int `validate:"required,min=100,max=4000"`
}

// DefaultFitReasonerConfig returns the documented defaults.
func DefaultFitReasonerConfig() FitReasonerConfig {
	return FitReasonerConfig{
		PromptTemplate: defaultFitPrompt,
		Temperature:    DefaultReasonerTemperature,
		MaxTokens:      DefaultReasonerMaxTokens,
	}
}

// FitReasoner implements ports.ReasoningClient over a completion
// client. It owns the prompt protocol and the defensive parsing of the
// model's JSON response; anything that fails schema validation is
// reported as an invalid response so the scorer can fall back.
type FitReasoner struct {
	client    ports.LLMClient
	config    FitReasonerConfig
	validator *validator.Validate
	tmpl      *template.Template
}

var _ ports.ReasoningClient = (*FitReasoner)(nil)

// NewFitReasoner creates a reasoning client from a completion client.
func NewFitReasoner(client ports.LLMClient, config FitReasonerConfig) (*FitReasoner, error) {
	if client == nil {
		return nil, fmt.Errorf("completion client cannot be nil")
	}

	v := validator.New()
	if err := v.Struct(config); err != nil {
		return nil, fmt.Errorf("reasoner configuration validation failed: %w", err)
	}

	tmpl, err := template.New("fitPrompt").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(config.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}

	return &FitReasoner{
		client:    client,
		config:    config,
		validator: v,
		tmpl:      tmpl,
	}, nil
}

// Assess judges the candidate's fit for the role via the completion
// client and parses the structured response.
func (f *FitReasoner) Assess(ctx context.Context, req ports.AssessmentRequest) (ports.Assessment, error) {
	var promptBuf bytes.Buffer
	if err := f.tmpl.Execute(&promptBuf, req); err != nil {
		return ports.Assessment{}, fmt.Errorf("failed to render prompt: %w", err)
	}

	options := map[string]any{
		"temperature":     f.config.Temperature,
		"max_tokens":      f.config.MaxTokens,
		"response_format": map[string]string{"type": "json_object"},
	}

	response, err := f.client.Complete(ctx, promptBuf.String(), options)
	if err != nil {
		return ports.Assessment{}, err
	}

	return f.parseResponse(response)
}

// parseResponse extracts and validates the assessment JSON. Missing or
// out-of-range fields classify as an invalid response rather than a
// parse panic, so one malformed reply degrades only that call.
func (f *FitReasoner) parseResponse(response string) (ports.Assessment, error) {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return ports.Assessment{}, NewProviderError("reasoner", ErrorTypeBadRequest, 0,
			fmt.Sprintf("no JSON object in response (%d chars)", len(response)), ports.ErrInvalidResponse)
	}

	var assessment ports.Assessment
	if err := json.Unmarshal([]byte(jsonStr), &assessment); err != nil {
		return ports.Assessment{}, NewProviderError("reasoner", ErrorTypeBadRequest, 0,
			"response is not valid assessment JSON", err)
	}

	if err := f.validator.Struct(assessment); err != nil {
		return ports.Assessment{}, NewProviderError("reasoner", ErrorTypeBadRequest, 0,
			fmt.Sprintf("assessment failed validation (score=%.1f)", assessment.Score), err)
	}

	if assessment.Score > 100 {
		return ports.Assessment{}, NewProviderError("reasoner", ErrorTypeBadRequest, 0,
			fmt.Sprintf("score %.1f out of range", assessment.Score), ports.ErrInvalidResponse)
	}

	return assessment, nil
}

// extractJSON pulls a JSON object out of a response that may wrap it in
// markdown fences or surrounding prose.
func extractJSON(response string) string {
	response = strings.TrimSpace(response)

	if idx := strings.Index(response, "```json"); idx != -1 {
		rest := response[idx+7:]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
	}

	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}

	// Scan for the matching closing brace, skipping braces inside
	// strings and escape sequences.
	braceCount := 0
	inString := false
	escapeNext := false
	for i := start; i < len(response); i++ {
		ch := response[i]
		if escapeNext {
			escapeNext = false
			continue
		}
		switch ch {
		case '\\':
			escapeNext = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braceCount++
			}
		case '}':
			if !inString {
				braceCount--
				if braceCount == 0 {
					return response[start : i+1]
				}
			}
		}
	}
	return ""
}
