package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerdictFor(t *testing.T) {
	thresholds := DefaultVerdictThresholds()

	tests := []struct {
		name  string
		score float64
		want  Verdict
	}{
		{name: "zero score is low", score: 0, want: VerdictLow},
		{name: "just below medium threshold", score: 59.999, want: VerdictLow},
		{name: "exactly medium threshold", score: 60, want: VerdictMedium},
		{name: "between thresholds", score: 79, want: VerdictMedium},
		{name: "just below high threshold", score: 79.999, want: VerdictMedium},
		{name: "exactly high threshold", score: 80, want: VerdictHigh},
		{name: "perfect score", score: 100, want: VerdictHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerdictFor(tt.score, thresholds))
		})
	}
}

func TestVerdictForCustomThresholds(t *testing.T) {
	thresholds := VerdictThresholds{High: 90, Medium: 50}

	assert.Equal(t, VerdictHigh, VerdictFor(90, thresholds))
	assert.Equal(t, VerdictMedium, VerdictFor(89.9, thresholds))
	assert.Equal(t, VerdictMedium, VerdictFor(50, thresholds))
	assert.Equal(t, VerdictLow, VerdictFor(49.9, thresholds))
}

func TestClampScore(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "in range unchanged", input: 42.5, want: 42.5},
		{name: "negative clamps to zero", input: -3, want: 0},
		{name: "above range clamps to hundred", input: 101, want: 100},
		{name: "NaN maps to zero", input: math.NaN(), want: 0},
		{name: "positive infinity clamps", input: math.Inf(1), want: 100},
		{name: "negative infinity clamps", input: math.Inf(-1), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampScore(tt.input))
		})
	}
}

func TestGapReportEmpty(t *testing.T) {
	assert.True(t, GapReport{}.Empty())
	assert.False(t, GapReport{MissingMustHave: []string{"go"}}.Empty())
	assert.False(t, GapReport{MissingCertifications: []string{"cka"}}.Empty())
}

func TestEvaluationResultSignals(t *testing.T) {
	result := EvaluationResult{
		Lexical:    SignalScore{Dimension: DimensionLexical, Value: 10},
		Semantic:   SignalScore{Dimension: DimensionSemantic, Value: 20},
		Structural: SignalScore{Dimension: DimensionStructural, Value: 30},
		Reasoning:  SignalScore{Dimension: DimensionReasoning, Value: 40},
	}

	signals := result.Signals()
	assert.Len(t, signals, 4)
	assert.Equal(t, 10.0, signals[DimensionLexical].Value)
	assert.Equal(t, 40.0, signals[DimensionReasoning].Value)
}
