package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkatyal/resume-relevance/internal/domain"
	"github.com/nkatyal/resume-relevance/internal/ports"
	"github.com/nkatyal/resume-relevance/internal/testutils"
)

func backendRole() *domain.RoleSpec {
	return &domain.RoleSpec{
		Title:          "Backend Engineer",
		MustHave:       []string{"go", "postgresql"},
		GoodToHave:     []string{"kubernetes"},
		Qualifications: "Bachelor degree in computer science required.",
		Certifications: []string{"CKA"},
		RawText: "We are hiring a backend engineer to build Go services " +
			"backed by PostgreSQL and deployed on Kubernetes.",
	}
}

func strongCandidate() *domain.CandidateDoc {
	return &domain.CandidateDoc{
		Skills: []string{"Go", "PostgreSQL", "Kubernetes"},
		Education: []domain.EducationEntry{
			{Degree: "Bachelor of Science", Institution: "State University", Year: "2018"},
		},
		Experience: []domain.ExperienceEntry{
			{Title: "Backend Engineer", Company: "Acme", Duration: "Jan 2019 - Mar 2024"},
		},
		Certifications: []string{"CKA"},
		RawText: "Jane Doe\njane@example.com\n+1 (555) 123-4567\n\n" +
			"Skills\nGo, PostgreSQL, Kubernetes\n\n" +
			"Experience\nBackend Engineer at Acme building Go services with PostgreSQL, Jan 2019 - Mar 2024\n\n" +
			"Education\nBachelor of Science degree, State University, 2018\nCKA certified\n",
	}
}

func weakCandidate() *domain.CandidateDoc {
	return &domain.CandidateDoc{
		Skills: []string{"photoshop"},
		RawText: "John Doe\njohn@example.com\n+1 (555) 987-6543\n\n" +
			"Skills\nphotoshop\n\n" +
			"Experience\nGraphic designer at Studio, Jan 2020 - Dec 2023\n\n" +
			"Education\nDiploma in design\n",
		Experience: []domain.ExperienceEntry{
			{Title: "Graphic Designer", Company: "Studio", Duration: "Jan 2020 - Dec 2023"},
		},
		Education: []domain.EducationEntry{
			{Degree: "Diploma in Design", Institution: "Art School"},
		},
	}
}

// degradedEngine builds an engine with no backing services at all.
func degradedEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(DefaultConfig(), Options{})
	require.NoError(t, err)
	return eng
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.Weights.Lexical = 0.9

	_, err := New(config, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidConfiguration))
}

func TestEvaluateFullyDegradedStillComplete(t *testing.T) {
	eng := degradedEngine(t)

	result, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	// Every field of the result is populated without any services.
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.EvaluatedAt.IsZero())
	assert.NotEmpty(t, result.Feedback)
	assert.NotEmpty(t, result.Verdict)
	assert.GreaterOrEqual(t, result.FinalScore, 0.0)
	assert.LessOrEqual(t, result.FinalScore, 100.0)

	assert.Equal(t, domain.CapabilityPrimary, result.Lexical.Capability)
	assert.Equal(t, domain.CapabilityFallback, result.Semantic.Capability)
	assert.Equal(t, domain.CapabilityFallback, result.Reasoning.Capability)
	assert.Equal(t, domain.CapabilityPrimary, result.Structural.Capability)
}

func TestEvaluateStrongCandidateOutscoresWeak(t *testing.T) {
	eng := degradedEngine(t)

	strong, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)
	weak, err := eng.Evaluate(context.Background(), backendRole(), weakCandidate())
	require.NoError(t, err)

	assert.Greater(t, strong.FinalScore, weak.FinalScore)
	assert.Equal(t, 100.0, strong.Lexical.Value)
	assert.True(t, strong.Gaps.Empty())
	assert.Equal(t, []string{"go", "postgresql"}, weak.Gaps.MissingMustHave)
	assert.Equal(t, []string{"kubernetes"}, weak.Gaps.MissingGoodToHave)
	assert.Contains(t, weak.Gaps.MissingCertifications, "CKA")
}

func TestEvaluateRejectsMalformedInput(t *testing.T) {
	eng := degradedEngine(t)

	_, err := eng.Evaluate(context.Background(), &domain.RoleSpec{}, strongCandidate())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))

	_, err = eng.Evaluate(context.Background(), backendRole(), &domain.CandidateDoc{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
}

func TestEvaluateIsIdempotentWhenDegraded(t *testing.T) {
	eng := degradedEngine(t)

	first, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)
	second, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	// IDs and timestamps differ; every score is reproducible.
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.FinalScore, second.FinalScore)
	assert.Equal(t, first.Lexical.Value, second.Lexical.Value)
	assert.Equal(t, first.Semantic.Value, second.Semantic.Value)
	assert.Equal(t, first.Reasoning.Value, second.Reasoning.Value)
	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Gaps, second.Gaps)
	assert.Equal(t, first.Feedback, second.Feedback)
}

func TestEvaluateWithHealthyServices(t *testing.T) {
	embedder := testutils.NewMockEmbedder(64)
	reasoner := testutils.NewMockReasoner(ports.Assessment{
		Score:      85,
		Feedback:   "Excellent alignment with the role requirements.",
		Strengths:  []string{"Go expertise"},
		Weaknesses: []string{"None significant"},
	})

	eng, err := New(DefaultConfig(), Options{Embedder: embedder, Reasoner: reasoner})
	require.NoError(t, err)

	result, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	assert.Equal(t, domain.CapabilityPrimary, result.Semantic.Capability)
	assert.Equal(t, domain.CapabilityPrimary, result.Reasoning.Capability)
	assert.Equal(t, 85.0, result.Reasoning.Value)
	assert.Equal(t, "Excellent alignment with the role requirements.", result.Feedback)
	assert.Equal(t, []string{"Go expertise"}, result.Strengths)
}

func TestEvaluateServiceFailureDegradesCallNotProcess(t *testing.T) {
	reasoner := testutils.NewMockReasoner(ports.Assessment{
		Score:    70,
		Feedback: "Reasoned assessment of the candidate.",
	})
	eng, err := New(DefaultConfig(), Options{Reasoner: reasoner})
	require.NoError(t, err)

	// The probe sees a healthy service; a later call fails transiently.
	mode := eng.Resolver().Resolve(context.Background())
	require.Equal(t, domain.CapabilityPrimary, mode.Reasoning)
	reasoner.FailNext(ports.ErrRateLimited)

	degradedResult, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	healthyResult, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	mode, resolved := eng.Resolver().Status()
	assert.True(t, resolved)
	assert.Equal(t, domain.CapabilityPrimary, mode.Reasoning)
	// One degraded call, then primary again.
	assert.Equal(t, domain.CapabilityFallback, degradedResult.Reasoning.Capability)
	assert.Equal(t, domain.CapabilityPrimary, healthyResult.Reasoning.Capability)
}

func TestEvaluateAggregationUsesConfiguredWeights(t *testing.T) {
	config := DefaultConfig()
	config.Weights = Weights{Lexical: 1.0}

	eng, err := New(config, Options{})
	require.NoError(t, err)

	result, err := eng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)
	assert.Equal(t, result.Lexical.Value, result.FinalScore)
}

func TestAggregateRoundsToNearestInteger(t *testing.T) {
	eng := degradedEngine(t)

	signal := func(v float64) domain.SignalScore { return domain.SignalScore{Value: v} }

	// Default weights 0.4/0.4/0/0.2: 40 + 29.6 + 10 = 79.6 rounds up to
	// 80 and crosses the High threshold.
	final := eng.aggregate(signal(100), signal(74), signal(0), signal(50))
	assert.Equal(t, 80.0, final)
	assert.Equal(t, domain.VerdictHigh, domain.VerdictFor(final, DefaultConfig().Verdict))

	// 40 + 29.2 + 10 = 79.2 rounds down to 79, Medium.
	final = eng.aggregate(signal(100), signal(73), signal(0), signal(50))
	assert.Equal(t, 79.0, final)
	assert.Equal(t, domain.VerdictMedium, domain.VerdictFor(final, DefaultConfig().Verdict))
}

func TestEvaluateBatchPreservesOrder(t *testing.T) {
	eng := degradedEngine(t)

	candidates := []*domain.CandidateDoc{
		strongCandidate(),
		weakCandidate(),
		strongCandidate(),
	}

	items, err := eng.EvaluateBatch(context.Background(), backendRole(), candidates)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for i, item := range items {
		require.NoError(t, item.Err, "item %d", i)
		require.NotNil(t, item.Result, "item %d", i)
	}
	assert.Equal(t, items[0].Result.FinalScore, items[2].Result.FinalScore)
	assert.Greater(t, items[0].Result.FinalScore, items[1].Result.FinalScore)
}

func TestEvaluateBatchIsolatesFailures(t *testing.T) {
	eng := degradedEngine(t)

	candidates := []*domain.CandidateDoc{
		strongCandidate(),
		{}, // malformed: no raw text
		nil,
		weakCandidate(),
	}

	items, err := eng.EvaluateBatch(context.Background(), backendRole(), candidates)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.NoError(t, items[0].Err)
	assert.NotNil(t, items[0].Result)

	assert.Error(t, items[1].Err)
	assert.True(t, errors.Is(items[1].Err, domain.ErrMalformedInput))
	assert.Nil(t, items[1].Result)

	assert.Error(t, items[2].Err)
	assert.Nil(t, items[2].Result)

	assert.NoError(t, items[3].Err)
	assert.NotNil(t, items[3].Result)
}

func TestEvaluateBatchRejectsInvalidRole(t *testing.T) {
	eng := degradedEngine(t)

	_, err := eng.EvaluateBatch(context.Background(), &domain.RoleSpec{}, []*domain.CandidateDoc{strongCandidate()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))
}

func TestEvaluateBatchEmptyInput(t *testing.T) {
	eng := degradedEngine(t)

	items, err := eng.EvaluateBatch(context.Background(), backendRole(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEvaluateBatchMatchesSingleEvaluations(t *testing.T) {
	batchEng := degradedEngine(t)
	singleEng := degradedEngine(t)

	items, err := batchEng.EvaluateBatch(context.Background(), backendRole(), []*domain.CandidateDoc{strongCandidate()})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)

	single, err := singleEng.Evaluate(context.Background(), backendRole(), strongCandidate())
	require.NoError(t, err)

	assert.Equal(t, single.FinalScore, items[0].Result.FinalScore)
	assert.Equal(t, single.Verdict, items[0].Result.Verdict)
	assert.Equal(t, single.Gaps, items[0].Result.Gaps)
}

func TestGapAnalysisQualifications(t *testing.T) {
	eng := degradedEngine(t)

	role := backendRole()
	candidate := weakCandidate() // has a diploma, not a bachelor degree

	result, err := eng.Evaluate(context.Background(), role, candidate)
	require.NoError(t, err)
	assert.Contains(t, result.Gaps.MissingQualifications, "bachelor")
}
