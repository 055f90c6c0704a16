package scorers

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

func primaryCaps() ports.FixedCapabilities {
	return ports.FixedCapabilities(domain.CapabilityMode{
		Embedding: domain.CapabilityPrimary,
		Reasoning: domain.CapabilityPrimary,
	})
}

func fallbackCaps() ports.FixedCapabilities {
	return ports.FixedCapabilities(domain.AllFallback())
}

func testRole() *domain.RoleSpec {
	return &domain.RoleSpec{
		Title:   "Backend Engineer",
		RawText: "We need a backend engineer with golang and kubernetes experience.",
	}
}

func testCandidate() *domain.CandidateDoc {
	return &domain.CandidateDoc{
		Skills:  []string{"golang"},
		RawText: "Backend engineer with golang experience building services.",
	}
}

func TestNewSemanticScorer(t *testing.T) {
	_, err := NewSemanticScorer(nil, nil, nil)
	assert.Error(t, err)

	scorer, err := NewSemanticScorer(nil, fallbackCaps(), nil)
	require.NoError(t, err)
	assert.NotNil(t, scorer)
}

func TestSemanticScorerPrimaryPath(t *testing.T) {
	embedder := testutils.NewMockEmbedder(64)
	scorer, err := NewSemanticScorer(embedder, primaryCaps(), NewRoleCorpus())
	require.NoError(t, err)

	score, err := scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, domain.DimensionSemantic, score.Dimension)
	assert.Equal(t, domain.CapabilityPrimary, score.Capability)
	assert.GreaterOrEqual(t, score.Value, 0.0)
	assert.LessOrEqual(t, score.Value, 100.0)
	// Both texts mention backend, engineer, and golang.
	assert.Greater(t, score.Value, 0.0)
	assert.Equal(t, 2, embedder.Calls())
}

func TestSemanticScorerFallbackMode(t *testing.T) {
	embedder := testutils.NewMockEmbedder(64)
	scorer, err := NewSemanticScorer(embedder, fallbackCaps(), NewRoleCorpus())
	require.NoError(t, err)

	score, err := scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, domain.CapabilityFallback, score.Capability)
	assert.Greater(t, score.Value, 0.0)
	// Fallback mode never touches the embedder.
	assert.Equal(t, 0, embedder.Calls())
}

func TestSemanticScorerDegradesPerCall(t *testing.T) {
	embedder := testutils.NewMockEmbedder(64)
	embedder.FailNext(ports.ErrTimeout, ports.ErrTimeout)
	scorer, err := NewSemanticScorer(embedder, primaryCaps(), NewRoleCorpus())
	require.NoError(t, err)

	// First call degrades to the fallback.
	score, err := scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)
	assert.Equal(t, domain.CapabilityFallback, score.Capability)

	// The next call uses the primary path again.
	score, err = scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)
	assert.Equal(t, domain.CapabilityPrimary, score.Capability)
}

func TestSemanticScorerPropagatesNonDegradableErrors(t *testing.T) {
	embedder := testutils.NewMockEmbedder(64)
	fatal := errors.New("programming error")
	embedder.FailAlways(fatal)
	scorer, err := NewSemanticScorer(embedder, primaryCaps(), NewRoleCorpus())
	require.NoError(t, err)

	_, err = scorer.Score(context.Background(), testRole(), testCandidate())
	assert.ErrorIs(t, err, fatal)
}

func TestSemanticScorerRejectsOversizedText(t *testing.T) {
	scorer, err := NewSemanticScorer(nil, fallbackCaps(), nil)
	require.NoError(t, err)

	big := make([]byte, MaxTextLength+1)
	for i := range big {
		big[i] = 'a'
	}
	role := &domain.RoleSpec{Title: "Engineer", RawText: string(big)}

	_, err = scorer.Score(context.Background(), role, testCandidate())
	assert.ErrorIs(t, err, ErrTextTooLong)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestSemanticScorerDeterministicFallback(t *testing.T) {
	corpus := NewRoleCorpus()
	corpus.Observe(testRole().RawText)
	scorer, err := NewSemanticScorer(nil, fallbackCaps(), corpus)
	require.NoError(t, err)

	first, err := scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)
	second, err := scorer.Score(context.Background(), testRole(), testCandidate())
	require.NoError(t, err)

	assert.Equal(t, first.Value, second.Value)
}
