package scorers

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nkatyal/resume-relevance/internal/domain"
	"github.com/nkatyal/resume-relevance/internal/ports"
)

// SemanticScorer measures whole-document similarity between the role
// description and the resume. The primary path embeds both texts and
// takes the cosine of the vectors; the fallback path computes TF-IDF
// cosine similarity over a process-local corpus of observed roles.
//
// Which path runs is decided by the capability source, but a degradable
// embedding failure (timeout, rate limit, outage) downgrades that one
// call to the fallback instead of failing the evaluation. Non-degradable
// errors propagate.
//
// The scorer is stateless apart from the shared corpus and is
// thread-safe for concurrent execution.
type SemanticScorer struct {
	embedder ports.Embedder
	caps     ports.CapabilitySource
	corpus   *RoleCorpus
	tracer   trace.Tracer
}

// NewSemanticScorer creates a semantic scorer. The embedder may be nil
// when the process runs without an embedding service; the capability
// source is then expected to report the fallback tag. The corpus may be
// nil, which disables IDF weighting in the fallback.
func NewSemanticScorer(embedder ports.Embedder, caps ports.CapabilitySource, corpus *RoleCorpus) (*SemanticScorer, error) {
	if caps == nil {
		return nil, fmt.Errorf("capability source cannot be nil")
	}
	return &SemanticScorer{
		embedder: embedder,
		caps:     caps,
		corpus:   corpus,
		tracer:   otel.Tracer("semantic-scorer"),
	}, nil
}

// Score computes the semantic similarity signal for one evaluation.
// The returned SignalScore records which path produced the value.
func (ss *SemanticScorer) Score(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc) (domain.SignalScore, error) {
	ctx, span := ss.tracer.Start(ctx, "SemanticScorer.Score",
		trace.WithAttributes(
			attribute.Int("role.text_len", len(role.RawText)),
			attribute.Int("candidate.text_len", len(candidate.RawText)),
		),
	)
	defer span.End()

	if len(role.RawText) > MaxTextLength || len(candidate.RawText) > MaxTextLength {
		err := fmt.Errorf("%w: limit %d bytes", ErrTextTooLong, MaxTextLength)
		span.RecordError(err)
		return domain.SignalScore{}, err
	}

	if ss.caps.Tag(domain.ServiceEmbedding) == domain.CapabilityPrimary && ss.embedder != nil {
		score, err := ss.scoreEmbedded(ctx, role.RawText, candidate.RawText)
		if err == nil {
			span.SetAttributes(
				attribute.Float64("semantic.score", score.Value),
				attribute.String("semantic.capability", string(score.Capability)),
			)
			return score, nil
		}
		if !ports.IsDegradable(err) {
			span.RecordError(err)
			return domain.SignalScore{}, err
		}
		span.AddEvent("embedding degraded to tf-idf fallback")
	}

	score := ss.scoreTFIDF(role.RawText, candidate.RawText)
	span.SetAttributes(
		attribute.Float64("semantic.score", score.Value),
		attribute.String("semantic.capability", string(score.Capability)),
	)
	return score, nil
}

// scoreEmbedded embeds both texts concurrently and scores their cosine.
// Negative cosines clamp to zero; opposed documents are simply
// dissimilar, not negatively relevant.
func (ss *SemanticScorer) scoreEmbedded(ctx context.Context, roleText, candidateText string) (domain.SignalScore, error) {
	var roleVec, candidateVec []float64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := ss.embedder.Embed(gctx, roleText)
		if err != nil {
			return fmt.Errorf("embedding role text: %w", err)
		}
		roleVec = v
		return nil
	})
	g.Go(func() error {
		v, err := ss.embedder.Embed(gctx, candidateText)
		if err != nil {
			return fmt.Errorf("embedding candidate text: %w", err)
		}
		candidateVec = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.SignalScore{}, err
	}

	cosine := CosineSimilarity(roleVec, candidateVec)
	return domain.SignalScore{
		Dimension:  domain.DimensionSemantic,
		Value:      domain.ClampScore(cosine * 100),
		Capability: domain.CapabilityPrimary,
		Detail:     fmt.Sprintf("embedding cosine similarity %.3f", cosine),
	}, nil
}

// scoreTFIDF computes the deterministic fallback similarity.
func (ss *SemanticScorer) scoreTFIDF(roleText, candidateText string) domain.SignalScore {
	cosine := TFIDFSimilarity(ss.corpus, roleText, candidateText)
	return domain.SignalScore{
		Dimension:  domain.DimensionSemantic,
		Value:      domain.ClampScore(cosine * 100),
		Capability: domain.CapabilityFallback,
		Detail:     fmt.Sprintf("tf-idf cosine similarity %.3f", cosine),
	}
}
