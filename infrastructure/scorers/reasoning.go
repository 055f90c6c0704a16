package scorers

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nkatyal/resume-relevance/internal/domain"
	"github.com/nkatyal/resume-relevance/internal/ports"
)

// Grounding carries verified facts from the deterministic scorers into
// the reasoning step. The prompt embeds the matched and missing skill
// lists so the model judges fit without being free to invent skills,
// and the fallback path reuses the lexical score directly.
type Grounding struct {
	// Matched lists role skills the lexical matcher verified as present.
	Matched []string

	// Missing lists required skills the lexical matcher found absent.
	Missing []string

	// LexicalScore is the lexical coverage score, used as the fallback
	// reasoning score when no reasoning service is usable.
	LexicalScore float64

	// StructuralTips are the formatting fixes, appended to fallback
	// feedback.
	StructuralTips []string
}

// Narrative is the human-readable half of the reasoning output.
type Narrative struct {
	Feedback   string
	Strengths  []string
	Weaknesses []string
}

// ReasoningScorer produces the generative fit judgment. The primary
// path sends a grounded prompt to the reasoning service and parses its
// structured assessment; the fallback path scores with the lexical
// coverage and builds rule-based feedback, so every evaluation ends
// with a reasoning signal and non-empty feedback.
//
// A degradable service failure (timeout, rate limit, outage, malformed
// response) downgrades that one call to the fallback. Non-degradable
// errors propagate.
//
// The scorer is stateless and thread-safe for concurrent execution.
type ReasoningScorer struct {
	client ports.ReasoningClient
	caps   ports.CapabilitySource
	tracer trace.Tracer
}

// NewReasoningScorer creates a reasoning scorer. The client may be nil
// when the process runs without a reasoning service; the capability
// source is then expected to report the fallback tag.
func NewReasoningScorer(client ports.ReasoningClient, caps ports.CapabilitySource) (*ReasoningScorer, error) {
	if caps == nil {
		return nil, fmt.Errorf("capability source cannot be nil")
	}
	return &ReasoningScorer{
		client: client,
		caps:   caps,
		tracer: otel.Tracer("reasoning-scorer"),
	}, nil
}

// Assess produces the reasoning signal and the narrative feedback for
// one evaluation.
func (rs *ReasoningScorer) Assess(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc, grounding Grounding) (domain.SignalScore, Narrative, error) {
	ctx, span := rs.tracer.Start(ctx, "ReasoningScorer.Assess",
		trace.WithAttributes(
			attribute.Int("grounding.matched", len(grounding.Matched)),
			attribute.Int("grounding.missing", len(grounding.Missing)),
		),
	)
	defer span.End()

	if rs.caps.Tag(domain.ServiceReasoning) == domain.CapabilityPrimary && rs.client != nil {
		score, narrative, err := rs.assessPrimary(ctx, role, candidate, grounding)
		if err == nil {
			span.SetAttributes(attribute.Float64("reasoning.score", score.Value))
			return score, narrative, nil
		}
		if !ports.IsDegradable(err) {
			span.RecordError(err)
			return domain.SignalScore{}, Narrative{}, err
		}
		span.AddEvent("reasoning degraded to rule-based fallback")
	}

	score, narrative := rs.assessFallback(role, grounding)
	span.SetAttributes(attribute.Float64("reasoning.score", score.Value))
	return score, narrative, nil
}

func (rs *ReasoningScorer) assessPrimary(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc, grounding Grounding) (domain.SignalScore, Narrative, error) {
	assessment, err := rs.client.Assess(ctx, ports.AssessmentRequest{
		RoleTitle:     role.Title,
		RoleText:      role.RawText,
		CandidateText: candidate.RawText,
		MatchedSkills: grounding.Matched,
		MissingSkills: grounding.Missing,
	})
	if err != nil {
		return domain.SignalScore{}, Narrative{}, err
	}

	score := domain.SignalScore{
		Dimension:  domain.DimensionReasoning,
		Value:      domain.ClampScore(assessment.Score),
		Capability: domain.CapabilityPrimary,
		Detail:     "generative fit assessment",
	}
	narrative := Narrative{
		Feedback:   assessment.Feedback,
		Strengths:  assessment.Strengths,
		Weaknesses: assessment.Weaknesses,
	}
	return score, narrative, nil
}

// assessFallback reuses the lexical coverage as the reasoning score and
// derives the narrative from the grounding facts. Identical inputs
// always produce identical output.
func (rs *ReasoningScorer) assessFallback(role *domain.RoleSpec, grounding Grounding) (domain.SignalScore, Narrative) {
	score := domain.SignalScore{
		Dimension:  domain.DimensionReasoning,
		Value:      domain.ClampScore(grounding.LexicalScore),
		Capability: domain.CapabilityFallback,
		Detail:     "rule-based assessment from skill coverage",
	}
	narrative := Narrative{
		Feedback:   BuildFallbackFeedback(role, grounding),
		Strengths:  DeriveStrengths(grounding),
		Weaknesses: DeriveWeaknesses(grounding),
	}
	return score, narrative
}
