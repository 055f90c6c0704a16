package domain

import (
	"math"
	"time"
)

// Dimension names one of the scoring signals produced during an
// evaluation.
type Dimension string

// The four scoring dimensions produced for every evaluation.
const (
	// DimensionLexical is the exact/fuzzy token-level skill match signal.
	DimensionLexical Dimension = "lexical"

	// DimensionSemantic is the vector-similarity signal over the full
	// document texts.
	DimensionSemantic Dimension = "semantic"

	// DimensionStructural is the document structure/formatting signal.
	DimensionStructural Dimension = "structural"

	// DimensionReasoning is the generative-reasoning fit judgment signal.
	DimensionReasoning Dimension = "reasoning"
)

// SignalScore is one scored dimension of an evaluation. It records which
// implementation path produced the value so that scores computed in
// degraded mode remain distinguishable from primary-path scores.
// A SignalScore is produced once per evaluation and never mutated.
type SignalScore struct {
	// Dimension names the signal.
	Dimension Dimension `json:"dimension"`

	// Value is the score in [0,100].
	Value float64 `json:"value"`

	// Capability records whether the primary or the fallback
	// implementation produced this score.
	Capability CapabilityTag `json:"capability"`

	// Detail is a short human-readable note about how the value was
	// computed, e.g. "cosine similarity 0.83" or "tf-idf fallback".
	Detail string `json:"detail,omitempty"`
}

// Verdict is the categorical fit classification derived from the final
// score.
type Verdict string

// Verdict values form a total, non-overlapping partition of [0,100].
const (
	VerdictHigh   Verdict = "High"
	VerdictMedium Verdict = "Medium"
	VerdictLow    Verdict = "Low"
)

// VerdictThresholds holds the score cut-offs for the verdict mapping.
// A final score >= High maps to VerdictHigh, a score >= Medium maps to
// VerdictMedium, and anything below maps to VerdictLow.
type VerdictThresholds struct {
	High   float64 `json:"high" yaml:"high"`
	Medium float64 `json:"medium" yaml:"medium"`
}

// DefaultVerdictThresholds returns the documented default cut-offs:
// 80 for High and 60 for Medium.
func DefaultVerdictThresholds() VerdictThresholds {
	return VerdictThresholds{High: 80, Medium: 60}
}

// VerdictFor maps a final score to its verdict. The mapping is a pure,
// total function: every score produces exactly one verdict.
func VerdictFor(score float64, t VerdictThresholds) Verdict {
	switch {
	case score >= t.High:
		return VerdictHigh
	case score >= t.Medium:
		return VerdictMedium
	default:
		return VerdictLow
	}
}

// ClampScore bounds a score to [0,100] and maps NaN to 0.
// Every score the engine emits passes through this function.
func ClampScore(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(100, math.Max(0, v))
}

// GapReport records requirements present in the role specification but
// absent from the candidate document. It is derived solely from the
// lexical matcher's missing sets and the role's qualification text, and
// is therefore stable regardless of which backing services are
// reachable.
type GapReport struct {
	// MissingMustHave lists required skills the candidate lacks,
	// in role-specification order.
	MissingMustHave []string `json:"missing_must_have"`

	// MissingGoodToHave lists preferred skills the candidate lacks,
	// in role-specification order.
	MissingGoodToHave []string `json:"missing_good_to_have"`

	// MissingQualifications lists qualification keywords found in the
	// role's qualification text but absent from the candidate's text.
	MissingQualifications []string `json:"missing_qualifications,omitempty"`

	// MissingCertifications lists certifications the role asks for that
	// the resume does not mention.
	MissingCertifications []string `json:"missing_certifications,omitempty"`
}

// Empty reports whether the gap report contains no missing elements.
func (g GapReport) Empty() bool {
	return len(g.MissingMustHave) == 0 &&
		len(g.MissingGoodToHave) == 0 &&
		len(g.MissingQualifications) == 0 &&
		len(g.MissingCertifications) == 0
}

// EvaluationResult is the complete outcome of scoring one candidate
// document against one role specification. It is created once per
// evaluation, never mutated afterward, and ownership passes to the
// caller for persistence.
type EvaluationResult struct {
	// ID uniquely identifies this evaluation (a UUID).
	ID string `json:"id"`

	// Lexical, Semantic, Structural and Reasoning are the four signal
	// scores that fed the aggregation.
	Lexical    SignalScore `json:"lexical"`
	Semantic   SignalScore `json:"semantic"`
	Structural SignalScore `json:"structural"`
	Reasoning  SignalScore `json:"reasoning"`

	// FinalScore is the weighted aggregate in [0,100].
	FinalScore float64 `json:"final_score"`

	// Verdict is the categorical classification of FinalScore.
	Verdict Verdict `json:"verdict"`

	// Gaps lists requirements the candidate does not cover.
	Gaps GapReport `json:"gaps"`

	// Feedback is the human-readable improvement feedback. It is never
	// empty, regardless of backing-service health.
	Feedback string `json:"feedback"`

	// Strengths and Weaknesses summarize what helped and hurt the fit.
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`

	// StructuralTips lists formatting improvements in the order their
	// defects were detected.
	StructuralTips []string `json:"structural_tips,omitempty"`

	// EvaluatedAt records when this result was created.
	EvaluatedAt time.Time `json:"evaluated_at"`
}

// Signals returns the four signal scores keyed by dimension, for
// callers that iterate rather than address fields directly.
func (r *EvaluationResult) Signals() map[Dimension]SignalScore {
	return map[Dimension]SignalScore{
		DimensionLexical:    r.Lexical,
		DimensionSemantic:   r.Semantic,
		DimensionStructural: r.Structural,
		DimensionReasoning:  r.Reasoning,
	}
}
