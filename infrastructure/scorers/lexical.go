package scorers

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// TokenMatch records how one required or preferred skill was satisfied.
type TokenMatch struct {
	// Role is the role-specification token, normalized.
	Role string `json:"role"`

	// Candidate is the candidate token that satisfied it, normalized.
	Candidate string `json:"candidate"`

	// Similarity is the match strength in [0,1]; 1.0 for exact matches.
	Similarity float64 `json:"similarity"`
}

// MatchReport is the full output of the lexical matcher. The missing
// sets preserve role-specification order so downstream gap reports and
// reasoning prompts stay deterministic.
type MatchReport struct {
	// Score is the weighted coverage in [0,100].
	Score float64 `json:"score"`

	MatchedMustHave   []TokenMatch `json:"matched_must_have"`
	MissingMustHave   []string     `json:"missing_must_have"`
	MatchedGoodToHave []TokenMatch `json:"matched_good_to_have"`
	MissingGoodToHave []string     `json:"missing_good_to_have"`
}

// MatchedTokens returns the normalized role tokens that were satisfied,
// must-have first, preserving role order.
func (r *MatchReport) MatchedTokens() []string {
	out := make([]string, 0, len(r.MatchedMustHave)+len(r.MatchedGoodToHave))
	for _, m := range r.MatchedMustHave {
		out = append(out, m.Role)
	}
	for _, m := range r.MatchedGoodToHave {
		out = append(out, m.Role)
	}
	return out
}

// LexicalConfig defines the configuration for the lexical scorer.
type LexicalConfig struct {
	// FuzzyThreshold is the minimum similarity (0.0-1.0) for a fuzzy
	// token match. Pairs below it count as missing.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" json:"fuzzy_threshold" validate:"min=0,max=1"`

	// GoodToHaveWeight is the weight of a preferred skill relative to a
	// required one in the coverage formula.
	GoodToHaveWeight float64 `yaml:"good_to_have_weight" json:"good_to_have_weight" validate:"min=0,max=1"`
}

// DefaultLexicalConfig returns the documented defaults: fuzzy threshold
// 0.8 and preferred skills at half the weight of required ones.
func DefaultLexicalConfig() LexicalConfig {
	return LexicalConfig{
		FuzzyThreshold:   0.8,
		GoodToHaveWeight: 0.5,
	}
}

// LexicalScorer measures token-level skill coverage between a role
// specification and a candidate document. Matching is exact-first with
// a Levenshtein fuzzy fallback, so minor spelling variants ("postgres"
// vs "postgresql") still count. The scorer is deterministic for a fixed
// corpus state: the same inputs always produce the same report.
//
// The scorer holds no mutable state of its own and is thread-safe for
// concurrent execution.
type LexicalScorer struct {
	config LexicalConfig
	corpus *RoleCorpus
	tracer trace.Tracer
}

// NewLexicalScorer creates a lexical scorer with the given
// configuration. The corpus supplies inverse-document-frequency weights
// so rare skills count for more than common ones; a nil corpus weighs
// every skill equally. Returns an error if configuration validation
// fails.
func NewLexicalScorer(config LexicalConfig, corpus *RoleCorpus) (*LexicalScorer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("lexical configuration validation failed: %w", err)
	}
	return &LexicalScorer{
		config: config,
		corpus: corpus,
		tracer: otel.Tracer("lexical-scorer"),
	}, nil
}

// Match computes weighted skill coverage. A role with no skill
// requirements is vacuously satisfied and scores 100. Each skill token
// carries its corpus IDF weight (1.0 without a corpus), good-to-have
// tokens additionally scaled by GoodToHaveWeight, and the score is
//
//	100 * matchedWeight / totalWeight
func (ls *LexicalScorer) Match(ctx context.Context, role *domain.RoleSpec, candidate *domain.CandidateDoc) (*MatchReport, error) {
	_, span := ls.tracer.Start(ctx, "LexicalScorer.Match",
		trace.WithAttributes(
			attribute.Int("role.must_have", len(role.MustHave)),
			attribute.Int("role.good_to_have", len(role.GoodToHave)),
			attribute.Int("candidate.skills", len(candidate.Skills)),
		),
	)
	defer span.End()

	if len(role.MustHave)+len(role.GoodToHave) > MaxSkillTokens {
		err := fmt.Errorf("%w: role lists %d tokens, limit %d",
			ErrTooManySkills, len(role.MustHave)+len(role.GoodToHave), MaxSkillTokens)
		span.RecordError(err)
		return nil, err
	}
	if len(candidate.Skills) > MaxSkillTokens {
		err := fmt.Errorf("%w: candidate lists %d tokens, limit %d",
			ErrTooManySkills, len(candidate.Skills), MaxSkillTokens)
		span.RecordError(err)
		return nil, err
	}

	candidateTokens := NormalizeTokens(candidate.Skills)
	report := &MatchReport{
		MatchedMustHave:   []TokenMatch{},
		MissingMustHave:   []string{},
		MatchedGoodToHave: []TokenMatch{},
		MissingGoodToHave: []string{},
	}

	var matchedWeight, totalWeight float64
	for _, token := range NormalizeTokens(role.MustHave) {
		wt := ls.tokenWeight(token)
		totalWeight += wt
		if m, ok := ls.matchOne(token, candidateTokens); ok {
			report.MatchedMustHave = append(report.MatchedMustHave, m)
			matchedWeight += wt
		} else {
			report.MissingMustHave = append(report.MissingMustHave, token)
		}
	}
	for _, token := range NormalizeTokens(role.GoodToHave) {
		wt := ls.config.GoodToHaveWeight * ls.tokenWeight(token)
		totalWeight += wt
		if m, ok := ls.matchOne(token, candidateTokens); ok {
			report.MatchedGoodToHave = append(report.MatchedGoodToHave, m)
			matchedWeight += wt
		} else {
			report.MissingGoodToHave = append(report.MissingGoodToHave, token)
		}
	}

	if totalWeight == 0 {
		report.Score = 100
	} else {
		report.Score = domain.ClampScore(100 * matchedWeight / totalWeight)
	}

	span.SetAttributes(
		attribute.Float64("lexical.score", report.Score),
		attribute.Int("lexical.missing_must_have", len(report.MissingMustHave)),
	)
	return report, nil
}

// tokenWeight returns the IDF weight of one skill token. Multi-word
// skills take the mean weight of their terms. Without a corpus, or for
// a skill whose terms all reduce to stopwords, the weight is 1.0.
func (ls *LexicalScorer) tokenWeight(token string) float64 {
	if ls.corpus == nil || ls.corpus.Docs() == 0 {
		return 1.0
	}
	terms := Tokenize(token)
	if len(terms) == 0 {
		return 1.0
	}
	var sum float64
	for _, t := range terms {
		sum += ls.corpus.Weight(t)
	}
	return sum / float64(len(terms))
}

// matchOne finds the best candidate token for a role token. It returns
// the match only when the best similarity clears the fuzzy threshold.
func (ls *LexicalScorer) matchOne(roleToken string, candidateTokens []string) (TokenMatch, bool) {
	best := TokenMatch{Role: roleToken}
	for _, ct := range candidateTokens {
		sim := tokenSimilarity(roleToken, ct)
		if sim > best.Similarity {
			best.Similarity = sim
			best.Candidate = ct
		}
		if best.Similarity == 1.0 {
			break
		}
	}
	if best.Similarity >= ls.config.FuzzyThreshold && best.Similarity > 0 {
		return best, true
	}
	return TokenMatch{}, false
}

// tokenSimilarity scores a pair of normalized tokens in [0,1]. It takes
// the better of rune-level Levenshtein similarity and containment, so
// "postgres" still matches "postgresql" and "react" matches "react.js".
func tokenSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	lev := levenshteinSimilarity(a, b)

	// Containment of a whole token ("sql" inside "postgresql", "aws"
	// inside "aws lambda") counts as a partial match. Require length 3+
	// on the contained side to keep short tokens from matching wildly.
	contain := 0.0
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) >= 3 && strings.Contains(longer, shorter) {
		contain = float64(len(shorter)) / float64(len(longer))
	}

	if contain > lev {
		return contain
	}
	return lev
}

// levenshteinSimilarity converts edit distance to a similarity ratio
// over the longer token's rune length.
func levenshteinSimilarity(a, b string) float64 {
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}
