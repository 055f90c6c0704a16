// Package scorers provides the four signal scorers of the relevance
// engine: lexical skill matching, semantic text similarity, structural
// compatibility checking, and generative fit reasoning. Scorers are
// stateless and thread-safe; the engine runs them concurrently within
// one evaluation and across batch evaluations.
package scorers

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// Limits shared by all scorers.
const (
	// MaxTextLength bounds document text accepted by a scorer, in
	// bytes. Longer inputs are rejected as malformed rather than
	// silently truncated.
	MaxTextLength = 1 << 20

	// MaxSkillTokens bounds the number of skill tokens per document.
	MaxSkillTokens = 2000
)

// Common errors returned by scorers. Oversized input is a form of
// malformed input, so both limit errors unwrap to
// domain.ErrMalformedInput for caller-side classification.
var (
	// ErrTextTooLong is returned when document text exceeds MaxTextLength.
	ErrTextTooLong = fmt.Errorf("document text exceeds maximum length: %w", domain.ErrMalformedInput)

	// ErrTooManySkills is returned when a token list exceeds MaxSkillTokens.
	ErrTooManySkills = fmt.Errorf("too many skill tokens: %w", domain.ErrMalformedInput)
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
