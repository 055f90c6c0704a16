package scorers

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// StructuralDefect is one machine-parseability problem found in a
// resume.
type StructuralDefect struct {
	// Code identifies the defect kind, e.g. "tables" or "missing_skills".
	Code string `json:"code"`

	// Deduction is the number of points this defect removed.
	Deduction float64 `json:"deduction"`

	// Tip is the actionable fix for this defect.
	Tip string `json:"tip"`
}

// StructuralReport is the output of the structural check: the residual
// score after deductions plus the defects in detection order.
type StructuralReport struct {
	// Score is 100 minus the deductions, clamped to [0,100].
	Score float64 `json:"score"`

	// Defects lists what was found, in check order.
	Defects []StructuralDefect `json:"defects"`
}

// Tips returns the defect tips in detection order.
func (r *StructuralReport) Tips() []string {
	tips := make([]string, 0, len(r.Defects))
	for _, d := range r.Defects {
		tips = append(tips, d.Tip)
	}
	return tips
}

// structuralCheck is one deduction rule. Checks run in declaration
// order, so reports and tips are deterministic for a given document.
type structuralCheck struct {
	code      string
	deduction float64
	tip       string
	applies   func(*domain.CandidateDoc) bool
}

var (
	tableMarkers = regexp.MustCompile(`(?i)\|.*\||\t.*\t|<table|\+[-=]{3,}\+`)
	imageMarkers = regexp.MustCompile(`(?i)\[image\]|<img|\.(png|jpe?g|gif|svg)\b`)
	// Glyphs that survive text extraction from decorated documents:
	// box-drawing characters, geometric bullets, and private-use icons.
	decorationMarkers = regexp.MustCompile("[─-╿■-◿-]")
	specialCharRuns   = regexp.MustCompile(`[*#~^]{3,}|[_=]{5,}`)
	columnGaps        = regexp.MustCompile(`(?m)\S {6,}\S.*\n.*\S {6,}\S`)

	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.]+`)
	phonePattern = regexp.MustCompile(`(\+?\d[\d\s().-]{7,}\d)`)
	linkPattern  = regexp.MustCompile(`(?i)linkedin\.com/|github\.com/|https?://`)

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{4}`),
		regexp.MustCompile(`\b\d{1,2}/\d{4}`),
		regexp.MustCompile(`\b\d{4}-\d{2}\b`),
	}
)

// structuralChecks are the deduction rules, ordered by severity. The
// deductions sum past 100 by design; a resume that trips everything
// floors at zero.
var structuralChecks = []structuralCheck{
	{
		code:      "tables",
		deduction: 30,
		tip:       "Remove tables and present the content as plain bulleted text.",
		applies: func(c *domain.CandidateDoc) bool {
			return tableMarkers.MatchString(c.RawText)
		},
	},
	{
		code:      "images",
		deduction: 25,
		tip:       "Remove images and graphics; describe the content in text instead.",
		applies: func(c *domain.CandidateDoc) bool {
			return imageMarkers.MatchString(c.RawText)
		},
	},
	{
		code:      "missing_experience",
		deduction: 25,
		tip:       "Add a clearly labeled work experience section with dates and titles.",
		applies: func(c *domain.CandidateDoc) bool {
			return len(c.Experience) == 0 && !hasSectionHeading(c.RawText, "experience", "employment", "work history")
		},
	},
	{
		code:      "complex_formatting",
		deduction: 20,
		tip:       "Replace decorative characters and dividers with simple text formatting.",
		applies: func(c *domain.CandidateDoc) bool {
			return decorationMarkers.MatchString(c.RawText)
		},
	},
	{
		code:      "columns",
		deduction: 20,
		tip:       "Use a single-column layout; multi-column text scrambles during extraction.",
		applies: func(c *domain.CandidateDoc) bool {
			return columnGaps.MatchString(c.RawText)
		},
	},
	{
		code:      "missing_skills",
		deduction: 20,
		tip:       "Add a dedicated skills section listing your technical skills.",
		applies: func(c *domain.CandidateDoc) bool {
			return len(c.Skills) == 0 && !hasSectionHeading(c.RawText, "skills", "technologies", "competencies")
		},
	},
	{
		code:      "special_characters",
		deduction: 15,
		tip:       "Remove runs of special characters; they confuse automated parsers.",
		applies: func(c *domain.CandidateDoc) bool {
			return specialCharRuns.MatchString(c.RawText)
		},
	},
	{
		code:      "missing_education",
		deduction: 15,
		tip:       "Add an education section with your degree and institution.",
		applies: func(c *domain.CandidateDoc) bool {
			return len(c.Education) == 0 && !hasSectionHeading(c.RawText, "education", "academic")
		},
	},
	{
		code:      "inconsistent_dates",
		deduction: 10,
		tip:       "Use one date format throughout, e.g. \"Jan 2021 - Mar 2023\".",
		applies: func(c *domain.CandidateDoc) bool {
			styles := 0
			for _, p := range datePatterns {
				if p.MatchString(c.RawText) {
					styles++
				}
			}
			return styles > 1
		},
	},
	{
		code:      "missing_contact",
		deduction: 10,
		tip:       "Include at least two contact methods, such as an email address and a phone number.",
		applies: func(c *domain.CandidateDoc) bool {
			methods := 0
			if emailPattern.MatchString(c.RawText) {
				methods++
			}
			if phonePattern.MatchString(c.RawText) {
				methods++
			}
			if linkPattern.MatchString(c.RawText) {
				methods++
			}
			return methods < 2
		},
	},
}

// hasSectionHeading reports whether any line of the text is a short
// heading containing one of the given keywords.
func hasSectionHeading(text string, keywords ...string) bool {
	for _, line := range strings.Split(folder.String(text), "\n") {
		line = strings.TrimSpace(strings.Trim(line, ":-#*= "))
		if line == "" || len(line) > 40 {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(line, kw) {
				return true
			}
		}
	}
	return false
}

// StructuralScorer checks how well a resume survives automated parsing.
// It runs a fixed, ordered list of deduction rules against the document
// and reports the defects with actionable tips. The check is pure and
// requires no backing service, so it has no degraded mode.
//
// The scorer is stateless and thread-safe for concurrent execution.
type StructuralScorer struct {
	tracer trace.Tracer
}

// NewStructuralScorer creates a structural scorer.
func NewStructuralScorer() *StructuralScorer {
	return &StructuralScorer{tracer: otel.Tracer("structural-scorer")}
}

// Check runs the deduction rules against the candidate document.
func (ss *StructuralScorer) Check(ctx context.Context, candidate *domain.CandidateDoc) (*StructuralReport, error) {
	_, span := ss.tracer.Start(ctx, "StructuralScorer.Check",
		trace.WithAttributes(attribute.Int("candidate.text_len", len(candidate.RawText))),
	)
	defer span.End()

	if len(candidate.RawText) > MaxTextLength {
		err := fmt.Errorf("%w: limit %d bytes", ErrTextTooLong, MaxTextLength)
		span.RecordError(err)
		return nil, err
	}

	report := &StructuralReport{Defects: []StructuralDefect{}}
	total := 0.0
	for _, check := range structuralChecks {
		if !check.applies(candidate) {
			continue
		}
		report.Defects = append(report.Defects, StructuralDefect{
			Code:      check.code,
			Deduction: check.deduction,
			Tip:       check.tip,
		})
		total += check.deduction
	}
	report.Score = domain.ClampScore(100 - total)

	span.SetAttributes(
		attribute.Float64("structural.score", report.Score),
		attribute.Int("structural.defects", len(report.Defects)),
	)
	return report, nil
}
