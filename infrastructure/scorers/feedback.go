package scorers

import (
	"fmt"
	"strings"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// Score bands for the rule-based feedback tone.
const (
	feedbackStrongBand   = 75.0
	feedbackModerateBand = 50.0
)

// BuildFallbackFeedback composes deterministic improvement feedback
// from the grounding facts. The output is never empty, even for a
// perfect match.
func BuildFallbackFeedback(role *domain.RoleSpec, grounding Grounding) string {
	var b strings.Builder

	switch {
	case grounding.LexicalScore >= feedbackStrongBand:
		fmt.Fprintf(&b, "Your profile is a strong match for the %s role.", role.Title)
	case grounding.LexicalScore >= feedbackModerateBand:
		fmt.Fprintf(&b, "Your profile is a moderate match for the %s role; closing the skill gaps below would strengthen it considerably.", role.Title)
	default:
		fmt.Fprintf(&b, "Your profile currently covers only a small portion of the %s role's requirements.", role.Title)
	}

	if len(grounding.Missing) > 0 {
		fmt.Fprintf(&b, " Gaining demonstrable experience with %s would have the biggest impact; add projects or certifications that show these skills in use.",
			humanJoin(grounding.Missing))
	} else if len(grounding.Matched) > 0 {
		b.WriteString(" All required skills are present; focus on quantifying your impact with these skills in each role.")
	}

	if len(grounding.StructuralTips) > 0 {
		b.WriteString(" Formatting: ")
		b.WriteString(strings.Join(grounding.StructuralTips, " "))
	}

	return b.String()
}

// DeriveStrengths lists the verified matched skills as strengths.
func DeriveStrengths(grounding Grounding) []string {
	if len(grounding.Matched) == 0 {
		return nil
	}
	strengths := make([]string, 0, len(grounding.Matched))
	for _, skill := range grounding.Matched {
		strengths = append(strengths, fmt.Sprintf("Demonstrated experience with %s", skill))
	}
	return strengths
}

// DeriveWeaknesses lists the verified missing required skills as
// weaknesses.
func DeriveWeaknesses(grounding Grounding) []string {
	if len(grounding.Missing) == 0 {
		return nil
	}
	weaknesses := make([]string, 0, len(grounding.Missing))
	for _, skill := range grounding.Missing {
		weaknesses = append(weaknesses, fmt.Sprintf("No evidence of %s experience", skill))
	}
	return weaknesses
}

// humanJoin joins items with commas and a final "and".
func humanJoin(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
