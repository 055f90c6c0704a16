package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

func TestBuildFallbackFeedback(t *testing.T) {
	role := &domain.RoleSpec{Title: "Backend Engineer", RawText: "text"}

	tests := []struct {
		name      string
		grounding Grounding
		contains  []string
	}{
		{
			name: "strong match with no gaps",
			grounding: Grounding{
				Matched:      []string{"go", "postgresql"},
				LexicalScore: 95,
			},
			contains: []string{"strong match", "All required skills are present"},
		},
		{
			name: "moderate match names missing skills",
			grounding: Grounding{
				Matched:      []string{"go"},
				Missing:      []string{"kubernetes", "terraform"},
				LexicalScore: 60,
			},
			contains: []string{"moderate match", "kubernetes and terraform"},
		},
		{
			name: "weak match",
			grounding: Grounding{
				Missing:      []string{"go", "kubernetes", "postgresql"},
				LexicalScore: 20,
			},
			contains: []string{"small portion", "go, kubernetes and postgresql"},
		},
		{
			name: "structural tips are appended",
			grounding: Grounding{
				LexicalScore:   90,
				Matched:        []string{"go"},
				StructuralTips: []string{"Remove tables and present the content as plain bulleted text."},
			},
			contains: []string{"Formatting:", "Remove tables"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := BuildFallbackFeedback(role, tt.grounding)
			assert.NotEmpty(t, feedback)
			for _, want := range tt.contains {
				assert.Contains(t, feedback, want)
			}
		})
	}
}

func TestBuildFallbackFeedbackNeverEmpty(t *testing.T) {
	feedback := BuildFallbackFeedback(&domain.RoleSpec{Title: "Role"}, Grounding{})
	assert.NotEmpty(t, feedback)
}

func TestDeriveStrengthsAndWeaknesses(t *testing.T) {
	grounding := Grounding{
		Matched: []string{"go"},
		Missing: []string{"kubernetes"},
	}

	strengths := DeriveStrengths(grounding)
	assert.Equal(t, []string{"Demonstrated experience with go"}, strengths)

	weaknesses := DeriveWeaknesses(grounding)
	assert.Equal(t, []string{"No evidence of kubernetes experience"}, weaknesses)

	assert.Nil(t, DeriveStrengths(Grounding{}))
	assert.Nil(t, DeriveWeaknesses(Grounding{}))
}

func TestHumanJoin(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "empty", items: nil, want: ""},
		{name: "single", items: []string{"go"}, want: "go"},
		{name: "pair", items: []string{"go", "sql"}, want: "go and sql"},
		{name: "three", items: []string{"go", "sql", "aws"}, want: "go, sql and aws"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanJoin(tt.items))
		})
	}
}
