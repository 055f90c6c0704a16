package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Python", want: "python"},
		{name: "trims whitespace", input: "  go  ", want: "go"},
		{name: "collapses internal whitespace", input: "machine   learning", want: "machine learning"},
		{name: "preserves punctuation", input: "C++", want: "c++"},
		{name: "empty stays empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToken(tt.input))
		})
	}
}

func TestNormalizeTokens(t *testing.T) {
	got := NormalizeTokens([]string{"Go", "  ", "PYTHON", "go", "SQL"})
	assert.Equal(t, []string{"go", "python", "sql"}, got)
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stopwords",
			input: "the quick fox and the dog",
			want:  []string{"quick", "fox", "dog"},
		},
		{
			name:  "keeps special skill tokens",
			input: "experience with c++ and c#",
			want:  []string{"experience", "c++", "c#"},
		},
		{
			name:  "drops single letters",
			input: "plan b for launch",
			want:  []string{"plan", "launch"},
		},
		{
			name:  "empty text",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestStemCollapsesWordForms(t *testing.T) {
	assert.Equal(t, stem("databases"), stem("database"))
	assert.Equal(t, stem("engineering"), stem("engineer"))
	assert.Equal(t, "go", stem("go"))
}
