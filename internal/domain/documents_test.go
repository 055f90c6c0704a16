package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleSpecValidate(t *testing.T) {
	tests := []struct {
		name      string
		role      RoleSpec
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid role",
			role: RoleSpec{
				Title:    "Backend Engineer",
				MustHave: []string{"go", "postgresql"},
				RawText:  "We are hiring a backend engineer.",
			},
		},
		{
			name: "no skill requirements is still valid",
			role: RoleSpec{
				Title:   "Generalist",
				RawText: "Do a bit of everything.",
			},
		},
		{
			name:      "missing title",
			role:      RoleSpec{RawText: "text"},
			wantError: true,
			errorMsg:  "title",
		},
		{
			name:      "missing raw text",
			role:      RoleSpec{Title: "Engineer"},
			wantError: true,
			errorMsg:  "raw text",
		},
		{
			name: "blank must-have token",
			role: RoleSpec{
				Title:    "Engineer",
				MustHave: []string{"go", "  "},
				RawText:  "text",
			},
			wantError: true,
			errorMsg:  "must_have",
		},
		{
			name: "blank good-to-have token",
			role: RoleSpec{
				Title:      "Engineer",
				GoodToHave: []string{""},
				RawText:    "text",
			},
			wantError: true,
			errorMsg:  "good_to_have",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.role.Validate()
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestCandidateDocValidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate CandidateDoc
		wantError bool
	}{
		{
			name: "valid candidate",
			candidate: CandidateDoc{
				Skills:  []string{"go"},
				RawText: "An engineer with Go experience.",
			},
		},
		{
			name:      "missing raw text",
			candidate: CandidateDoc{Skills: []string{"go"}},
			wantError: true,
		},
		{
			name: "blank skill token",
			candidate: CandidateDoc{
				Skills:  []string{"go", " "},
				RawText: "text",
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.candidate.Validate()
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestValidationErrorAggregatesMessages(t *testing.T) {
	role := RoleSpec{MustHave: []string{" "}}
	err := role.Validate()
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.GreaterOrEqual(t, len(ve.Errors), 3)
}
