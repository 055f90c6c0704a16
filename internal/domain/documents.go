// Package domain contains pure, dependency-free domain models and types
// for the relevance engine.
package domain

import "strings"

// RoleSpec describes the requirements of a single open role.
// It is produced by an upstream job-description parser and is immutable
// once constructed; the engine never mutates it.
type RoleSpec struct {
	// Title is the role title, e.g. "Senior Backend Engineer".
	Title string `json:"title" yaml:"title"`

	// MustHave lists the required skill tokens in priority order.
	// Tokens are expected to be normalized (case-folded, trimmed).
	MustHave []string `json:"must_have" yaml:"must_have"`

	// GoodToHave lists the preferred skill tokens in priority order.
	GoodToHave []string `json:"good_to_have" yaml:"good_to_have"`

	// Qualifications holds free-text qualification requirements
	// (degrees, certifications, years of experience).
	Qualifications string `json:"qualifications,omitempty" yaml:"qualifications"`

	// Certifications lists certifications the role asks for explicitly.
	Certifications []string `json:"certifications,omitempty" yaml:"certifications"`

	// RawText is the full normalized job-description text used for
	// semantic comparison and reasoning context.
	RawText string `json:"raw_text" yaml:"raw_text"`
}

// Validate checks that the role specification carries the fields the
// engine requires. A role with no requirements at all is still valid;
// the lexical scorer defines that case as vacuously satisfied.
func (r *RoleSpec) Validate() error {
	ve := NewValidationError("role spec")
	if strings.TrimSpace(r.Title) == "" {
		ve.AddError("title must not be empty")
	}
	if strings.TrimSpace(r.RawText) == "" {
		ve.AddError("raw text must not be empty")
	}
	for i, s := range r.MustHave {
		if strings.TrimSpace(s) == "" {
			ve.AddError(sprintfTokenError("must_have", i))
		}
	}
	for i, s := range r.GoodToHave {
		if strings.TrimSpace(s) == "" {
			ve.AddError(sprintfTokenError("good_to_have", i))
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

// EducationEntry is a single education record extracted from a resume.
type EducationEntry struct {
	// Degree is the degree or program name.
	Degree string `json:"degree" yaml:"degree"`

	// Institution is the school or university name.
	Institution string `json:"institution" yaml:"institution"`

	// Year is the completion year as it appeared in the document.
	// It may be empty when extraction could not find one.
	Year string `json:"year,omitempty" yaml:"year"`
}

// ExperienceEntry is a single work-experience record extracted from a
// resume.
type ExperienceEntry struct {
	// Title is the position title.
	Title string `json:"title" yaml:"title"`

	// Company is the employer name.
	Company string `json:"company" yaml:"company"`

	// Duration is the date range as it appeared in the document,
	// e.g. "Jan 2021 - Mar 2023".
	Duration string `json:"duration,omitempty" yaml:"duration"`

	// Summary is a short description of the work performed.
	Summary string `json:"summary,omitempty" yaml:"summary"`
}

// CandidateDoc is the parsed representation of a candidate's resume.
// It is produced by an upstream document extractor and is immutable once
// constructed; the engine never mutates it.
type CandidateDoc struct {
	// Skills lists the skill tokens extracted from the resume.
	Skills []string `json:"skills" yaml:"skills"`

	// Education lists the education entries found in the resume.
	Education []EducationEntry `json:"education,omitempty" yaml:"education"`

	// Experience lists the work-experience entries found in the resume.
	Experience []ExperienceEntry `json:"experience,omitempty" yaml:"experience"`

	// Certifications lists certifications found in the resume.
	Certifications []string `json:"certifications,omitempty" yaml:"certifications"`

	// RawText is the full normalized resume text. Structural checks and
	// semantic comparison operate on this text.
	RawText string `json:"raw_text" yaml:"raw_text"`
}

// Validate checks that the candidate document carries the fields the
// engine requires.
func (c *CandidateDoc) Validate() error {
	ve := NewValidationError("candidate doc")
	if strings.TrimSpace(c.RawText) == "" {
		ve.AddError("raw text must not be empty")
	}
	for i, s := range c.Skills {
		if strings.TrimSpace(s) == "" {
			ve.AddError(sprintfTokenError("skills", i))
		}
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}
