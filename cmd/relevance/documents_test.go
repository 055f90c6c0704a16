package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRoleSpecJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "role.json", `{
		"title": "Backend Engineer",
		"must_have": ["go", "postgresql"],
		"good_to_have": ["kubernetes"],
		"raw_text": "We are hiring a backend engineer."
	}`)

	role, err := loadRoleSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", role.Title)
	assert.Equal(t, []string{"go", "postgresql"}, role.MustHave)
}

func TestLoadRoleSpecYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "role.yaml", `
title: Backend Engineer
must_have:
  - go
raw_text: We are hiring.
`)

	role, err := loadRoleSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", role.Title)
	assert.Equal(t, []string{"go"}, role.MustHave)
}

func TestLoadRoleSpecRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "role.json", `{"title": "x", "raw_text": "y", "nope": 1}`)

	_, err := loadRoleSpec(path)
	assert.Error(t, err)
}

func TestLoadCandidateDoc(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "resume.json", `{
		"skills": ["go"],
		"raw_text": "An engineer.",
		"experience": [{"title": "Engineer", "company": "Acme"}]
	}`)

	candidate, err := loadCandidateDoc(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, candidate.Skills)
	require.Len(t, candidate.Experience, 1)
	assert.Equal(t, "Acme", candidate.Experience[0].Company)
}

func TestListResumeFilesOrdersAndFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.json", "{}")
	writeFile(t, dir, "a.yaml", "{}")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := listResumeFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.yaml"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.json"), files[1])
}
