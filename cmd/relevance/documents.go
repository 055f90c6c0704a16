package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

// loadRoleSpec reads a role specification from a JSON or YAML file.
func loadRoleSpec(path string) (*domain.RoleSpec, error) {
	var role domain.RoleSpec
	if err := loadDocument(path, &role); err != nil {
		return nil, fmt.Errorf("loading role spec: %w", err)
	}
	return &role, nil
}

// loadCandidateDoc reads a candidate document from a JSON or YAML file.
func loadCandidateDoc(path string) (*domain.CandidateDoc, error) {
	var candidate domain.CandidateDoc
	if err := loadDocument(path, &candidate); err != nil {
		return nil, fmt.Errorf("loading candidate doc: %w", err)
	}
	return &candidate, nil
}

// loadDocument decodes a file into out, choosing the codec by
// extension. Unknown extensions try JSON first, then YAML.
func loadDocument(path string, out any) (err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return decodeJSONStrict(data, out)
	case ".yaml", ".yml":
		return decodeYAMLStrict(data, out)
	default:
		if jsonErr := decodeJSONStrict(data, out); jsonErr == nil {
			return nil
		}
		return decodeYAMLStrict(data, out)
	}
}

func decodeJSONStrict(data []byte, out any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func decodeYAMLStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	return decoder.Decode(out)
}

// writeResult marshals v as indented JSON to stdout, or to the given
// file when path is non-empty.
func writeResult(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
