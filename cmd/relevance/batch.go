package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nkatyal/resume-relevance/internal/domain"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Score a directory of resumes against one role specification",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return batch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("role", "r", "", "role specification file (JSON or YAML)")
	batchCmd.Flags().StringP("resumes", "c", "", "directory of candidate document files")
	batchCmd.Flags().StringP("output", "o", "", "write the results to a file instead of stdout")
	if err := batchCmd.MarkFlagRequired("role"); err != nil {
		log.Fatalf("marking role flag required: %v", err)
	}
	if err := batchCmd.MarkFlagRequired("resumes"); err != nil {
		log.Fatalf("marking resumes flag required: %v", err)
	}
}

// batchEntry is one line of the batch output: the source file paired
// with its result or error.
type batchEntry struct {
	File   string                   `json:"file"`
	Result *domain.EvaluationResult `json:"result,omitempty"`
	Error  string                   `json:"error,omitempty"`
}

func batch(cmd *cobra.Command) error {
	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	config, err := loadEngineConfig()
	if err != nil {
		return err
	}

	eng, err := buildEngine(config, logger)
	if err != nil {
		return err
	}

	rolePath, _ := cmd.Flags().GetString("role")
	resumesDir, _ := cmd.Flags().GetString("resumes")
	outputPath, _ := cmd.Flags().GetString("output")

	role, err := loadRoleSpec(rolePath)
	if err != nil {
		return err
	}

	files, err := listResumeFiles(resumesDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no resume files found in %s", resumesDir)
	}

	// Load failures occupy their slot as a nil candidate so output
	// order still matches file order.
	candidates := make([]*domain.CandidateDoc, len(files))
	loadErrs := make([]error, len(files))
	for i, f := range files {
		candidates[i], loadErrs[i] = loadCandidateDoc(f)
	}

	items, err := eng.EvaluateBatch(cmd.Context(), role, candidates)
	if err != nil {
		return fmt.Errorf("batch evaluation failed: %w", err)
	}

	entries := make([]batchEntry, len(files))
	for i, item := range items {
		entries[i] = batchEntry{File: files[i]}
		switch {
		case loadErrs[i] != nil:
			entries[i].Error = loadErrs[i].Error()
		case item.Err != nil:
			entries[i].Error = item.Err.Error()
		default:
			entries[i].Result = item.Result
		}
	}

	logger.Info("batch complete",
		zap.Int("total", len(entries)),
		zap.Int("failed", countFailed(entries)),
	)
	return writeResult(outputPath, entries)
}

// listResumeFiles returns the JSON and YAML files of a directory in
// lexical order.
func listResumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading resumes directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func countFailed(entries []batchEntry) int {
	n := 0
	for _, e := range entries {
		if e.Error != "" {
			n++
		}
	}
	return n
}
