package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score one resume against a role specification",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return evaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("role", "r", "", "role specification file (JSON or YAML)")
	evaluateCmd.Flags().StringP("resume", "c", "", "candidate document file (JSON or YAML)")
	evaluateCmd.Flags().StringP("output", "o", "", "write the result to a file instead of stdout")
	if err := evaluateCmd.MarkFlagRequired("role"); err != nil {
		log.Fatalf("marking role flag required: %v", err)
	}
	if err := evaluateCmd.MarkFlagRequired("resume"); err != nil {
		log.Fatalf("marking resume flag required: %v", err)
	}
}

func evaluate(cmd *cobra.Command) error {
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
	resumePath, _ := cmd.Flags().GetString("resume")
	outputPath, _ := cmd.Flags().GetString("output")

	role, err := loadRoleSpec(rolePath)
	if err != nil {
		return err
	}
	candidate, err := loadCandidateDoc(resumePath)
	if err != nil {
		return err
	}

	result, err := eng.Evaluate(cmd.Context(), role, candidate)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	logger.Info("evaluation complete",
		zap.Float64("final_score", result.FinalScore),
		zap.String("verdict", string(result.Verdict)),
	)
	return writeResult(outputPath, result)
}
