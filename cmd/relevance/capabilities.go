package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "Probe the configured backing services and report the capability mode",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return capabilities(cmd)
	},
}

func init() {
	rootCmd.AddCommand(capabilitiesCmd)

	capabilitiesCmd.Flags().Bool("reset", false, "clear the cached mode and probe again")
}

// capabilityStatus is the JSON shape of the capabilities report.
type capabilityStatus struct {
	Embedding string `json:"embedding"`
	Reasoning string `json:"reasoning"`
	Degraded  bool   `json:"degraded"`
}

func capabilities(cmd *cobra.Command) error {
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

	resolver := eng.Resolver()
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		resolver.Reset()
	}
	mode := resolver.Resolve(cmd.Context())

	return writeResult("", capabilityStatus{
		Embedding: string(mode.Embedding),
		Reasoning: string(mode.Reasoning),
		Degraded:  mode.Degraded(),
	})
}
