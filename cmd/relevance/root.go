package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/nkatyal/resume-relevance/infrastructure/llm"
	"github.com/nkatyal/resume-relevance/infrastructure/middleware"
	"github.com/nkatyal/resume-relevance/internal/engine"
	"github.com/nkatyal/resume-relevance/internal/ports"
)

const app = "relevance"

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "relevance scores resumes against role specifications",
		Long: `relevance runs the resume relevance engine from the command line.
It combines lexical skill matching, semantic similarity, structural
checks, and generative reasoning into a single weighted score with a
High/Medium/Low verdict and a gap report.

Backing services are optional: without API keys every signal falls back
to its deterministic local implementation.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "engine config file (default is relevance.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json-logs", "j", false, "json format for logging")
	rootCmd.PersistentFlags().Bool("metrics", false, "register Prometheus metrics")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("json-logs", rootCmd.PersistentFlags().Lookup("json-logs")); err != nil {
		log.Fatalf("binding json-logs flag: %v", err)
	}
	if err := viper.BindPFlag("metrics", rootCmd.PersistentFlags().Lookup("metrics")); err != nil {
		log.Fatalf("binding metrics flag: %v", err)
	}

	viper.SetEnvPrefix("RELEVANCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func initConfig() {
	// Keys live in .env during local development; absence is fine.
	_ = godotenv.Load()
}

// newLogger builds the process logger from the global flags.
func newLogger() (*zap.Logger, error) {
	var cfg zap.Config
	if viper.GetBool("json-logs") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	if viper.GetBool("debug") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}

// loadEngineConfig reads the engine configuration file, or returns the
// defaults when no file is configured and none exists in the current
// directory.
func loadEngineConfig() (engine.Config, error) {
	path := cfgFile
	if path == "" {
		candidate := app + ".yaml"
		if _, err := os.Stat(candidate); err != nil {
			return engine.DefaultConfig(), nil
		}
		path = candidate
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return engine.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return engine.LoadConfig(data)
}

// buildEngine assembles the engine with whatever backing services the
// environment provides. Missing API keys mean the corresponding signal
// runs on its fallback.
func buildEngine(config engine.Config, logger *zap.Logger) (*engine.Engine, error) {
	var metrics ports.MetricsCollector
	if viper.GetBool("metrics") {
		metrics = middleware.NewPrometheusMetrics()
	}

	var embedder ports.Embedder
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		e, err := llm.NewOpenAIEmbedder(llm.EmbedderConfig{
			APIKey:  key,
			Timeout: config.ServiceTimeout.Std(),
		})
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
		embedder = e
		logger.Debug("embedding service configured", zap.String("model", llm.OpenAIDefaultEmbeddingModel))
	}

	reasoner, err := buildReasoner(config, metrics, logger)
	if err != nil {
		return nil, err
	}

	return engine.New(config, engine.Options{
		Embedder: embedder,
		Reasoner: reasoner,
		Metrics:  metrics,
		Logger:   logger,
	})
}

// buildReasoner picks the first reasoning provider with an API key in
// the environment, in openai, anthropic, google order.
func buildReasoner(config engine.Config, metrics ports.MetricsCollector, logger *zap.Logger) (ports.ReasoningClient, error) {
	providers := []struct {
		name   string
		envKey string
	}{
		{"openai", "OPENAI_API_KEY"},
		{"anthropic", "ANTHROPIC_API_KEY"},
		{"google", "GEMINI_API_KEY"},
	}

	for _, p := range providers {
		key := os.Getenv(p.envKey)
		if key == "" {
			continue
		}

		mw := []llm.Middleware{
			llm.RetryMiddleware(3, 500*time.Millisecond, 8*time.Second),
			llm.TimeoutMiddleware(config.ServiceTimeout.Std()),
		}
		if metrics != nil {
			mw = append(mw, llm.MetricsMiddleware(metrics))
		}

		client, err := llm.NewClient(p.name, llm.ClientConfig{
			APIKey:     key,
			Middleware: mw,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s client: %w", p.name, err)
		}

		reasoner, err := llm.NewFitReasoner(client, llm.DefaultFitReasonerConfig())
		if err != nil {
			return nil, fmt.Errorf("creating reasoner: %w", err)
		}
		logger.Debug("reasoning service configured",
			zap.String("provider", p.name),
			zap.String("model", client.GetModel()),
		)
		return reasoner, nil
	}
	return nil, nil
}
