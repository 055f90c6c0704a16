// Package engine assembles the scorers into the relevance pipeline:
// capability resolution, concurrent signal scoring, weighted
// aggregation, verdict mapping, and gap analysis, for single documents
// and ordered batches.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nkatyal/resume-relevance/infrastructure/scorers"
	"github.com/nkatyal/resume-relevance/internal/domain"
)

// weightSumTolerance absorbs floating-point drift when checking that
// the signal weights sum to 1.0.
const weightSumTolerance = 1e-9

// DefaultBatchConcurrency bounds concurrent evaluations in a batch.
const DefaultBatchConcurrency = 4

// DefaultServiceTimeout bounds one backing-service call.
const DefaultServiceTimeout = 20 * time.Second

// Duration wraps time.Duration so configuration files can use readable
// values like "20s" or "1m30s".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"20s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration in its string form.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Weights holds the aggregation weight of each scoring signal.
// They must sum to 1.0.
type Weights struct {
	Lexical    float64 `yaml:"lexical" json:"lexical" validate:"min=0,max=1"`
	Semantic   float64 `yaml:"semantic" json:"semantic" validate:"min=0,max=1"`
	Reasoning  float64 `yaml:"reasoning" json:"reasoning" validate:"min=0,max=1"`
	Structural float64 `yaml:"structural" json:"structural" validate:"min=0,max=1"`
}

// Sum returns the total weight.
func (w Weights) Sum() float64 {
	return w.Lexical + w.Semantic + w.Reasoning + w.Structural
}

// DefaultWeights returns the documented default mix: lexical 0.4,
// semantic 0.4, reasoning 0.2. The structural signal is reported but
// not aggregated by default.
func DefaultWeights() Weights {
	return Weights{Lexical: 0.4, Semantic: 0.4, Reasoning: 0.2, Structural: 0}
}

// Config is the full engine configuration. Invalid configuration is
// rejected at construction; the engine never starts with weights that
// do not sum to 1.0 or thresholds that overlap.
type Config struct {
	// Weights is the aggregation mix for the final score.
	Weights Weights `yaml:"weights" json:"weights"`

	// Verdict holds the High/Medium score cut-offs.
	Verdict domain.VerdictThresholds `yaml:"verdict" json:"verdict"`

	// Lexical configures the lexical matcher.
	Lexical scorers.LexicalConfig `yaml:"lexical" json:"lexical"`

	// ServiceTimeout bounds each backing-service call. A call that
	// exceeds it degrades to the fallback for that call only.
	ServiceTimeout Duration `yaml:"service_timeout" json:"service_timeout" validate:"min=0"`

	// BatchConcurrency bounds how many evaluations of a batch run at
	// once.
	BatchConcurrency int `yaml:"batch_concurrency" json:"batch_concurrency" validate:"min=1,max=64"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		Weights:          DefaultWeights(),
		Verdict:          domain.DefaultVerdictThresholds(),
		Lexical:          scorers.DefaultLexicalConfig(),
		ServiceTimeout:   Duration(DefaultServiceTimeout),
		BatchConcurrency: DefaultBatchConcurrency,
	}
}

// Validate checks structural and semantic constraints on the
// configuration. All violations wrap domain.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	if math.Abs(c.Weights.Sum()-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: signal weights sum to %.9f, must sum to 1.0",
			domain.ErrInvalidConfiguration, c.Weights.Sum())
	}

	if c.Verdict.High <= c.Verdict.Medium {
		return fmt.Errorf("%w: verdict high threshold %.1f must exceed medium threshold %.1f",
			domain.ErrInvalidConfiguration, c.Verdict.High, c.Verdict.Medium)
	}
	if c.Verdict.High > 100 || c.Verdict.Medium < 0 {
		return fmt.Errorf("%w: verdict thresholds must lie within [0,100]",
			domain.ErrInvalidConfiguration)
	}

	return nil
}

// LoadConfig parses a YAML configuration document in strict mode,
// layered over the defaults, and validates the result.
func LoadConfig(data []byte) (Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode - fail on unknown fields.
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: YAML decode failed: %v", domain.ErrInvalidConfiguration, err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Package-level validator instance for configuration validation.
var validate = validator.New()
