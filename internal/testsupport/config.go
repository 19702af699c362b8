package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"placing/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a default config with progress notices effectively
// disabled and output locking on. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Progress.Bar = false
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithSkipPolicy makes malformed rows non-fatal.
func WithSkipPolicy() ConfigOption {
	return func(c *config.Config) {
		c.Errors.Policy = config.PolicySkip
	}
}

// WithLabelColumns overrides the reference label columns.
func WithLabelColumns(cols ...int) ConfigOption {
	return func(c *config.Config) {
		c.Reference.LabelColumns = cols
	}
}

// WithPlaceholder overrides the coordinate placeholder of test-mode records.
func WithPlaceholder(value string) ConfigOption {
	return func(c *config.Config) {
		c.Output.Placeholder = value
	}
}

// WithThresholds overrides the evaluation thresholds in kilometres.
func WithThresholds(km ...float64) ConfigOption {
	return func(c *config.Config) {
		c.Evaluation.ThresholdsKm = km
	}
}

// WithProgressEvery sets both progress cadences.
func WithProgressEvery(n int) ConfigOption {
	return func(c *config.Config) {
		c.Progress.BuildEvery = n
		c.Progress.EvaluateEvery = n
	}
}

// WithoutLabelEncoding passes place labels through unencoded.
func WithoutLabelEncoding() ConfigOption {
	return func(c *config.Config) {
		c.Tags.EncodeLabels = false
	}
}

// WriteConfig marshals cfg as TOML into dir and returns the file path.
func WriteConfig(t testing.TB, dir string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "placing.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
