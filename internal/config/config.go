package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Logging contains configuration for diagnostic output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Progress contains the cadence of progress notices on the diagnostic channel.
type Progress struct {
	// BuildEvery is the number of data-stream records between notices.
	BuildEvery int `toml:"build_every"`
	// EvaluateEvery is the number of candidate lines between notices.
	EvaluateEvery int `toml:"evaluate_every"`
	// Bar draws a byte progress bar for each data stream when stderr is a terminal.
	Bar bool `toml:"bar"`
}

// Reference describes the layout of reference (index) files.
type Reference struct {
	// LabelColumns lists the zero-based columns that form the label payload of
	// training records. Column 0 is always the identifier and column 1 the hash.
	LabelColumns []int `toml:"label_columns"`
}

// Tags contains configuration for tag text normalization.
type Tags struct {
	// EncodeLabels percent-encodes each segment of hierarchical place labels.
	EncodeLabels bool `toml:"encode_labels"`
	// UnicodeForm optionally normalizes tag text ("", "NFC" or "NFKC").
	UnicodeForm string `toml:"unicode_form"`
}

// Output contains configuration for emitted records.
type Output struct {
	// Placeholder replaces unknown latitude/longitude values.
	Placeholder string `toml:"placeholder"`
	// BatchSuffix is appended to each reference path in batch builds.
	BatchSuffix string `toml:"batch_suffix"`
	// ReportSuffix is appended to each candidate path by the evaluator.
	ReportSuffix string `toml:"report_suffix"`
	// Lock guards output destinations with advisory file locks.
	Lock bool `toml:"lock"`
}

// Evaluation contains configuration for geodesic evaluation.
type Evaluation struct {
	// ThresholdsKm are the accuracy tiers, in kilometers, in ascending order.
	ThresholdsKm []float64 `toml:"thresholds_km"`
}

// Errors contains the malformed-row policy.
type Errors struct {
	// Policy is "abort" (stop at the first malformed row) or "skip" (log and continue).
	Policy string `toml:"policy"`
}

// Config encapsulates all configuration values for placing.
//
// Configuration sections by subsystem:
//   - Logging: diagnostic log format and level
//   - Progress: record-count cadence of progress notices
//   - Reference: label columns of reference files
//   - Tags: place-label encoding and Unicode normalization
//   - Output: placeholders, output suffixes, and destination locking
//   - Evaluation: accuracy thresholds
//   - Errors: abort-or-skip policy for malformed rows
type Config struct {
	Logging    Logging    `toml:"logging"`
	Progress   Progress   `toml:"progress"`
	Reference  Reference  `toml:"reference"`
	Tags       Tags       `toml:"tags"`
	Output     Output     `toml:"output"`
	Evaluation Evaluation `toml:"evaluation"`
	Errors     Errors     `toml:"errors"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. An empty path
// falls back to the default location and then to placing.toml in the working
// directory. A missing file yields the defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// AbortOnError reports whether malformed rows stop the run.
func (c *Config) AbortOnError() bool {
	return c.Errors.Policy != PolicySkip
}
