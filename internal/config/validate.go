package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateReference(); err != nil {
		return err
	}
	if err := c.validateTags(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateEvaluation(); err != nil {
		return err
	}
	return c.validateErrors()
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

func (c *Config) validateReference() error {
	seen := make(map[int]struct{}, len(c.Reference.LabelColumns))
	for _, col := range c.Reference.LabelColumns {
		if col < 2 {
			return fmt.Errorf("reference.label_columns: column %d overlaps the identifier or hash column", col)
		}
		if _, ok := seen[col]; ok {
			return fmt.Errorf("reference.label_columns: column %d listed twice", col)
		}
		seen[col] = struct{}{}
	}
	return nil
}

func (c *Config) validateTags() error {
	switch c.Tags.UnicodeForm {
	case "", "NFC", "NFKC":
		return nil
	default:
		return fmt.Errorf("tags.unicode_form: unsupported value %q (want NFC or NFKC)", c.Tags.UnicodeForm)
	}
}

func (c *Config) validateOutput() error {
	if strings.ContainsAny(c.Output.Placeholder, ",\n") {
		return errors.New("output.placeholder must not contain commas or newlines")
	}
	return nil
}

func (c *Config) validateEvaluation() error {
	for _, t := range c.Evaluation.ThresholdsKm {
		if t <= 0 {
			return fmt.Errorf("evaluation.thresholds_km: threshold %v must be positive", t)
		}
	}
	return nil
}

func (c *Config) validateErrors() error {
	switch c.Errors.Policy {
	case PolicyAbort, PolicySkip:
		return nil
	default:
		return fmt.Errorf("errors.policy: unsupported value %q (want %q or %q)", c.Errors.Policy, PolicyAbort, PolicySkip)
	}
}
