package config

import (
	"slices"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeLogging()
	c.normalizeProgress()
	c.normalizeTags()
	c.normalizeOutput()
	c.normalizeEvaluation()
	c.Errors.Policy = strings.ToLower(strings.TrimSpace(c.Errors.Policy))
	if c.Errors.Policy == "" {
		c.Errors.Policy = PolicyAbort
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeProgress() {
	if c.Progress.BuildEvery <= 0 {
		c.Progress.BuildEvery = defaultBuildEvery
	}
	if c.Progress.EvaluateEvery <= 0 {
		c.Progress.EvaluateEvery = defaultEvaluateEvery
	}
}

func (c *Config) normalizeTags() {
	c.Tags.UnicodeForm = strings.ToUpper(strings.TrimSpace(c.Tags.UnicodeForm))
}

func (c *Config) normalizeOutput() {
	if strings.TrimSpace(c.Output.BatchSuffix) == "" {
		c.Output.BatchSuffix = defaultBatchSuffix
	}
	if strings.TrimSpace(c.Output.ReportSuffix) == "" {
		c.Output.ReportSuffix = defaultReportSuffix
	}
}

func (c *Config) normalizeEvaluation() {
	if len(c.Evaluation.ThresholdsKm) == 0 {
		c.Evaluation.ThresholdsKm = DefaultThresholdsKm()
		return
	}
	c.Evaluation.ThresholdsKm = slices.Clone(c.Evaluation.ThresholdsKm)
	slices.Sort(c.Evaluation.ThresholdsKm)
	c.Evaluation.ThresholdsKm = slices.Compact(c.Evaluation.ThresholdsKm)
}
