package config

const (
	defaultConfigPath            = "~/.config/placing/config.toml"
	projectConfigName            = "placing.toml"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
	defaultBuildEvery            = 100000
	defaultEvaluateEvery         = 25000
	defaultLabelColumn           = 4
	defaultBatchSuffix           = ".processed"
	defaultReportSuffix          = ".evaluation.tsv"
	defaultCoordinatePlaceholder = ""
)

// Malformed-row policies.
const (
	PolicyAbort = "abort"
	PolicySkip  = "skip"
)

// DefaultThresholdsKm returns the accuracy tiers used by the benchmark.
func DefaultThresholdsKm() []float64 {
	return []float64{0.001, 0.01, 0.1, 1, 10, 100, 1000, 10000, 40000}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Progress: Progress{
			BuildEvery:    defaultBuildEvery,
			EvaluateEvery: defaultEvaluateEvery,
		},
		Reference: Reference{
			LabelColumns: []int{defaultLabelColumn},
		},
		Tags: Tags{
			EncodeLabels: true,
		},
		Output: Output{
			Placeholder:  defaultCoordinatePlaceholder,
			BatchSuffix:  defaultBatchSuffix,
			ReportSuffix: defaultReportSuffix,
			Lock:         true,
		},
		Evaluation: Evaluation{
			ThresholdsKm: DefaultThresholdsKm(),
		},
		Errors: Errors{
			Policy: PolicyAbort,
		},
	}
}
