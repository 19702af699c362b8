// Package config loads, normalizes, and validates placing configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// build, resolve, and evaluate commands need: progress cadence, reference
// layout, tag normalization, output placeholders, evaluation thresholds, and
// the malformed-row policy.
//
// Settings are never read from the environment. Always obtain them through
// this package so downstream code receives canonical values and clear
// validation errors.
package config
