// Package logging assembles structured slog loggers and formatting helpers used
// across placing commands.
//
// Every logger writes to the diagnostic channel (stderr by default) so that
// data written to stdout or output files is never interleaved with progress
// notices. The package owns the console/JSON handlers, centralizes level
// plumbing, and exposes a no-op logger for tests and wiring code that cannot
// fail.
package logging
