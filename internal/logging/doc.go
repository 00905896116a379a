// Package logging assembles structured slog loggers for the converter.
//
// It owns the console/JSON handlers, centralizes level and output plumbing,
// and exposes context-aware helpers so workflow code can tag log lines with
// the run id. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
//
// Diagnostics are written to the error stream; progress and summary text
// belongs to the CLI and never goes through these loggers.
package logging
