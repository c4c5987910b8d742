// Package logging assembles structured slog loggers and formatting helpers used
// across idverify.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so pipeline code can tag log lines with
// the source document and history run being processed. A no-op logger is
// provided for tests and wiring code that cannot fail.
package logging
