// Package logging configures structured logging for Abacus.
//
// Logging is built on log/slog with three output formats: json for
// machine ingestion, text for plain logs, and console for
// human-readable local output. Component loggers are derived with
// With("component", ...).
package logging
