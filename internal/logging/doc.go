// Package logging assembles structured slog loggers used across corpusprep.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attribute helpers so every utility tags its lines
// with the same keys (component, run_id, event_type, ...). The package also
// provides a no-op logger for tests and library callers that pass nil.
//
// Prefer these constructors over hand-rolled slog setup so new commands emit
// data with the same shape as the rest of the tool.
package logging
