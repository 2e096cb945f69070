// Package logging assembles the structured slog loggers used by courseplan.
//
// It owns the console and JSON handlers, level parsing and output routing,
// plus a handful of attribute helpers so every component tags its lines with
// the same keys (component, run_id, event_type, file, encoding). NewNop gives
// tests and wiring code a logger that cannot fail.
package logging
