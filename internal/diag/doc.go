// Package diag records the non-fatal problems a conversion run tolerates.
//
// A Log is owned by one run. Each Warning is typed by Kind so callers and
// tests can assert on exactly what went wrong, and every record is mirrored
// to the structured logger as a WARN line carrying event_type and file.
package diag
