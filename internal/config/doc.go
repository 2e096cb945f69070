// Package config loads, normalizes, and validates courseplan configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files and honours the COURSEPLAN_OUTPUT_DIR and COURSEPLAN_LOG_LEVEL
// environment overrides. Obtain settings through Load so downstream code sees
// absolute paths, lowercase encoding labels and deduplicated keyword lists.
package config
