// Package logging constructs the slog loggers used across the pipeline,
// provides typed attribute helpers, and carries stage/year/note identifiers
// through contexts so every stage logs with consistent fields.
package logging
