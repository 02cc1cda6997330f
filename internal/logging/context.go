package logging

import (
	"context"
	"log/slog"
)

// Standardized structured logging keys shared by all stages.
const (
	// FieldComponent identifies the pipeline component emitting the record.
	FieldComponent = "component"
	// FieldStage is the workflow stage name (curate, render, manifest).
	FieldStage = "stage"
	// FieldYear is the candidate year a record pertains to.
	FieldYear = "year"
	// FieldNoteID is the source message identifier of a candidate row.
	FieldNoteID = "note_id"
	// FieldRunID correlates records belonging to one pipeline run.
	FieldRunID = "run_id"
	// FieldEventType classifies lifecycle records (stage_start, stage_done, ...).
	FieldEventType = "event_type"
)

type contextKey int

const (
	stageContextKey contextKey = iota
	yearContextKey
	runIDContextKey
)

// WithStage returns a context carrying the workflow stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageContextKey, stage)
}

// WithYear returns a context carrying the year being processed.
func WithYear(ctx context.Context, year string) context.Context {
	return context.WithValue(ctx, yearContextKey, year)
}

// WithRunID returns a context carrying the pipeline run identifier.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDContextKey, runID)
}

// ContextFields extracts standardized slog attributes from the context.
func ContextFields(ctx context.Context) []Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]Attr, 0, 3)
	if stage, ok := ctx.Value(stageContextKey).(string); ok && stage != "" {
		fields = append(fields, String(FieldStage, stage))
	}
	if year, ok := ctx.Value(yearContextKey).(string); ok && year != "" {
		fields = append(fields, String(FieldYear, year))
	}
	if runID, ok := ctx.Value(runIDContextKey).(string); ok && runID != "" {
		fields = append(fields, String(FieldRunID, runID))
	}
	return fields
}

// WithContext returns a logger pre-populated with the context's fields.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(Args(fields...)...)
}
