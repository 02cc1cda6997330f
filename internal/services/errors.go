// Package services defines the shared error taxonomy for pipeline stages
// and the helpers that tag stage failures for later classification.
package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable marks a year whose raw message source could not
	// be reached. Isolated per year; never aborts the batch.
	ErrSourceUnavailable = errors.New("message source unavailable")

	// ErrProvider marks a failed TTS provider call. Row-level; the row is
	// reported failed and the run continues.
	ErrProvider = errors.New("tts provider failure")

	// ErrTranscode marks a failed raw-to-distribution transcode. The raw
	// asset is retained for manual recovery.
	ErrTranscode = errors.New("transcode failure")

	// ErrValidation marks malformed input rows or arguments.
	ErrValidation = errors.New("validation error")

	// ErrConfiguration marks unrecoverable configuration problems (missing
	// credentials, required paths). These abort the whole invocation.
	ErrConfiguration = errors.New("configuration error")

	ErrNotFound  = errors.New("not found")
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should abort the whole invocation rather
// than a single year or row.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
