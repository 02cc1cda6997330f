package messages

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"serenade/internal/notes"
	"serenade/internal/rowcsv"
	"serenade/internal/services"
)

// Export CSV header. Every field is quoted, matching the candidate files.
var exportHeader = []string{"id", "sender", "sentAt", "text", "emotion"}

// Accepted sentAt layouts, most specific first.
var sentAtLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ReadExport parses a message export CSV into raw messages. Rows with
// placeholder ids or unparseable timestamps are skipped and counted, not
// fatal. Text sentinels pass through untouched; Import normalizes them.
func ReadExport(path string) ([]notes.RawMessage, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, services.Wrap(services.ErrSourceUnavailable, "messages", "open export", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, 0, services.Wrap(services.ErrSourceUnavailable, "messages", "read export", path, err)
		}
		return nil, 0, services.Wrap(services.ErrValidation, "messages", "read export", "file is empty", nil)
	}
	header := rowcsv.DecodeLine(strings.TrimRight(scanner.Text(), "\r"))
	if !headerMatches(header) {
		return nil, 0, services.Wrap(services.ErrValidation, "messages", "read export",
			fmt.Sprintf("unexpected header %v", header), nil)
	}

	var msgs []notes.RawMessage
	skipped := 0
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := rowcsv.DecodeLine(line)
		if len(fields) != len(exportHeader) {
			skipped++
			continue
		}
		if rowcsv.MalformedID(fields[0]) {
			skipped++
			continue
		}
		sentAt, ok := parseSentAt(fields[2])
		if !ok {
			skipped++
			continue
		}
		text := fields[3]
		msgs = append(msgs, notes.RawMessage{
			ID:      strings.TrimSpace(fields[0]),
			Sender:  strings.TrimSpace(fields[1]),
			SentAt:  sentAt,
			Text:    &text,
			Emotion: strings.TrimSpace(fields[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, services.Wrap(services.ErrSourceUnavailable, "messages", "read export", path, err)
	}
	return msgs, skipped, nil
}

func headerMatches(fields []string) bool {
	if len(fields) != len(exportHeader) {
		return false
	}
	for i, want := range exportHeader {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), want) {
			return false
		}
	}
	return true
}

func parseSentAt(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range sentAtLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
