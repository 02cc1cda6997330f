package rowcsv

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"serenade/internal/fileutil"
	"serenade/internal/notes"
)

// Candidate CSV headers. The long-note profile appends the scored columns.
var (
	standardHeader = []string{"id", "text", "date", "emotion", "filename"}
	longNoteHeader = []string{
		"id", "text", "date", "emotion", "filename",
		"score", "wordCount", "emotionalKeywords", "thoughtfulKeywords",
	}
)

// WriteCandidates serializes rows into the per-year candidate file, header
// first, one encoded row per line. When scored is true the extended
// long-note header and columns are written. The write is atomic.
func WriteCandidates(path string, rows []notes.CandidateRow, scored bool) error {
	header := standardHeader
	if scored {
		header = longNoteHeader
	}

	var b strings.Builder
	b.WriteString(EncodeRow(header))
	b.WriteByte('\n')
	for _, row := range rows {
		fields := []string{row.ID, row.Text, row.Date, row.Emotion, row.Filename}
		if scored {
			fields = append(fields,
				strconv.FormatFloat(row.Score, 'f', -1, 64),
				strconv.Itoa(row.WordCount),
				row.EmotionalKeywords,
				row.ThoughtfulKeywords,
			)
		}
		for i, field := range fields {
			fields[i] = flattenNewlines(field)
		}
		b.WriteString(EncodeRow(fields))
		b.WriteByte('\n')
	}

	if err := fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write candidates %q: %w", path, err)
	}
	return nil
}

// flattenNewlines collapses line breaks inside a field to single spaces.
// Lines are the record boundary of the candidate file, so a field must
// never span more than one physical line.
func flattenNewlines(field string) string {
	if !strings.ContainsAny(field, "\r\n") {
		return field
	}
	field = strings.ReplaceAll(field, "\r\n", " ")
	field = strings.ReplaceAll(field, "\n", " ")
	return strings.ReplaceAll(field, "\r", " ")
}

// ReadCandidates parses a per-year candidate file. Rows with placeholder
// identifiers are dropped and counted rather than reported as errors.
// Both the standard and long-note headers are accepted.
func ReadCandidates(path string) ([]notes.CandidateRow, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open candidates %q: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var rows []notes.CandidateRow
	dropped := 0
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if first {
			first = false
			continue
		}

		fields := DecodeLine(line)
		if len(fields) < len(standardHeader) {
			dropped++
			continue
		}
		if MalformedID(fields[0]) {
			dropped++
			continue
		}

		row := notes.CandidateRow{
			ID:       fields[0],
			Text:     fields[1],
			Date:     fields[2],
			Emotion:  fields[3],
			Filename: fields[4],
		}
		if len(fields) >= len(longNoteHeader) {
			if score, err := strconv.ParseFloat(fields[5], 64); err == nil {
				row.Score = score
			}
			if count, err := strconv.Atoi(fields[6]); err == nil {
				row.WordCount = count
			}
			row.EmotionalKeywords = fields[7]
			row.ThoughtfulKeywords = fields[8]
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, dropped, fmt.Errorf("scan candidates %q: %w", path, err)
	}
	return rows, dropped, nil
}
