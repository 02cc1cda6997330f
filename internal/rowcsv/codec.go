// Package rowcsv implements the candidate CSV format: every field quoted,
// embedded quotes doubled, one record per line. The format round-trips the
// legacy per-year exports byte for byte, which encoding/csv's minimal
// quoting cannot reproduce, so the codec is implemented directly.
package rowcsv

import "strings"

// EncodeRow serializes fields as one CSV line without the trailing newline.
// Every field is wrapped in double quotes and internal quotes are doubled.
// Fields must not contain newlines; lines are the record boundary.
func EncodeRow(fields []string) string {
	var b strings.Builder
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	return b.String()
}

// DecodeLine splits one CSV line into fields with a single-pass scanner.
// A quote toggles the in-quotes flag; a comma separates fields only outside
// quotes; everything else accumulates into the current field. Doubled
// quotes inside a quoted field decode to one literal quote.
func DecodeLine(line string) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// MalformedID reports whether an identifier field is a placeholder from a
// broken upstream export: empty, "undefined", or "nan" (case-insensitive).
// Rows with such identifiers must be dropped by callers.
func MalformedID(id string) bool {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "", "undefined", "nan":
		return true
	default:
		return false
	}
}
