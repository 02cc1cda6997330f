package rowcsv_test

import (
	"path/filepath"
	"reflect"
	"testing"

	"serenade/internal/notes"
	"serenade/internal/rowcsv"
)

func TestEncodeRowQuotesEveryField(t *testing.T) {
	got := rowcsv.EncodeRow([]string{"42", "I love you", "2020-05-01"})
	want := `"42","I love you","2020-05-01"`
	if got != want {
		t.Fatalf("EncodeRow = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{"plain"},
		{"with, comma"},
		{`with "quotes"`},
		{`commas, "and" quotes, together`},
		{"unicode: าม好 héllo ❤️"},
		{"", "empty first"},
		{`""`},
	}
	for _, fields := range cases {
		got := rowcsv.DecodeLine(rowcsv.EncodeRow(fields))
		if !reflect.DeepEqual(got, fields) {
			t.Fatalf("round trip %q: got %q", fields, got)
		}
	}
}

func TestDecodeLineQuotedSeparators(t *testing.T) {
	line := `"42","I love you so much, it's crazy","2020-05-01","love","david-2020-love-note-42.wav"`
	fields := rowcsv.DecodeLine(line)
	if len(fields) != 5 {
		t.Fatalf("expected 5 fields, got %d: %q", len(fields), fields)
	}
	if fields[1] != "I love you so much, it's crazy" {
		t.Fatalf("comma inside quotes split the field: %q", fields[1])
	}
}

func TestMalformedID(t *testing.T) {
	for _, id := range []string{"", "  ", "undefined", "NaN", "nan", "Undefined"} {
		if !rowcsv.MalformedID(id) {
			t.Fatalf("expected %q to be malformed", id)
		}
	}
	for _, id := range []string{"0", "42", "abc"} {
		if rowcsv.MalformedID(id) {
			t.Fatalf("expected %q to be accepted", id)
		}
	}
}

func TestCandidateFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "love-notes-2020.csv")
	rows := []notes.CandidateRow{
		{ID: "42", Text: `I love you so much, it's crazy`, Date: "2020-05-01", Emotion: "love", Filename: "david-2020-love-note-42.wav"},
		{ID: "7", Text: `she said "forever"`, Date: "2020-06-12", Emotion: "", Filename: "david-2020-love-note-7.wav"},
	}

	if err := rowcsv.WriteCandidates(path, rows, false); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	got, dropped, err := rowcsv.ReadCandidates(path)
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	if dropped != 0 {
		t.Fatalf("unexpected drops: %d", dropped)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, rows)
	}
}

func TestCandidateFileFlattensEmbeddedNewlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "love-notes-2021.csv")
	rows := []notes.CandidateRow{
		{
			ID:       "42",
			Text:     "I love you so much\nmore than words can say",
			Date:     "2021-05-01",
			Emotion:  "love",
			Filename: "david-2021-love-note-42.wav",
		},
		{
			ID:       "43",
			Text:     "good morning\r\nmy darling\rsleep well",
			Date:     "2021-05-02",
			Filename: "david-2021-love-note-43.wav",
		},
	}

	if err := rowcsv.WriteCandidates(path, rows, false); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	got, dropped, err := rowcsv.ReadCandidates(path)
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	if dropped != 0 {
		t.Fatalf("unexpected drops: %d", dropped)
	}
	if len(got) != len(rows) {
		t.Fatalf("rows = %d, want %d", len(got), len(rows))
	}
	if got[0].Text != "I love you so much more than words can say" {
		t.Fatalf("text = %q, want newline collapsed to a space", got[0].Text)
	}
	if got[1].Text != "good morning my darling sleep well" {
		t.Fatalf("text = %q, want all line-break flavors collapsed", got[1].Text)
	}
}

func TestCandidateFileLongNoteColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "love-notes-2019.csv")
	rows := []notes.CandidateRow{
		{
			ID: "9", Text: "a long note", Date: "2019-02-14", Emotion: "love",
			Filename: "david-2019-love-note-9.wav",
			Score:    27.5, WordCount: 61,
			EmotionalKeywords:  "i love you|beautiful",
			ThoughtfulKeywords: "future",
		},
	}
	if err := rowcsv.WriteCandidates(path, rows, true); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	got, _, err := rowcsv.ReadCandidates(path)
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if got[0].Score != 27.5 || got[0].WordCount != 61 {
		t.Fatalf("scored columns lost: %+v", got[0])
	}
	if got[0].EmotionalKeywords != "i love you|beautiful" {
		t.Fatalf("emotional keywords lost: %q", got[0].EmotionalKeywords)
	}
}

func TestReadCandidatesDropsPlaceholderRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "love-notes-2020.csv")
	rows := []notes.CandidateRow{
		{ID: "nan", Text: "broken export", Date: "2020-01-01"},
		{ID: "", Text: "also broken", Date: "2020-01-02"},
		{ID: "42", Text: "kept", Date: "2020-01-03", Filename: "david-2020-love-note-42.wav"},
	}
	if err := rowcsv.WriteCandidates(path, rows, false); err != nil {
		t.Fatalf("WriteCandidates: %v", err)
	}
	got, dropped, err := rowcsv.ReadCandidates(path)
	if err != nil {
		t.Fatalf("ReadCandidates: %v", err)
	}
	if dropped != 2 {
		t.Fatalf("expected 2 dropped rows, got %d", dropped)
	}
	if len(got) != 1 || got[0].ID != "42" {
		t.Fatalf("unexpected surviving rows: %+v", got)
	}
}
