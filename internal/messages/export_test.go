package messages_test

import (
	"path/filepath"
	"strings"
	"testing"

	"serenade/internal/messages"
	"serenade/internal/testsupport"
)

func writeExport(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.csv")
	testsupport.WriteFile(t, path, []byte(strings.Join(lines, "\n")+"\n"))
	return path
}

func TestReadExport(t *testing.T) {
	path := writeExport(t,
		`"id","sender","sentAt","text","emotion"`,
		`"42","david","2020-05-01 12:00:00","I love you so much","love"`,
		`"43","david","2020-05-02","she said ""yes"""`,
		`"undefined","david","2020-05-03","placeholder id",""`,
		`"44","david","not a date","bad timestamp",""`,
		`"45","david","2020-05-04T09:30:00Z","0",""`,
	)

	msgs, skipped, err := messages.ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	// Row 43 has four fields and is skipped along with the malformed id
	// and the bad timestamp.
	if skipped != 3 {
		t.Fatalf("skipped = %d, want 3", skipped)
	}
	if len(msgs) != 2 {
		t.Fatalf("messages = %d, want 2: %+v", len(msgs), msgs)
	}
	if msgs[0].ID != "42" || msgs[0].Emotion != "love" {
		t.Fatalf("first message = %+v", msgs[0])
	}
	if msgs[0].SentAt.Year() != 2020 {
		t.Fatalf("sentAt = %v", msgs[0].SentAt)
	}
	// The no-text sentinel passes through; Import owns normalization.
	if msgs[1].Text == nil || *msgs[1].Text != "0" {
		t.Fatalf("sentinel text = %v", msgs[1].Text)
	}
}

func TestReadExportRejectsBadHeader(t *testing.T) {
	path := writeExport(t, `"who","what"`)
	if _, _, err := messages.ReadExport(path); err == nil {
		t.Fatal("expected header validation error")
	}
}

func TestReadExportMissingFile(t *testing.T) {
	if _, _, err := messages.ReadExport(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadExportRoundTripsIntoStore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	path := writeExport(t,
		`"id","sender","sentAt","text","emotion"`,
		`"1","david","2019-03-01","thinking of you tonight","love"`,
		`"2","david","2019-03-02","0",""`,
	)
	msgs, _, err := messages.ReadExport(path)
	if err != nil {
		t.Fatalf("ReadExport: %v", err)
	}
	if _, err := store.Import(t.Context(), msgs); err != nil {
		t.Fatalf("Import: %v", err)
	}

	stored, err := store.MessagesByYear(t.Context(), "david", "2019")
	if err != nil {
		t.Fatalf("MessagesByYear: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored = %d, want 2", len(stored))
	}
	if stored[1].Text != nil {
		t.Fatalf("sentinel should be NULL after import, got %v", stored[1].Text)
	}
}
