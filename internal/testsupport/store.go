package testsupport

import (
	"context"
	"testing"

	"serenade/internal/config"
	"serenade/internal/messages"
	"serenade/internal/notes"
)

// MustOpenStore opens the message store for the test config and closes it
// on cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *messages.Store {
	t.Helper()

	store, err := messages.Open(cfg.Paths.MessagesDB)
	if err != nil {
		t.Fatalf("open message store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// SeedMessages imports the given messages into the store.
func SeedMessages(t testing.TB, store *messages.Store, msgs []notes.RawMessage) {
	t.Helper()

	if _, err := store.Import(context.Background(), msgs); err != nil {
		t.Fatalf("seed messages: %v", err)
	}
}
