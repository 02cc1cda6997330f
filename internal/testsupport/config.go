// Package testsupport provides shared fixtures: temp-dir configs, seeded
// message stores, and small file helpers used across package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"serenade/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields, applies any provided options, and creates the
// pipeline directories.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MessagesDB = filepath.Join(base, "messages.db")
	cfg.Paths.CandidatesDir = filepath.Join(base, "candidates")
	cfg.Paths.AssetsDir = filepath.Join(base, "assets")
	cfg.Paths.ManifestDir = filepath.Join(base, "manifests")
	cfg.Paths.StagingDir = filepath.Join(base, "staging")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Curation.Sender = "david"
	cfg.TTS.BaseURL = "http://127.0.0.1:0"
	cfg.TTS.APIKey = "test"
	cfg.TTS.VoiceID = "test-voice"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithProfile sets the scoring profile on the test config.
func WithProfile(name string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Curation.Profile = name
	}
}

// WithSender overrides the tracked sender on the test config.
func WithSender(sender string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Curation.Sender = sender
	}
}
