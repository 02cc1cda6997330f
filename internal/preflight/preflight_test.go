package preflight_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"serenade/internal/preflight"
	"serenade/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckDirectoryAccess("Assets directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for writable dir, got %+v", result)
	}

	missing := preflight.CheckDirectoryAccess("Assets directory", filepath.Join(dir, "nope"))
	if missing.Passed {
		t.Fatalf("expected failure for missing dir, got %+v", missing)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := preflight.CheckDirectoryAccess("Assets directory", file)
	if notDir.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", notDir)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	dir := t.TempDir()

	result := preflight.CheckDiskSpace("Asset disk space", dir, 0)
	if !result.Passed {
		t.Fatalf("zero floor should always pass, got %+v", result)
	}

	// No filesystem has this much free; the floor must trip.
	huge := preflight.CheckDiskSpace("Asset disk space", dir, 1<<30)
	if huge.Passed {
		t.Fatalf("expected failure for absurd floor, got %+v", huge)
	}
}

func TestCheckMessagesDB(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "messages.db")

	if result := preflight.CheckMessagesDB(path); result.Passed {
		t.Fatalf("expected failure before import, got %+v", result)
	}
	if err := os.WriteFile(path, []byte("db"), 0o644); err != nil {
		t.Fatalf("write db: %v", err)
	}
	if result := preflight.CheckMessagesDB(path); !result.Passed {
		t.Fatalf("expected pass for existing db, got %+v", result)
	}
}

func TestCheckTTS(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer healthy.Close()

	cfg := testsupport.NewConfig(t)
	cfg.TTS.BaseURL = healthy.URL
	if result := preflight.CheckTTS(t.Context(), cfg); !result.Passed {
		t.Fatalf("expected pass against healthy server, got %+v", result)
	}

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	cfg.TTS.BaseURL = down.URL
	if result := preflight.CheckTTS(t.Context(), cfg); result.Passed {
		t.Fatalf("expected failure against unhealthy server, got %+v", result)
	}

	cfg.TTS.BaseURL = " "
	if result := preflight.CheckTTS(t.Context(), cfg); result.Passed {
		t.Fatal("expected failure for missing base url")
	}
}

func TestRunAllAggregates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t)
	cfg.TTS.BaseURL = server.URL
	cfg.Render.MinFreeGiB = 0
	testsupport.WriteFile(t, cfg.Paths.MessagesDB, []byte("db"))

	results := preflight.RunAll(t.Context(), cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if !preflight.AllPassed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}

	cfg.TTS.BaseURL = ""
	if preflight.AllPassed(preflight.RunAll(t.Context(), cfg)) {
		t.Fatal("missing provider url should fail the run")
	}
}

func TestProbeAssetWithoutFFprobe(t *testing.T) {
	probe := preflight.ProbeAsset("", "/tmp/whatever.mp3")
	if probe.Probed {
		t.Fatal("blank binary must not probe")
	}
	if probe.Detail() == "" {
		t.Fatal("detail should still render")
	}
}
