package pipeline_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"serenade/internal/logging"
	"serenade/internal/pipeline"
)

func healthServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewSweeperRejectsBadSchedule(t *testing.T) {
	runner, cfg := newTestRunner(t, &fakeProvider{})
	cfg.Sweep.Schedule = "every now and then"

	if _, err := pipeline.NewSweeper(runner, logging.NewNop()); err == nil {
		t.Fatal("expected schedule validation error")
	}
}

func TestSweepOnceRunsConfiguredYears(t *testing.T) {
	runner, cfg := newTestRunner(t, &fakeProvider{})
	cfg.Sweep.Years = []string{"2019"}
	cfg.TTS.BaseURL = healthServer(t).URL

	sweeper, err := pipeline.NewSweeper(runner, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}

	summary, err := sweeper.SweepOnce(t.Context())
	if err != nil {
		t.Fatalf("SweepOnce: %v", err)
	}
	if len(summary.Years) != 1 || summary.Years[0].Year != "2019" {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Years[0].Render == nil || summary.Years[0].Render.Rendered == 0 {
		t.Fatalf("sweep should apply renders: %+v", summary.Years[0])
	}
}

func TestSweepOnceBlockedByFailedPreflight(t *testing.T) {
	provider := &fakeProvider{}
	runner, cfg := newTestRunner(t, provider)
	cfg.TTS.BaseURL = ""

	sweeper, err := pipeline.NewSweeper(runner, logging.NewNop())
	if err != nil {
		t.Fatalf("NewSweeper: %v", err)
	}

	if _, err := sweeper.SweepOnce(t.Context()); err == nil {
		t.Fatal("expected sweep to be blocked by preflight")
	}
	if provider.calls != 0 {
		t.Fatalf("blocked sweep made %d provider calls", provider.calls)
	}
}
