package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"serenade/internal/config"
	"serenade/internal/fileutil"
	"serenade/internal/logging"
	"serenade/internal/notes"
	"serenade/internal/services"
	"serenade/internal/services/ffmpeg"
	"serenade/internal/services/tts"
)

// Provider is the speech generation boundary. *tts.Client satisfies it;
// tests substitute counting fakes.
type Provider interface {
	GenerateSpeech(ctx context.Context, req tts.Request) ([]byte, error)
}

// TranscodeFunc converts a raw asset into the distribution asset.
type TranscodeFunc func(ctx context.Context, source, dest string) error

// Options controls a render run. Apply false is a dry run: rows are
// planned but the provider is never called. Limit caps processed rows
// when positive.
type Options struct {
	Apply bool
	Limit int
}

// Outcome classifies one row's result.
type Outcome string

const (
	OutcomePlanned  Outcome = "planned"
	OutcomeRendered Outcome = "rendered"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// RowResult records one row's outcome.
type RowResult struct {
	ID      string
	Outcome Outcome
	Detail  string
}

// Summary reports one year's render outcome.
type Summary struct {
	Year          string
	Planned       int
	Rendered      int
	Skipped       int
	Failed        int
	ProviderCalls int
	Rows          []RowResult
	Elapsed       time.Duration
}

// Orchestrator renders curated rows for one year at a time.
type Orchestrator struct {
	cfg       *config.Config
	provider  Provider
	transcode TranscodeFunc
	logger    *slog.Logger
}

// New builds an orchestrator. The transcode step defaults to ffmpeg with
// the configured binary and bitrate.
func New(cfg *config.Config, provider Provider, logger *slog.Logger) (*Orchestrator, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "render", "new", "config is required", nil)
	}
	if provider == nil {
		return nil, services.Wrap(services.ErrConfiguration, "render", "new", "tts provider is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	o := &Orchestrator{cfg: cfg, provider: provider, logger: logger}
	o.transcode = func(ctx context.Context, source, dest string) error {
		return ffmpeg.TranscodeToMP3(ctx, cfg.Render.FFmpegBinary, source, dest, cfg.Render.Bitrate)
	}
	return o, nil
}

// SetTranscodeForTests replaces the transcode step and returns a restore
// function.
func (o *Orchestrator) SetTranscodeForTests(fn TranscodeFunc) func() {
	prev := o.transcode
	o.transcode = fn
	return func() { o.transcode = prev }
}

// RenderYear processes rows in CSV order. Rows whose distribution asset
// already exists are skipped without a provider call; provider and
// transcode failures are row-level and never abort the year. With Apply
// false every missing row is merely planned.
func (o *Orchestrator) RenderYear(ctx context.Context, year string, rows []notes.CandidateRow, opts Options) (Summary, error) {
	ctx = logging.WithStage(logging.WithYear(ctx, year), "render")
	log := logging.WithContext(ctx, o.logger)
	start := time.Now()

	summary := Summary{Year: year}

	if opts.Apply {
		// Claim the year before any provider call so two processes cannot
		// race the existence check into duplicate billed requests.
		lock := flock.New(o.cfg.RenderLockPath(year))
		acquired, err := lock.TryLock()
		if err != nil {
			return summary, services.Wrap(services.ErrTransient, "render", "acquire lock", year, err)
		}
		if !acquired {
			return summary, services.Wrap(services.ErrTransient, "render", "acquire lock",
				fmt.Sprintf("another render is in progress for %s", year), nil)
		}
		defer func() { _ = lock.Unlock() }()
	}

	limit := len(rows)
	if opts.Limit > 0 && opts.Limit < limit {
		limit = opts.Limit
	}

	for _, row := range rows[:limit] {
		result := o.renderRow(ctx, log, year, row, opts.Apply, &summary)
		summary.Rows = append(summary.Rows, result)
		switch result.Outcome {
		case OutcomePlanned:
			summary.Planned++
		case OutcomeRendered:
			summary.Rendered++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++
		}
	}

	summary.Elapsed = time.Since(start)
	log.Info("render finished",
		logging.Int("planned", summary.Planned),
		logging.Int("rendered", summary.Rendered),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Int("provider_calls", summary.ProviderCalls),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (o *Orchestrator) renderRow(ctx context.Context, log *slog.Logger, year string, row notes.CandidateRow, apply bool, summary *Summary) RowResult {
	rowLog := log.With(logging.Args(logging.String(logging.FieldNoteID, row.ID))...)

	prefix := o.cfg.Curation.Prefix
	rawPath := filepath.Join(o.cfg.Paths.AssetsDir, notes.AssetName(prefix, year, row.ID, notes.RawExt))
	distPath := filepath.Join(o.cfg.Paths.AssetsDir, notes.AssetName(prefix, year, row.ID, notes.DistributionExt))

	if fileutil.Exists(distPath) {
		rowLog.Debug("skipping, already rendered", logging.String("asset", filepath.Base(distPath)))
		return RowResult{ID: row.ID, Outcome: OutcomeSkipped, Detail: "already rendered"}
	}

	if !apply {
		return RowResult{ID: row.ID, Outcome: OutcomePlanned}
	}

	summary.ProviderCalls++
	audio, err := o.provider.GenerateSpeech(ctx, tts.Request{
		Text:    row.Text,
		ModelID: o.cfg.TTS.ModelID,
		VoiceID: o.cfg.TTS.VoiceID,
	})
	if err != nil {
		wrapped := services.Wrap(services.ErrProvider, "render", "generate speech", row.ID, err)
		rowLog.Error("provider call failed", logging.Error(wrapped))
		return RowResult{ID: row.ID, Outcome: OutcomeFailed, Detail: wrapped.Error()}
	}

	if err := fileutil.WriteFileAtomic(rawPath, audio, 0o644); err != nil {
		wrapped := services.Wrap(services.ErrTransient, "render", "persist raw audio", row.ID, err)
		rowLog.Error("raw asset write failed", logging.Error(wrapped))
		return RowResult{ID: row.ID, Outcome: OutcomeFailed, Detail: wrapped.Error()}
	}

	if err := o.transcode(ctx, rawPath, distPath); err != nil {
		// Raw asset stays on disk for manual recovery.
		wrapped := services.Wrap(services.ErrTranscode, "render", "transcode", row.ID, err)
		rowLog.Error("transcode failed, raw asset retained", logging.Error(wrapped))
		return RowResult{ID: row.ID, Outcome: OutcomeFailed, Detail: wrapped.Error()}
	}

	rowLog.Info("rendered note",
		logging.String("asset", filepath.Base(distPath)),
		logging.Int("raw_bytes", len(audio)),
	)
	return RowResult{ID: row.ID, Outcome: OutcomeRendered}
}
