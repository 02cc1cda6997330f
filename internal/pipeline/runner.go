// Package pipeline sequences the curation, render, and manifest stages
// over one or more years. Years are isolated: a failure in one year is
// recorded in the run summary and the remaining years still run, unless
// the failure is fatal (misconfiguration stops the whole run).
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"serenade/internal/config"
	"serenade/internal/curation"
	"serenade/internal/logging"
	"serenade/internal/manifest"
	"serenade/internal/notes"
	"serenade/internal/render"
	"serenade/internal/rowcsv"
	"serenade/internal/services"
)

// Repository is the message source the pipeline draws on. The SQLite
// store satisfies it.
type Repository interface {
	curation.Repository
	Years(ctx context.Context, sender string) ([]string, error)
}

// Options controls a run. Apply and Limit pass through to the render
// stage; curation and manifest always execute their full year.
type Options struct {
	Apply bool
	Limit int
}

// YearReport collects one year's stage summaries. Stages that did not
// run, because an earlier stage failed or the invocation skipped them,
// stay nil.
type YearReport struct {
	Year     string
	Curation *curation.Summary
	Render   *render.Summary
	Manifest *manifest.Summary
	Err      error
}

// RunSummary aggregates a whole invocation.
type RunSummary struct {
	RunID   string
	Started time.Time
	Elapsed time.Duration
	Years   []YearReport
	Failed  int
}

// Runner wires the stages together over shared configuration.
type Runner struct {
	cfg      *config.Config
	repo     Repository
	curator  *curation.Curator
	renderer *render.Orchestrator
	builder  *manifest.Builder
	logger   *slog.Logger
}

// New builds a runner from configuration. The provider is the TTS
// backend handed to the render stage.
func New(cfg *config.Config, repo Repository, provider render.Provider, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "config is required", nil)
	}
	if repo == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new", "message repository is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	curator, err := curation.New(cfg, repo, logger)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(cfg, provider, logger)
	if err != nil {
		return nil, err
	}
	builder, err := manifest.New(cfg, nil, logger)
	if err != nil {
		return nil, err
	}

	return &Runner{
		cfg:      cfg,
		repo:     repo,
		curator:  curator,
		renderer: renderer,
		builder:  builder,
		logger:   logger,
	}, nil
}

// Renderer exposes the render orchestrator, used by tests to stub the
// transcode step.
func (r *Runner) Renderer() *render.Orchestrator {
	return r.renderer
}

// ResolveYears expands an empty year list to every year the tracked
// sender appears in.
func (r *Runner) ResolveYears(ctx context.Context, years []string) ([]string, error) {
	if len(years) > 0 {
		return years, nil
	}
	resolved, err := r.repo.Years(ctx, r.cfg.Curation.Sender)
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnavailable, "pipeline", "resolve years", r.cfg.Curation.Sender, err)
	}
	return resolved, nil
}

// CurateYears runs only the curation stage.
func (r *Runner) CurateYears(ctx context.Context, years []string) (RunSummary, error) {
	return r.run(ctx, years, func(ctx context.Context, report *YearReport) error {
		summary, err := r.curator.CurateYear(ctx, report.Year)
		if err != nil {
			return err
		}
		report.Curation = &summary
		return nil
	})
}

// RenderYears runs only the render stage, reading each year's existing
// candidate file.
func (r *Runner) RenderYears(ctx context.Context, years []string, opts Options) (RunSummary, error) {
	return r.run(ctx, years, func(ctx context.Context, report *YearReport) error {
		rows, err := r.loadCandidates(report.Year)
		if err != nil {
			return err
		}
		summary, err := r.renderer.RenderYear(ctx, report.Year, rows, render.Options{Apply: opts.Apply, Limit: opts.Limit})
		if err != nil {
			return err
		}
		report.Render = &summary
		return nil
	})
}

// ManifestYears runs only the manifest stage, reading each year's
// existing candidate file.
func (r *Runner) ManifestYears(ctx context.Context, years []string) (RunSummary, error) {
	return r.run(ctx, years, func(ctx context.Context, report *YearReport) error {
		rows, err := r.loadCandidates(report.Year)
		if err != nil {
			return err
		}
		summary, err := r.builder.WriteYear(ctx, report.Year, rows)
		if err != nil {
			return err
		}
		report.Manifest = &summary
		return nil
	})
}

// RunYears executes all three stages in order for each year. The
// manifest is written even when the render stage had row-level failures,
// so unbound rows surface as null-filename entries.
func (r *Runner) RunYears(ctx context.Context, years []string, opts Options) (RunSummary, error) {
	return r.run(ctx, years, func(ctx context.Context, report *YearReport) error {
		curated, err := r.curator.CurateYear(ctx, report.Year)
		if err != nil {
			return err
		}
		report.Curation = &curated

		rows, err := r.loadCandidates(report.Year)
		if err != nil {
			return err
		}

		rendered, err := r.renderer.RenderYear(ctx, report.Year, rows, render.Options{Apply: opts.Apply, Limit: opts.Limit})
		if err != nil {
			return err
		}
		report.Render = &rendered

		built, err := r.builder.WriteYear(ctx, report.Year, rows)
		if err != nil {
			return err
		}
		report.Manifest = &built
		return nil
	})
}

func (r *Runner) run(ctx context.Context, years []string, stage func(context.Context, *YearReport) error) (RunSummary, error) {
	summary := RunSummary{RunID: uuid.NewString(), Started: time.Now()}
	ctx = logging.WithRunID(ctx, summary.RunID)
	log := logging.WithContext(ctx, r.logger)

	resolved, err := r.ResolveYears(ctx, years)
	if err != nil {
		return summary, err
	}
	if len(resolved) == 0 {
		log.Warn("no years to process")
		summary.Elapsed = time.Since(summary.Started)
		return summary, nil
	}

	for _, year := range resolved {
		if err := ctx.Err(); err != nil {
			summary.Elapsed = time.Since(summary.Started)
			return summary, err
		}

		report := YearReport{Year: year}
		yearCtx := logging.WithYear(ctx, year)
		if err := stage(yearCtx, &report); err != nil {
			if services.Fatal(err) {
				summary.Years = append(summary.Years, report)
				summary.Failed++
				summary.Elapsed = time.Since(summary.Started)
				return summary, err
			}
			report.Err = err
			summary.Failed++
			logging.WithContext(yearCtx, r.logger).Error("year failed", logging.Error(err))
		}
		summary.Years = append(summary.Years, report)
	}

	summary.Elapsed = time.Since(summary.Started)
	log.Info("run complete",
		logging.Int("years", len(summary.Years)),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", summary.Elapsed),
	)
	return summary, nil
}

func (r *Runner) loadCandidates(year string) ([]notes.CandidateRow, error) {
	rows, dropped, err := rowcsv.ReadCandidates(r.cfg.CandidatesPath(year))
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnavailable, "pipeline", "read candidates", year, err)
	}
	if dropped > 0 {
		r.logger.Warn("dropped malformed candidate rows",
			logging.String(logging.FieldYear, year),
			logging.Int("dropped", dropped),
		)
	}
	return rows, nil
}
