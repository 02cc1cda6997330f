package pipeline

import (
	"context"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"serenade/internal/logging"
	"serenade/internal/preflight"
	"serenade/internal/services"
)

// Sweeper runs the full pipeline on a cron schedule for unattended
// catch-up of newly imported messages. Sweeps always apply.
type Sweeper struct {
	runner *Runner
	cron   *cron.Cron
	logger *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewSweeper builds a sweeper from the runner's sweep configuration.
// The schedule is validated up front so a bad expression fails at
// startup instead of at the first tick.
func NewSweeper(runner *Runner, logger *slog.Logger) (*Sweeper, error) {
	if runner == nil {
		return nil, services.Wrap(services.ErrConfiguration, "sweep", "new", "runner is required", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	schedule := runner.cfg.Sweep.Schedule
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "sweep", "parse schedule", schedule, err)
	}

	s := &Sweeper{
		runner: runner,
		cron:   cron.New(),
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "sweep", "schedule", schedule, err)
	}
	return s, nil
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) error {
	s.logger.Info("sweep scheduler started",
		logging.String("schedule", s.runner.cfg.Sweep.Schedule),
	)
	s.cron.Start()
	<-ctx.Done()
	stopped := s.cron.Stop()
	<-stopped.Done()
	s.logger.Info("sweep scheduler stopped")
	return ctx.Err()
}

// SweepOnce runs one sweep immediately, outside the schedule.
func (s *Sweeper) SweepOnce(ctx context.Context) (RunSummary, error) {
	return s.sweep(ctx)
}

// tick is the scheduled entry point. Overlapping ticks are collapsed:
// if a sweep is still running when the next fires, the new tick is
// skipped rather than queued.
func (s *Sweeper) tick() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("sweep still running, skipping tick")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if _, err := s.sweep(context.Background()); err != nil {
		s.logger.Error("sweep failed", logging.Error(err))
	}
}

func (s *Sweeper) sweep(ctx context.Context) (RunSummary, error) {
	checks := preflight.RunAll(ctx, s.runner.cfg)
	if !preflight.AllPassed(checks) {
		for _, check := range checks {
			if !check.Passed {
				s.logger.Warn("preflight check failed",
					logging.String("check", check.Name),
					logging.String("detail", check.Detail),
				)
			}
		}
		return RunSummary{}, services.Wrap(services.ErrTransient, "sweep", "preflight", "readiness checks failed", nil)
	}

	summary, err := s.runner.RunYears(ctx, s.runner.cfg.Sweep.Years, Options{Apply: true})
	if err != nil {
		return summary, err
	}
	s.logger.Info("sweep complete",
		logging.String(logging.FieldRunID, summary.RunID),
		logging.Int("years", len(summary.Years)),
		logging.Int("failed", summary.Failed),
	)
	return summary, nil
}
