// Package curation selects a year's worth of messages from the tracked
// sender, ranks them with the configured scoring profile, and serializes
// the surviving rows into the per-year candidate CSV.
package curation

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"serenade/internal/config"
	"serenade/internal/logging"
	"serenade/internal/notes"
	"serenade/internal/rowcsv"
	"serenade/internal/scoring"
	"serenade/internal/services"
)

// Repository is the message source the curator reads from. The SQLite
// store in internal/messages satisfies it; tests substitute fixtures.
type Repository interface {
	MessagesByYear(ctx context.Context, sender, year string) ([]notes.RawMessage, error)
}

// Summary reports one year's curation outcome.
type Summary struct {
	Year       string
	Considered int
	NoText     int
	Duplicates int
	Selected   int
	Path       string
}

// Curator runs the curation stage.
type Curator struct {
	cfg     *config.Config
	repo    Repository
	profile scoring.Profile
	logger  *slog.Logger
}

// New builds a curator from configuration. The profile name comes from
// curation.profile and must be a known scoring profile.
func New(cfg *config.Config, repo Repository, logger *slog.Logger) (*Curator, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "curate", "new", "config is required", nil)
	}
	if repo == nil {
		return nil, services.Wrap(services.ErrConfiguration, "curate", "new", "message repository is required", nil)
	}
	profile, err := scoring.ByName(cfg.Curation.Profile)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "curate", "load profile", "", err)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Curator{cfg: cfg, repo: repo, profile: profile, logger: logger}, nil
}

// CurateYear scores the sender's messages for one year, filters them by
// the configured thresholds, and writes the candidate CSV. A message
// source failure is a SourceUnavailable error; callers isolate it to the
// year and continue the batch.
func (c *Curator) CurateYear(ctx context.Context, year string) (Summary, error) {
	ctx = logging.WithStage(logging.WithYear(ctx, year), "curate")
	log := logging.WithContext(ctx, c.logger)

	msgs, err := c.repo.MessagesByYear(ctx, c.cfg.Curation.Sender, year)
	if err != nil {
		return Summary{Year: year}, services.Wrap(services.ErrSourceUnavailable, "curate", "load messages", year, err)
	}

	summary := Summary{Year: year, Considered: len(msgs)}

	scored := make([]notes.ScoredCandidate, 0, len(msgs))
	for _, msg := range msgs {
		if !msg.HasText() {
			summary.NoText++
			continue
		}
		text := *msg.Text
		score := c.profile.Score(text, msg.Emotion)
		wordCount := scoring.WordCount(text)
		if !c.profile.Eligible(score, wordCount, c.cfg.Curation.MinScore, c.cfg.Curation.MinWords) {
			continue
		}

		row := notes.CandidateRow{
			ID:       msg.ID,
			Text:     text,
			Date:     msg.SentAt.UTC().Format("2006-01-02"),
			Emotion:  msg.Emotion,
			Filename: notes.AssetName(c.cfg.Curation.Prefix, year, msg.ID, notes.RawExt),
		}
		if c.profile.Scored() {
			emotional, thoughtful := c.profile.Keywords(text)
			row.Score = score
			row.WordCount = wordCount
			row.EmotionalKeywords = joinKeywords(emotional)
			row.ThoughtfulKeywords = joinKeywords(thoughtful)
		}
		scored = append(scored, notes.ScoredCandidate{Row: row, Score: score, WordCount: wordCount})
	}

	// Stable sort keeps original (chronological) order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	// One candidate per message id: the id is the asset-name join key, so
	// a duplicate would collide on the predicted filename. The sort ran
	// already, so the first occurrence is the best-scoring one.
	rows := make([]notes.CandidateRow, 0, len(scored))
	seen := make(map[string]struct{}, len(scored))
	for _, candidate := range scored {
		if _, ok := seen[candidate.Row.ID]; ok {
			summary.Duplicates++
			continue
		}
		seen[candidate.Row.ID] = struct{}{}
		rows = append(rows, candidate.Row)
	}
	summary.Selected = len(rows)
	summary.Path = c.cfg.CandidatesPath(year)

	if err := rowcsv.WriteCandidates(summary.Path, rows, c.profile.Scored()); err != nil {
		return summary, services.Wrap(services.ErrTransient, "curate", "write candidates", year, err)
	}

	log.Info("curated year",
		logging.Int("considered", summary.Considered),
		logging.Int("no_text", summary.NoText),
		logging.Int("duplicates", summary.Duplicates),
		logging.Int("selected", summary.Selected),
		logging.String("path", summary.Path),
	)
	return summary, nil
}

func joinKeywords(words []string) string {
	return strings.Join(words, "|")
}
