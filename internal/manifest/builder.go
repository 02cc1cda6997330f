// Package manifest reconciles the two independently-evolving artifacts of
// a year — the curated candidate CSV and the rendered asset set — into one
// JSON manifest. Building is a pure read: neither input is mutated, and
// the asset listing is snapshotted once so assets appearing mid-build are
// picked up by the next run instead.
package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"serenade/internal/config"
	"serenade/internal/fileutil"
	"serenade/internal/logging"
	"serenade/internal/notes"
	"serenade/internal/services"
)

// AssetLister enumerates the available distribution-format asset names.
// The local-directory implementation below is the default; tests and
// object-store backends provide their own.
type AssetLister interface {
	ListDistributionAssets(ctx context.Context) ([]string, error)
}

// DirLister lists *.mp3 files in a local asset directory.
type DirLister struct {
	Dir string
}

// ListDistributionAssets returns the distribution asset filenames in Dir.
func (l DirLister) ListDistributionAssets(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("list assets in %q: %w", l.Dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), "."+notes.DistributionExt) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Summary reports one year's manifest build.
type Summary struct {
	Year    int
	Entries int
	Bound   int
	Unbound int
	Path    string
}

// Builder builds per-year manifests.
type Builder struct {
	cfg    *config.Config
	lister AssetLister
	logger *slog.Logger
}

// New builds a manifest builder. A nil lister defaults to the configured
// asset directory.
func New(cfg *config.Config, lister AssetLister, logger *slog.Logger) (*Builder, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "new", "config is required", nil)
	}
	if lister == nil {
		lister = DirLister{Dir: cfg.Paths.AssetsDir}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Builder{cfg: cfg, lister: lister, logger: logger}, nil
}

// BuildYear binds every candidate row to its distribution asset. Exact
// names bind directly; otherwise the sorted snapshot is searched for the
// first name sharing the row's asset stem (provider-appended suffixes).
// Rows with no match get a null filename — a valid state, not an error.
func (b *Builder) BuildYear(ctx context.Context, year string, rows []notes.CandidateRow) (notes.Manifest, error) {
	yearNum, err := strconv.Atoi(year)
	if err != nil {
		return notes.Manifest{}, services.Wrap(services.ErrValidation, "manifest", "parse year", year, err)
	}

	assets, err := b.lister.ListDistributionAssets(ctx)
	if err != nil {
		return notes.Manifest{}, services.Wrap(services.ErrTransient, "manifest", "list assets", year, err)
	}
	sorted := append([]string{}, assets...)
	sort.Strings(sorted)
	assetSet := make(map[string]struct{}, len(sorted))
	for _, name := range sorted {
		assetSet[name] = struct{}{}
	}

	manifest := notes.Manifest{Year: yearNum, Entries: make([]notes.ManifestEntry, 0, len(rows))}
	for _, row := range rows {
		entry := notes.ManifestEntry{Year: yearNum, SourceID: row.ID}
		if row.Date != "" {
			date := row.Date
			entry.Date = &date
		}

		stem := notes.AssetStem(b.cfg.Curation.Prefix, year, row.ID)
		if name, ok := bindAsset(stem, assetSet, sorted); ok {
			entry.Filename = &name
			entry.HasAudio = true
		}
		manifest.Entries = append(manifest.Entries, entry)
	}
	return manifest, nil
}

// WriteYear builds and atomically writes the per-year manifest JSON,
// returning a build summary.
func (b *Builder) WriteYear(ctx context.Context, year string, rows []notes.CandidateRow) (Summary, error) {
	ctx = logging.WithStage(logging.WithYear(ctx, year), "manifest")
	log := logging.WithContext(ctx, b.logger)

	manifest, err := b.BuildYear(ctx, year, rows)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Year: manifest.Year, Entries: len(manifest.Entries), Path: b.cfg.ManifestPath(year)}
	for _, entry := range manifest.Entries {
		if entry.HasAudio {
			summary.Bound++
		} else {
			summary.Unbound++
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "manifest", "marshal", year, err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(summary.Path, data, 0o644); err != nil {
		return summary, services.Wrap(services.ErrTransient, "manifest", "write", year, err)
	}

	log.Info("manifest written",
		logging.Int("entries", summary.Entries),
		logging.Int("bound", summary.Bound),
		logging.Int("unbound", summary.Unbound),
		logging.String("path", filepath.Base(summary.Path)),
	)
	return summary, nil
}

// bindAsset resolves a row's asset: exact distribution name first, then
// the first lexical match on the stem.
func bindAsset(stem string, assetSet map[string]struct{}, sorted []string) (string, bool) {
	exact := stem + "." + notes.DistributionExt
	if _, ok := assetSet[exact]; ok {
		return exact, true
	}
	for _, name := range sorted {
		if notes.MatchesStem(name, stem) {
			return name, true
		}
	}
	return "", false
}
