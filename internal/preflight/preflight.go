package preflight

import (
	"context"

	"serenade/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config: pipeline
// directories, database presence, free space under the asset directory,
// and provider reachability.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Candidates directory", cfg.Paths.CandidatesDir),
		CheckDirectoryAccess("Assets directory", cfg.Paths.AssetsDir),
		CheckDirectoryAccess("Manifest directory", cfg.Paths.ManifestDir),
		CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir),
		CheckMessagesDB(cfg.Paths.MessagesDB),
		CheckDiskSpace("Asset disk space", cfg.Paths.AssetsDir, cfg.Render.MinFreeGiB),
		CheckTTS(ctx, cfg),
	}
	return results
}

// AllPassed reports whether every result passed.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
