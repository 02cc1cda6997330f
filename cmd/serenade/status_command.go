package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"serenade/internal/config"
	"serenade/internal/deps"
	"serenade/internal/messages"
	"serenade/internal/notes"
	"serenade/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show corpus, environment, and provider status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(os.Stdout)

			printSection(out, "Corpus", colorize)
			printCorpusStatus(cmd.Context(), cfg, out, colorize)

			printSection(out, "Environment", colorize)
			for _, check := range []preflight.Result{
				preflight.CheckDirectoryAccess("Candidates directory", cfg.Paths.CandidatesDir),
				preflight.CheckDirectoryAccess("Assets directory", cfg.Paths.AssetsDir),
				preflight.CheckDirectoryAccess("Manifest directory", cfg.Paths.ManifestDir),
				preflight.CheckDiskSpace("Asset disk space", cfg.Paths.AssetsDir, cfg.Render.MinFreeGiB),
			} {
				printCheck(out, check, colorize)
			}

			printSection(out, "External tools", colorize)
			for _, status := range preflight.CheckSystemDeps(cfg) {
				printDepStatus(out, status, colorize)
			}

			printSection(out, "Provider", colorize)
			printCheck(out, preflight.CheckTTSFromConfig(cfg), colorize)

			printSection(out, "Latest asset", colorize)
			printLatestAsset(out, cfg.Paths.AssetsDir, cfg.Render.FFmpegBinary, colorize)
			return nil
		},
	}
}

func printSection(out io.Writer, title string, colorize bool) {
	for _, line := range renderSectionHeader(title, colorize) {
		fmt.Fprintln(out, line)
	}
}

func printCheck(out io.Writer, check preflight.Result, colorize bool) {
	kind := statusError
	if check.Passed {
		kind = statusOK
	}
	fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
}

func printDepStatus(out io.Writer, status deps.Status, colorize bool) {
	kind := statusOK
	detail := status.Command
	if !status.Available {
		detail = status.Detail
		if status.Optional {
			kind = statusWarn
		} else {
			kind = statusError
		}
	}
	fmt.Fprintln(out, renderStatusLine(status.Name, kind, detail, colorize))
}

func printCorpusStatus(ctx context.Context, cfg *config.Config, out io.Writer, colorize bool) {
	store, err := messages.Open(cfg.Paths.MessagesDB)
	if err != nil {
		fmt.Fprintln(out, renderStatusLine("Messages", statusError, err.Error(), colorize))
		return
	}
	defer store.Close()

	count, err := store.Count(ctx)
	if err != nil {
		fmt.Fprintln(out, renderStatusLine("Messages", statusError, err.Error(), colorize))
		return
	}
	fmt.Fprintln(out, renderStatusLine("Messages", statusInfo, fmt.Sprintf("%d imported", count), colorize))

	years, err := store.Years(ctx, cfg.Curation.Sender)
	if err != nil {
		fmt.Fprintln(out, renderStatusLine("Years", statusError, err.Error(), colorize))
		return
	}
	detail := "none"
	if len(years) > 0 {
		detail = strings.Join(years, ", ")
	}
	fmt.Fprintln(out, renderStatusLine("Years", statusInfo, detail, colorize))
}

func printLatestAsset(out io.Writer, assetsDir, ffmpegBinary string, colorize bool) {
	entries, err := os.ReadDir(assetsDir)
	if err != nil {
		fmt.Fprintln(out, renderStatusLine("Asset", statusWarn, err.Error(), colorize))
		return
	}
	var assets []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), "."+notes.DistributionExt) {
			assets = append(assets, entry.Name())
		}
	}
	if len(assets) == 0 {
		fmt.Fprintln(out, renderStatusLine("Asset", statusInfo, "no rendered assets yet", colorize))
		return
	}
	sort.Strings(assets)
	latest := assets[len(assets)-1]

	probe := preflight.ProbeAsset(deps.ResolveFFprobePath(ffmpegBinary), filepath.Join(assetsDir, latest))
	fmt.Fprintln(out, renderStatusLine("Asset", statusInfo, probe.Detail(), colorize))
}
