package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"serenade/internal/config"
	"serenade/internal/pipeline"
	"serenade/internal/preflight"
)

func newCurateCommand(ctx *commandContext) *cobra.Command {
	var years []string

	cmd := &cobra.Command{
		Use:   "curate",
		Short: "Select and rank candidate notes into per-year CSV files",
		RunE: ctx.withRunner(func(cmd *cobra.Command, _ *config.Config, runner *pipeline.Runner) error {
			summary, err := runner.CurateYears(cmd.Context(), years)
			if err != nil {
				return err
			}
			printRunSummary(cmd, summary)
			return exitOnFailures(summary)
		}),
	}

	cmd.Flags().StringSliceVar(&years, "years", nil, "Years to curate (default: every year in the corpus)")
	return cmd
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var years []string
	var apply bool
	var limit int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render curated notes to audio assets",
		Long: "Render reads each year's candidate CSV, synthesizes missing raw audio " +
			"through the speech provider, and transcodes it to the distribution format. " +
			"Without --apply the run is a plan: rows are counted but no provider calls are made.",
		RunE: ctx.withRunner(func(cmd *cobra.Command, cfg *config.Config, runner *pipeline.Runner) error {
			if apply {
				if err := gateOnDiskSpace(cfg); err != nil {
					return err
				}
			}
			summary, err := runner.RenderYears(cmd.Context(), years, pipeline.Options{Apply: apply, Limit: limit})
			if err != nil {
				return err
			}
			printRunSummary(cmd, summary)
			return exitOnFailures(summary)
		}),
	}

	cmd.Flags().StringSliceVar(&years, "years", nil, "Years to render (default: every year in the corpus)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Perform provider calls and write assets")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap processed rows per year (0 = no cap)")
	return cmd
}

func newManifestCommand(ctx *commandContext) *cobra.Command {
	var years []string

	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Bind candidate rows to rendered assets in per-year manifests",
		RunE: ctx.withRunner(func(cmd *cobra.Command, _ *config.Config, runner *pipeline.Runner) error {
			summary, err := runner.ManifestYears(cmd.Context(), years)
			if err != nil {
				return err
			}
			printRunSummary(cmd, summary)
			return exitOnFailures(summary)
		}),
	}

	cmd.Flags().StringSliceVar(&years, "years", nil, "Years to index (default: every year in the corpus)")
	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var years []string
	var apply bool
	var limit int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run curate, render, and manifest for each year",
		RunE: ctx.withRunner(func(cmd *cobra.Command, cfg *config.Config, runner *pipeline.Runner) error {
			if apply {
				if err := gateOnDiskSpace(cfg); err != nil {
					return err
				}
			}
			summary, err := runner.RunYears(cmd.Context(), years, pipeline.Options{Apply: apply, Limit: limit})
			if err != nil {
				return err
			}
			printRunSummary(cmd, summary)
			return exitOnFailures(summary)
		}),
	}

	cmd.Flags().StringSliceVar(&years, "years", nil, "Years to process (default: every year in the corpus)")
	cmd.Flags().BoolVar(&apply, "apply", false, "Perform provider calls and write assets")
	cmd.Flags().IntVar(&limit, "limit", 0, "Cap rendered rows per year (0 = no cap)")
	return cmd
}

func gateOnDiskSpace(cfg *config.Config) error {
	check := preflight.CheckDiskSpace("Asset disk space", cfg.Paths.AssetsDir, cfg.Render.MinFreeGiB)
	if !check.Passed {
		return fmt.Errorf("refusing to apply: %s", check.Detail)
	}
	return nil
}

func printRunSummary(cmd *cobra.Command, summary pipeline.RunSummary) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(summary.Years))
	for _, report := range summary.Years {
		row := []string{report.Year, "-", "-", "-", "-", ""}
		if report.Curation != nil {
			row[1] = strconv.Itoa(report.Curation.Selected)
		}
		if report.Render != nil {
			row[2] = strconv.Itoa(report.Render.Rendered + report.Render.Planned)
			row[3] = strconv.Itoa(report.Render.Skipped)
		}
		if report.Manifest != nil {
			row[4] = fmt.Sprintf("%d/%d", report.Manifest.Bound, report.Manifest.Entries)
		}
		if report.Err != nil {
			row[5] = report.Err.Error()
		}
		rows = append(rows, row)
	}

	fmt.Fprintln(out, renderTable(
		[]string{"Year", "Selected", "Rendered", "Skipped", "Bound", "Error"},
		rows,
		2, 3, 4, 5,
	))
	fmt.Fprintf(out, "Run %s finished in %s (%d year(s), %d failed)\n",
		summary.RunID, summary.Elapsed.Round(time.Millisecond), len(summary.Years), summary.Failed)
}

func exitOnFailures(summary pipeline.RunSummary) error {
	if summary.Failed > 0 {
		return fmt.Errorf("%d year(s) failed", summary.Failed)
	}
	return nil
}
