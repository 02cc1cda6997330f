package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"serenade/internal/config"
	"serenade/internal/pipeline"
)

func newSweepCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the full pipeline on the configured cron schedule",
		Long: "Sweep keeps the asset library caught up without supervision. On each " +
			"scheduled tick it runs preflight checks and, when they pass, an apply run " +
			"over the configured years. Use --once to sweep immediately and exit.",
		RunE: ctx.withRunner(func(cmd *cobra.Command, cfg *config.Config, runner *pipeline.Runner) error {
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			sweeper, err := pipeline.NewSweeper(runner, logger)
			if err != nil {
				return err
			}

			if once {
				summary, err := sweeper.SweepOnce(cmd.Context())
				if err != nil {
					return err
				}
				printRunSummary(cmd, summary)
				return exitOnFailures(summary)
			}

			if !cfg.Sweep.Enabled {
				return fmt.Errorf("sweep is disabled in configuration (set sweep.enabled or use --once)")
			}
			return sweeper.Run(cmd.Context())
		}),
	}

	cmd.Flags().BoolVar(&once, "once", false, "Sweep immediately instead of scheduling")
	return cmd
}
