package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"serenade/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Run readiness checks for an apply run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(os.Stdout)

			results := preflight.RunAll(cmd.Context(), cfg)
			for _, result := range results {
				printCheck(out, result, colorize)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				printDepStatus(out, status, colorize)
			}

			if !preflight.AllPassed(results) {
				return fmt.Errorf("preflight failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
