package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"serenade/internal/config"
	"serenade/internal/messages"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <export.csv>",
		Short: "Import a message export into the local database",
		Long: "Import reads a CSV export with header id,sender,sentAt,text,emotion and " +
			"loads it into the message database. Re-importing the same export is safe: " +
			"rows are upserted by (id, sender, sentAt).",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			msgs, skipped, err := messages.ReadExport(path)
			if err != nil {
				return err
			}

			store, err := messages.Open(cfg.Paths.MessagesDB)
			if err != nil {
				return err
			}
			defer store.Close()

			imported, err := store.Import(cmd.Context(), msgs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d message(s) from %s\n", imported, path)
			if skipped > 0 {
				fmt.Fprintf(out, "Skipped %d malformed row(s)\n", skipped)
			}
			return nil
		},
	}
}
