package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/ui"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <dir>",
	Short: "Convert flat <name>.json graph files into <name>/graph.json directories",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := store.Migrate(args[0])
		for _, dir := range created {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.StatusIcon(true), dir)
		}
		if err != nil {
			return err
		}
		ui.Subtle.Fprintf(cmd.OutOrStdout(), "%d graphs migrated\n", len(created))
		return nil
	},
}
