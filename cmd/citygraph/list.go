package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the graphs in the import map",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	st := openStore()
	entries, err := st.ImportMap()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ui.Subtle.Fprintf(cmd.OutOrStdout(), "no graphs in %s\n", st.ImportMapPath())
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		_, statErr := os.Stat(filepath.Join(st.Root(), filepath.FromSlash(e.Path), store.GraphFile))
		rows = append(rows, []string{ui.StatusIcon(statErr == nil), e.ID, e.Name, e.Path})
	}
	ui.Table(cmd.OutOrStdout(), []string{" ", "ID", "NAME", "PATH"}, rows)
	fmt.Fprintln(cmd.OutOrStdout())
	ui.Subtle.Fprintf(cmd.OutOrStdout(), "  %d graphs\n", len(entries))
	return nil
}
