package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/ui"
)

var saveCmd = &cobra.Command{
	Use:   "save <original-id> <graph-file>",
	Short: "Save an edited graph as a new version of an existing one",
	Long: `Store graph-file ("-" reads stdin) as a timestamped copy of original-id, the
same way the frontend's save button does.`,
	Args: cobra.ExactArgs(2),
	RunE: runSave,
}

var saveName string

func init() {
	saveCmd.Flags().StringVar(&saveName, "name", "", "display name (default: the original's)")
}

func runSave(cmd *cobra.Command, args []string) error {
	b, err := readInput(args[1])
	if err != nil {
		return err
	}
	if _, err := graphs.Parse(b); err != nil {
		return err
	}

	res, err := openStore().Save(store.SaveRequest{
		OriginalID: args[0],
		Graph:      json.RawMessage(b),
		Name:       saveName,
	}, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s saved %s as %s (%s)\n",
		ui.StatusIcon(true), args[0], ui.Brand.Sprint(res.ID), res.Path)
	return nil
}
