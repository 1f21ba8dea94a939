package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/config"
	"github.com/psidex/citygraph/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create citygraph configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a citygraph.toml holding every default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FileName + ".toml"
		if len(args) == 1 {
			path = args[0]
		}
		if err := config.WriteDefaultsFile(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s\n", ui.StatusIcon(true), path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if used := v.ConfigFileUsed(); used != "" {
			ui.Subtle.Fprintf(cmd.OutOrStdout(), "  from %s\n", used)
		}
		keys := v.AllKeys()
		sort.Strings(keys)
		pairs := make([][2]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, [2]string{k, fmt.Sprint(v.Get(k))})
		}
		ui.KeyValue(cmd.OutOrStdout(), pairs)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
