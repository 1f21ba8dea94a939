package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/ui"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [id|file]",
	Short: "Fill in neighbors, link counts and numeric positions",
	Long: `Normalize a graph and print it as JSON. The argument is a graph id from the
import map, or with --file a path ("-" reads stdin). Statistics go to stderr.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

var (
	normalizeFromFile bool
	normalizeStats    bool
)

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeFromFile, "file", false, "treat the argument as a file path")
	normalizeCmd.Flags().BoolVar(&normalizeStats, "stats", false, "only print statistics")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ref := "-"
	if len(args) == 1 {
		ref = args[0]
	} else {
		normalizeFromFile = true
	}

	g, _, err := loadGraph(ref, normalizeFromFile)
	if err != nil {
		return err
	}
	stats := g.Normalize()

	ui.KeyValue(os.Stderr, [][2]string{
		{"nodes", strconv.Itoa(stats.Nodes)},
		{"links", strconv.Itoa(stats.Links)},
		{"indexed", strconv.Itoa(stats.IndexedLinks)},
		{"skipped", strconv.Itoa(stats.SkippedLinks)},
		{"isolated", strconv.Itoa(stats.IsolatedNodes)},
	})
	if normalizeStats {
		return nil
	}
	return graphs.Document{Indent: true}.Render(cmd.OutOrStdout(), g)
}
