package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/graphs/export"
	"github.com/psidex/citygraph/internal/snapshot"
	"github.com/psidex/citygraph/internal/ui"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <id|file>",
	Short: "Capture a PNG of a graph with headless Chrome",
	Long: `Export the graph as an echarts (or --format vis) page and screenshot it with a
local Chrome or Chromium.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

var snapshotOpts struct {
	exportFlags
	png    string
	width  int64
	height int64
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapshotOpts.format, "format", "f", export.ECharts, "page format: echarts or vis")
	f.StringVar(&snapshotOpts.theme, "theme", "dark", "light or dark")
	f.StringSliceVar(&snapshotOpts.selected, "selected", nil, "node ids to highlight")
	f.IntVar(&snapshotOpts.link, "link", -1, "link id to highlight")
	f.BoolVar(&snapshotOpts.fromFile, "file", false, "treat the argument as a file path")
	f.StringVarP(&snapshotOpts.png, "out", "o", "graph.png", "PNG file to write")
	f.Int64Var(&snapshotOpts.width, "width", 1600, "viewport width")
	f.Int64Var(&snapshotOpts.height, "height", 1000, "viewport height")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	if snapshotOpts.format != export.ECharts && snapshotOpts.format != export.Vis {
		return errors.WithHint(errors.InvalidRequestf("cannot snapshot format %q", snapshotOpts.format), "use echarts or vis")
	}

	g, name, err := loadGraph(args[0], snapshotOpts.fromFile)
	if err != nil {
		return err
	}
	g.Normalize()

	r, err := snapshotOpts.renderer(name)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "citygraph-snapshot-")
	if err != nil {
		return errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(dir)

	page, err := graphs.RenderToFile(r, g, filepath.Join(dir, "graph"))
	if err != nil {
		return err
	}
	pageURL, err := snapshot.FileURL(page)
	if err != nil {
		return err
	}

	o := snapshot.DefaultOptions()
	o.Timeout = cfg.Snapshot.Timeout
	o.Settle = cfg.Snapshot.Settle
	o.Width, o.Height = snapshotOpts.width, snapshotOpts.height

	res, err := snapshot.Capture(cmd.Context(), pageURL, o)
	if err != nil {
		return err
	}
	if err := os.WriteFile(snapshotOpts.png, res.PNG, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", snapshotOpts.png)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s %s\n", ui.StatusIcon(true), snapshotOpts.png,
		ui.Subtle.Sprintf("(%d bytes downloaded, %s)", res.DownloadedBytes, res.Duration.Round(1e6)))
	return nil
}
