package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/graphs/export"
	"github.com/psidex/citygraph/internal/style"
	"github.com/psidex/citygraph/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <id|file>",
	Short: "Render a normalized graph in another format",
	Long: "Render a graph as one of: " + strings.Join(export.Formats(), ", ") + `.

echarts and vis produce standalone HTML pages; graphology, adjacency and json
produce JSON. Without --out the result is written to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

type exportFlags struct {
	format   string
	out      string
	theme    string
	selected []string
	link     int
	fromFile bool
}

var exportOpts exportFlags

func init() {
	exportCmd.Flags().StringVarP(&exportOpts.format, "format", "f", export.ECharts, "output format")
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "", "file name to write, without extension")
	exportCmd.Flags().StringVar(&exportOpts.theme, "theme", string(style.DefaultTheme), "light or dark")
	exportCmd.Flags().StringSliceVar(&exportOpts.selected, "selected", nil, "node ids to highlight")
	exportCmd.Flags().IntVar(&exportOpts.link, "link", -1, "link id to highlight")
	exportCmd.Flags().BoolVar(&exportOpts.fromFile, "file", false, "treat the argument as a file path")
}

// renderer builds the renderer the flags describe, titled name.
func (f exportFlags) renderer(name string) (graphs.Renderer, error) {
	var link *int
	if f.link >= 0 {
		link = &f.link
	}
	r, err := export.New(f.format, graphs.RenderOptions{
		Title:     name,
		Theme:     style.ParseTheme(f.theme),
		Selection: style.NewSelection(f.selected, link),
	})
	return r, errors.WithHintf(err, "formats: %s", strings.Join(export.Formats(), ", "))
}

func runExport(cmd *cobra.Command, args []string) error {
	g, name, err := loadGraph(args[0], exportOpts.fromFile)
	if err != nil {
		return err
	}
	g.Normalize()

	r, err := exportOpts.renderer(name)
	if err != nil {
		return err
	}

	if exportOpts.out == "" {
		return r.Render(cmd.OutOrStdout(), g)
	}
	path, err := graphs.RenderToFile(r, g, exportOpts.out)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s wrote %s\n", ui.StatusIcon(true), path)
	return nil
}
