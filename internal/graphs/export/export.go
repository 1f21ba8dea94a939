// Package export picks a graphs.Renderer by format name.
package export

import (
	"slices"
	"strings"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/graphs/graphology"
	"github.com/psidex/citygraph/internal/graphs/vis"
)

const (
	ECharts    = "echarts"
	Vis        = "vis"
	Graphology = "graphology"
	Adjacency  = "adjacency"
	JSON       = "json"
)

// Formats lists every supported format name, sorted.
func Formats() []string {
	f := []string{ECharts, Vis, Graphology, Adjacency, JSON}
	slices.Sort(f)
	return f
}

// New returns the renderer for format. Unknown formats are invalid requests.
func New(format string, o graphs.RenderOptions) (graphs.Renderer, error) {
	switch strings.ToLower(format) {
	case ECharts:
		return graphs.NewECharts(o), nil
	case Vis:
		return vis.NewVis(o), nil
	case Graphology:
		return graphology.NewGraphology(o), nil
	case Adjacency:
		return graphs.Adjacency{}, nil
	case JSON:
		return graphs.Document{Indent: true}, nil
	default:
		return nil, errors.WithHintf(
			errors.InvalidRequestf("unknown export format %q", format),
			"use one of %s", strings.Join(Formats(), ", "),
		)
	}
}
