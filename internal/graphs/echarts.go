package graphs

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/citygraph/internal/lib"
	"github.com/psidex/citygraph/internal/style"
)

// symbolScale turns a style radius into an echarts symbol size in pixels.
const symbolScale = 8

// ECharts renders a go-echarts force layout HTML page.
type ECharts struct {
	opts RenderOptions
}

var _ Renderer = (*ECharts)(nil)

func NewECharts(o RenderOptions) *ECharts {
	return &ECharts{opts: o}
}

func (e ECharts) Ext() string         { return "html" }
func (e ECharts) ContentType() string { return "text/html; charset=utf-8" }

// series converts the graph into echarts nodes and links. Nodes are keyed by
// identifier so duplicates and invalid identifiers are dropped; links are kept once per
// unordered endpoint pair and only when both ends are drawn.
func (e ECharts) series(g *Graph) ([]opts.GraphNode, []opts.GraphLink) {
	seen := lib.NewSet[string]()
	nodes := []opts.GraphNode{}
	links := []opts.GraphLink{}

	for _, n := range g.Nodes {
		if n == nil || !n.ID.Valid() || !seen.Add(n.ID.Key()) {
			continue
		}
		s := e.opts.nodeStyle(n)
		nodes = append(nodes, opts.GraphNode{
			Name:       n.ID.Key(),
			SymbolSize: s.Radius * symbolScale,
			ItemStyle: &opts.ItemStyle{
				Color:       s.Color,
				BorderColor: s.BorderColor,
			},
		})
	}

	edges := lib.NewEdgeSet()
	for _, l := range g.Links {
		if l == nil || !l.Source.ID.Valid() || !l.Target.ID.Valid() {
			continue
		}
		from, to := l.Source.ID.Key(), l.Target.ID.Key()
		if from == to || !seen.Contains(from) || !seen.Contains(to) || !edges.AddOnce(from, to) {
			continue
		}
		links = append(links, opts.GraphLink{
			Source:    from,
			Target:    to,
			LineStyle: &opts.LineStyle{Color: e.opts.linkStyle(l).Color},
		})
	}

	return nodes, links
}

func (e ECharts) Render(w io.Writer, g *Graph) error {
	nodes, links := e.series(g)

	page := components.NewPage()
	page.PageTitle = e.opts.title()
	page.AddCharts(e.graphBase(nodes, links))
	return page.Render(w)
}

func (e ECharts) graphBase(nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	textColor := style.TextLightColor
	if e.opts.Theme == style.Dark {
		textColor = style.TextDarkColor
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: e.opts.title(),
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
				Force:     &opts.GraphForce{Repulsion: 400},
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    textColor,
			Position: "top",
		}),
	)
	return graph
}
