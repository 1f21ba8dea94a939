package graphology

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/lib"
)

// Graphology renders a graph as serialized graphology JSON: an undirected simple graph
// with self loops, where node keys are identifier keys and positions, sizes and colours
// come from the node styling.
type Graphology struct {
	opts graphs.RenderOptions
}

var _ graphs.Renderer = (*Graphology)(nil)

func NewGraphology(o graphs.RenderOptions) *Graphology {
	return &Graphology{opts: o}
}

func (g Graphology) Ext() string         { return "json" }
func (g Graphology) ContentType() string { return "application/json" }

// Serialize builds the graphology document. Edges whose endpoints are not both nodes of
// the graph are left out since graphology refuses them on import.
func (g Graphology) Serialize(graph *graphs.Graph) *SerializedGraph {
	out := &SerializedGraph{
		Options: Options{Type: "undirected", AllowSelfLoops: true},
		Nodes:   []Node{},
		Edges:   []Edge{},
	}

	seenNodes := lib.NewSet[string]()
	for _, n := range graph.Nodes {
		if n == nil || !n.ID.Valid() || !seenNodes.Add(n.ID.Key()) {
			continue
		}
		s := g.opts.NodeStyle(n)
		out.Nodes = append(out.Nodes, Node{
			Key: n.ID.Key(),
			Attributes: NodeAttributes{
				X: coord(n.X), Y: coord(n.Y), Size: s.Radius,
				Label: n.DisplayLabel(), Color: s.Color, BorderColor: s.BorderColor,
				LinkCount: n.LinkCount,
			},
		})
	}

	seenEdges := lib.NewEdgeSet()
	edgeCount := 0
	for _, l := range graph.Links {
		if l == nil || !l.Source.ID.Valid() || !l.Target.ID.Valid() {
			continue
		}
		from, to := l.Source.ID.Key(), l.Target.ID.Key()
		if !seenNodes.Contains(from) || !seenNodes.Contains(to) || !seenEdges.AddOnce(from, to) {
			continue
		}

		edgeCount++
		s := g.opts.LinkStyle(l)
		e := Edge{
			Key:        strconv.Itoa(edgeCount),
			Source:     from,
			Target:     to,
			Undirected: true,
			Attributes: EdgeAttributes{Size: s.Width, Color: s.Color},
		}
		if l.Data != nil {
			e.Attributes.Label = l.Data.Explanation
		}
		out.Edges = append(out.Edges, e)
	}

	return out
}

func (g Graphology) Render(w io.Writer, graph *graphs.Graph) error {
	return json.NewEncoder(w).Encode(g.Serialize(graph))
}

// coord is the numeric value of a position, 0 when it is missing or not a finite number.
func coord(c *graphs.Coord) float64 {
	if c == nil {
		return 0
	}
	f, ok := c.Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
