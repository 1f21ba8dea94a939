package vis

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/lib"
	"github.com/psidex/citygraph/internal/style"
)

// DefaultDelay is the pause between replayed items, in milliseconds.
const DefaultDelay = 50

// Vis renders to a HTML page which "replays" the graph using vis.js: each link is
// added after its endpoints, in document order, so the layout grows the way the graph
// was written. Nodes without links are added last.
type Vis struct {
	opts  graphs.RenderOptions
	Delay int
}

var _ graphs.Renderer = (*Vis)(nil)

func NewVis(o graphs.RenderOptions) *Vis {
	return &Vis{opts: o, Delay: DefaultDelay}
}

func (v Vis) Ext() string         { return "html" }
func (v Vis) ContentType() string { return "text/html; charset=utf-8" }

func (v Vis) items(g *graphs.Graph) []item {
	ids := lib.NewInterner[string]()
	byKey := make(map[string]*graphs.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		if n != nil && n.ID.Valid() {
			if _, dup := byKey[n.ID.Key()]; !dup {
				byKey[n.ID.Key()] = n
			}
		}
	}

	items := []item{}
	seenNodes := lib.NewSet[int]()
	addNode := func(key string) int {
		id := ids.ID(key)
		if seenNodes.Add(id) {
			items = append(items, nodeItem(v.nodeData(id, byKey[key])))
		}
		return id
	}

	edges := lib.NewEdgeSet()
	for _, l := range g.Links {
		if l == nil || !l.Source.ID.Valid() || !l.Target.ID.Valid() {
			continue
		}
		from, to := l.Source.ID.Key(), l.Target.ID.Key()
		if byKey[from] == nil || byKey[to] == nil || !edges.AddOnce(from, to) {
			continue
		}
		fromID, toID := addNode(from), addNode(to)
		s := v.opts.LinkStyle(l)
		data := edgeData{From: fromID, To: toID, Color: s.Color, Width: s.Width * 10}
		if l.Data != nil {
			data.Title = l.Data.Explanation
		}
		items = append(items, edgeItem(data))
	}

	for _, n := range g.Nodes {
		if n != nil && n.ID.Valid() && byKey[n.ID.Key()] == n {
			addNode(n.ID.Key())
		}
	}
	return items
}

func (v Vis) nodeData(id int, n *graphs.Node) nodeData {
	s := v.opts.NodeStyle(n)
	data := nodeData{ID: id, Label: n.DisplayLabel(), Color: s.Color, Size: s.Radius * 5}
	data.X, data.Y = position(n.X), position(n.Y)
	if n.Data != nil && len(n.Data.Texts) > 0 {
		texts := make([]string, len(n.Data.Texts))
		for i, t := range n.Data.Texts {
			texts[i] = t.Text
		}
		data.Title = strings.Join(texts, "\n\n")
	}
	return data
}

func position(c *graphs.Coord) *float64 {
	if c == nil {
		return nil
	}
	f, ok := c.Float()
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func (v Vis) Render(w io.Writer, g *graphs.Graph) error {
	items, err := json.Marshal(v.items(g))
	if err != nil {
		return err
	}

	background := "#ffffff"
	if v.opts.Theme == style.Dark {
		background = style.NodeDarkColor
	}

	_, err = fmt.Fprintf(w, page, html.EscapeString(v.opts.PageTitle()), background, items, v.Delay)
	return err
}
