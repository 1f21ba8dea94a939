package graphs

import (
	"encoding/json"
	"io"

	"github.com/psidex/citygraph/internal/lib"
)

// Adjacency renders the neighbor index as a JSON object of identifier key to the
// sorted, de-duplicated keys of its neighbors. Unlike Normalize it does not keep one
// entry per link, so parallel links collapse.
type Adjacency struct{}

var _ Renderer = Adjacency{}

func (Adjacency) Ext() string         { return "json" }
func (Adjacency) ContentType() string { return "application/json" }

func (a Adjacency) toMap(g *Graph) map[string][]string {
	sets := make(map[string]lib.Set[string])
	for _, n := range g.Nodes {
		if n != nil && n.ID.Valid() {
			sets[n.ID.Key()] = lib.NewSet[string]()
		}
	}

	for key, neighbors := range BuildNeighborIndex(g.Links) {
		if _, ok := sets[key]; !ok {
			sets[key] = lib.NewSet[string]()
		}
		for _, id := range neighbors {
			sets[key].Add(id.Key())
		}
	}

	slicedSets := make(map[string][]string, len(sets))
	for key, value := range sets {
		slicedSets[key] = lib.Sorted(value)
	}
	return slicedSets
}

func (a Adjacency) Render(w io.Writer, g *Graph) error {
	jsonData, err := json.MarshalIndent(a.toMap(g), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(jsonData)
	return err
}
