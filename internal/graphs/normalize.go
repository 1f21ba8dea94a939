package graphs

// NeighborIndex maps an identifier key (see ID.Key) to the identifiers of the nodes
// linked to it, one entry per incident link endpoint.
type NeighborIndex map[string][]ID

// add indexes a link in both directions. It reports false, and leaves the index
// alone, when either endpoint is not a valid identifier.
func (idx NeighborIndex) add(link *Link) bool {
	if link == nil {
		return false
	}
	sourceID, targetID := link.Source.ID, link.Target.ID
	if !sourceID.Valid() || !targetID.Valid() {
		return false
	}

	sourceKey, targetKey := sourceID.Key(), targetID.Key()
	idx[sourceKey] = append(idx[sourceKey], targetID)
	idx[targetKey] = append(idx[targetKey], sourceID)
	return true
}

// BuildNeighborIndex indexes links without touching any node.
func BuildNeighborIndex(links []*Link) NeighborIndex {
	idx := make(NeighborIndex)
	for _, link := range links {
		idx.add(link)
	}
	return idx
}

// Stats summarises one Normalize call.
type Stats struct {
	Nodes         int `json:"nodes"`
	Links         int `json:"links"`
	IndexedLinks  int `json:"indexedLinks"`
	SkippedLinks  int `json:"skippedLinks"`
	IsolatedNodes int `json:"isolatedNodes"`
}

type Result struct {
	Nodes []*Node
	Links []*Link
	Stats Stats
}

// Normalize prepares a decoded graph for a force layout. Every link whose endpoints
// are both valid identifiers is indexed as undirected; links with a bad endpoint are
// skipped for indexing but still returned. Each node then gets its neighbor list,
// its link count and numeric x/y.
//
// Normalize takes exclusive access to its arguments for the duration of the call:
// nodes are updated in place and returned in the same slice, links are returned in a
// new slice holding the same pointers in the same order. Neighbor slices are shared
// between nodes with the same identifier key.
func Normalize(nodes []*Node, links []*Link) Result {
	idx := make(NeighborIndex)
	stats := Stats{Nodes: len(nodes), Links: len(links)}

	out := make([]*Link, 0, len(links))
	for _, link := range links {
		if idx.add(link) {
			stats.IndexedLinks++
		} else {
			stats.SkippedLinks++
		}
		out = append(out, link)
	}

	for _, node := range nodes {
		if node == nil {
			continue
		}
		neighbors, ok := idx[node.ID.Key()]
		if !ok || !node.ID.Valid() {
			neighbors = []ID{}
			stats.IsolatedNodes++
		}

		node.Neighbors = neighbors
		node.LinkCount = len(neighbors)
		if node.X != nil && node.X.truthy() {
			x := node.X.numericValue()
			node.X = &x
		}
		if node.Y != nil && node.Y.truthy() {
			y := node.Y.numericValue()
			node.Y = &y
		}
	}

	return Result{Nodes: nodes, Links: out, Stats: stats}
}

// Normalize runs Normalize over the graph's own nodes and links.
func (g *Graph) Normalize() Stats {
	res := Normalize(g.Nodes, g.Links)
	g.Links = res.Links
	return res.Stats
}
