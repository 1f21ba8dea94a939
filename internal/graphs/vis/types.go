package vis

// item is one step of the replay: a node or an edge for vis.DataSet.add.
type item struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type nodeData struct {
	ID    int      `json:"id"`
	Label string   `json:"label"`
	Color string   `json:"color,omitempty"`
	Size  float64  `json:"size,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	// Title is shown on hover: the node's texts, one paragraph each.
	Title string `json:"title,omitempty"`
}

type edgeData struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Title string  `json:"title,omitempty"`
}

func nodeItem(d nodeData) item { return item{Type: "node", Data: d} }
func edgeItem(d edgeData) item { return item{Type: "edge", Data: d} }
