package graphology

type NodeAttributes struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	BorderColor string  `json:"borderColor,omitempty"`
	// LinkCount is the node's degree as Normalize counted it, parallel links included.
	LinkCount int `json:"linkCount"`
}

type Node struct {
	Key        string         `json:"key"`
	Attributes NodeAttributes `json:"attributes"`
}

type EdgeAttributes struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Label string  `json:"label,omitempty"`
}

type Edge struct {
	Key        string         `json:"key"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Undirected bool           `json:"undirected"`
	Attributes EdgeAttributes `json:"attributes"`
}

type Options struct {
	Type           string `json:"type"`
	Multi          bool   `json:"multi"`
	AllowSelfLoops bool   `json:"allowSelfLoops"`
}

// SerializedGraph is the format graphology's Graph.import accepts.
type SerializedGraph struct {
	Options Options `json:"options"`
	Nodes   []Node  `json:"nodes"`
	Edges   []Edge  `json:"edges"`
}
