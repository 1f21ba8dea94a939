package webserver

import (
	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/highlight"
	"github.com/psidex/citygraph/internal/store"
)

type graphResponse struct {
	Name  string        `json:"name"`
	Graph *graphs.Graph `json:"graph"`
}

// textHighlight is the highlighting of one text paragraph for a search query.
type textHighlight struct {
	PID       int                  `json:"pid"`
	Intervals []highlight.Interval `json:"intervals"`
	HTML      string               `json:"html"`
}

type textResponse struct {
	store.TextDoc
	Highlights []textHighlight `json:"highlights,omitempty"`
}

type highlightRequest struct {
	Text      string               `json:"text,omitempty"`
	Intervals []highlight.Interval `json:"intervals,omitempty"`
	Terms     []string             `json:"terms,omitempty"`
}

type highlightResponse struct {
	Intervals []highlight.Interval `json:"intervals"`
	Covered   int                  `json:"covered"`
	HTML      string               `json:"html,omitempty"`
}

type markdownRequest struct {
	Text string `json:"text"`
}

type markdownResponse struct {
	HTML string `json:"html"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Clients int    `json:"clients"`
}
