// Package style decides how nodes and links are drawn for a theme and a selection.
package style

import "strings"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	DefaultTheme = Dark
)

const (
	HighlightColor = "#000000"
	TextDarkColor  = "#d2d2d2"
	TextLightColor = "#21252D"
	LinkDarkColor  = "#C5C5C5FF"
	LinkLightColor = "#BBBBBB"
	NodeDarkColor  = "#21252D"
	NodeLightColor = "#21252D"

	NodeFont = "Nunito"
)

// ParseTheme accepts "light" or "dark" in any case; anything else is the default theme.
func ParseTheme(s string) Theme {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light
	case Dark:
		return Dark
	default:
		return DefaultTheme
	}
}

type NodeOptions struct {
	Color       string  `json:"color"`
	BorderColor string  `json:"borderColor"`
	BorderWidth float64 `json:"borderWidth"`
	Radius      float64 `json:"radius"`
	TextColor   string  `json:"textColor"`
	TextFont    string  `json:"textFont"`
}

type LinkOptions struct {
	Color               string  `json:"color"`
	ArrowColor          string  `json:"arrowColor"`
	ParticleColor       string  `json:"particleColor"`
	ArrowBorderColor    string  `json:"arrowBorderColor"`
	ParticleBorderColor string  `json:"particleBorderColor"`
	Width               float64 `json:"width"`
}

// Node styles a node from its payload colour and size. An empty dataColor means the
// node has none and the theme colour applies; the web frontend instead keeps an
// explicit "" and draws with it.
func Node(dataColor string, size float64, selected bool, theme Theme) NodeOptions {
	color, textColor := NodeLightColor, TextLightColor
	if theme == Dark {
		color, textColor = NodeDarkColor, TextDarkColor
	}
	if dataColor != "" {
		color, textColor = dataColor, dataColor
	}

	opts := NodeOptions{
		Color:       color,
		BorderColor: "transparent",
		BorderWidth: 0.2,
		Radius:      1 + size,
		TextColor:   textColor,
		TextFont:    NodeFont,
	}
	if selected {
		opts.BorderColor = HighlightColor
		opts.BorderWidth = 0.5
	}
	return opts
}

// Link styles a link. A selected link is drawn entirely in the highlight colour. As in
// Node, an empty dataColor falls back to the theme.
func Link(dataColor string, selected bool, theme Theme) LinkOptions {
	color := LinkLightColor
	if theme == Dark {
		color = LinkDarkColor
	}
	if dataColor != "" {
		color = dataColor
	}

	width := 0.1
	if selected {
		color = HighlightColor
		width = 0.3
	}

	return LinkOptions{
		Color:               color,
		ArrowColor:          color,
		ParticleColor:       color,
		ArrowBorderColor:    color,
		ParticleBorderColor: color,
		Width:               width,
	}
}

// Selection is the set of selected node keys plus at most one selected link id.
type Selection struct {
	nodes map[string]struct{}
	link  *int
}

func NewSelection(nodeKeys []string, link *int) Selection {
	s := Selection{nodes: make(map[string]struct{}, len(nodeKeys)), link: link}
	for _, k := range nodeKeys {
		s.nodes[k] = struct{}{}
	}
	return s
}

func (s Selection) HasNode(key string) bool {
	_, ok := s.nodes[key]
	return ok
}

func (s Selection) HasLink(id int) bool {
	return s.link != nil && *s.link == id
}
