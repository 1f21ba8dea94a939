package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTheme(t *testing.T) {
	assert.Equal(t, Light, ParseTheme("light"))
	assert.Equal(t, Light, ParseTheme(" LIGHT "))
	assert.Equal(t, Dark, ParseTheme("dark"))
	assert.Equal(t, DefaultTheme, ParseTheme(""))
	assert.Equal(t, DefaultTheme, ParseTheme("solarized"))
}

func TestNodeUsesThemeColours(t *testing.T) {
	dark := Node("", 0, false, Dark)
	assert.Equal(t, NodeDarkColor, dark.Color)
	assert.Equal(t, TextDarkColor, dark.TextColor)
	assert.Equal(t, "transparent", dark.BorderColor)
	assert.Equal(t, 0.2, dark.BorderWidth)
	assert.Equal(t, 1.0, dark.Radius)
	assert.Equal(t, NodeFont, dark.TextFont)

	light := Node("", 2, false, Light)
	assert.Equal(t, TextLightColor, light.TextColor)
	assert.Equal(t, 3.0, light.Radius)
}

func TestNodePayloadColourWins(t *testing.T) {
	opts := Node("#ff0000", 0, true, Dark)
	assert.Equal(t, "#ff0000", opts.Color)
	assert.Equal(t, "#ff0000", opts.TextColor)
	assert.Equal(t, HighlightColor, opts.BorderColor)
	assert.Equal(t, 0.5, opts.BorderWidth)
}

func TestLink(t *testing.T) {
	plain := Link("", false, Light)
	assert.Equal(t, LinkLightColor, plain.Color)
	assert.Equal(t, LinkLightColor, plain.ParticleBorderColor)
	assert.Equal(t, 0.1, plain.Width)

	assert.Equal(t, "#00ff00", Link("#00ff00", false, Dark).ArrowColor)

	selected := Link("#00ff00", true, Dark)
	assert.Equal(t, HighlightColor, selected.Color)
	assert.Equal(t, HighlightColor, selected.ArrowBorderColor)
	assert.Equal(t, 0.3, selected.Width)
}

func TestSelection(t *testing.T) {
	link := 4
	sel := NewSelection([]string{"1", "paris"}, &link)

	assert.True(t, sel.HasNode("paris"))
	assert.False(t, sel.HasNode("2"))
	assert.True(t, sel.HasLink(4))
	assert.False(t, sel.HasLink(0))
	assert.False(t, Selection{}.HasLink(0))
	assert.False(t, Selection{}.HasNode("1"))
}
