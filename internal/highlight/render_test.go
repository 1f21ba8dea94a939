package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("Paris & Lyon", []Interval{{8, 4}, {0, 3}, {2, 3}})
	require.NoError(t, err)
	assert.Equal(t, "<mark>Paris</mark> &amp; <mark>Lyon</mark>", out)
}

func TestRenderEscapesMarkup(t *testing.T) {
	out, err := Render("<script>x</script>", []Interval{{8, 1}})
	require.NoError(t, err)
	assert.Equal(t, "&lt;script&gt;<mark>x</mark>&lt;/script&gt;", out)
}

func TestRenderClampsSpans(t *testing.T) {
	out, err := Render("Köln", []Interval{{-2, 3}, {3, 10}})
	require.NoError(t, err)
	assert.Equal(t, "<mark>K</mark>öl<mark>n</mark>", out)

	out, err = Render("Köln", []Interval{{3, 10}})
	require.NoError(t, err)
	assert.Equal(t, "Köl<mark>n</mark>", out)
}

func TestRenderWithoutSpans(t *testing.T) {
	out, err := Render("a < b", nil)
	require.NoError(t, err)
	assert.Equal(t, "a &lt; b", out)
}
