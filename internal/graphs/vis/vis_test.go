package vis

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/graphs"
	"github.com/psidex/citygraph/internal/style"
)

func TestItemsReplayLinksThenIsolatedNodes(t *testing.T) {
	g, err := graphs.Parse([]byte(`{
		"nodes": [{"id": "a", "label": "Paris", "x": 1, "y": "2"}, {"id": "b"}, {"id": "c"}],
		"links": [
			{"source": "b", "target": "a", "data": {"id": 1, "explanation": "train"}},
			{"source": "a", "target": "b"},
			{"source": "a", "target": "ghost"}
		]
	}`))
	require.NoError(t, err)
	g.Normalize()

	v := NewVis(graphs.RenderOptions{Theme: style.Light})
	raw, err := json.Marshal(v.items(g))
	require.NoError(t, err)

	var items []struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &items))

	types := []string{}
	for _, it := range items {
		types = append(types, it.Type)
	}
	assert.Equal(t, []string{"node", "node", "edge", "node"}, types)

	assert.JSONEq(t, `{"id":1,"label":"b","color":"#21252D","size":5}`, string(items[0].Data))
	assert.JSONEq(t, `{"id":2,"label":"Paris","color":"#21252D","size":5,"x":1,"y":2}`, string(items[1].Data))
	assert.JSONEq(t, `{"from":1,"to":2,"color":"#BBBBBB","width":1,"title":"train"}`, string(items[2].Data))
	assert.JSONEq(t, `{"id":3,"label":"c","color":"#21252D","size":5}`, string(items[3].Data))
}

func TestRenderEscapesTitle(t *testing.T) {
	g, err := graphs.Parse([]byte(`{"nodes": [{"id": 1}]}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	v := NewVis(graphs.RenderOptions{Title: "<b>cities</b>"})
	require.NoError(t, v.Render(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "<title>&lt;b&gt;cities&lt;/b&gt;</title>")
	assert.Contains(t, out, "const delay = 50;")
	assert.Contains(t, out, `"type":"node"`)
	assert.Equal(t, "html", v.Ext())
}

func TestNodeTitleJoinsTexts(t *testing.T) {
	g, err := graphs.Parse([]byte(`{"nodes": [{"id": 1, "data": {"texts": [{"id": 1, "text": "old town"}, {"id": 2, "text": "harbour"}]}}]}`))
	require.NoError(t, err)

	items := NewVis(graphs.RenderOptions{}).items(g)
	require.Len(t, items, 1)
	assert.Equal(t, "old town\n\nharbour", items[0].Data.(nodeData).Title)
}
