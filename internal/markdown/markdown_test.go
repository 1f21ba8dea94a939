package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBasics(t *testing.T) {
	out, err := Format("# Paris\n\nThe **capital**, see [wiki](https://en.wikipedia.org/wiki/Paris).")
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Paris</h1>")
	assert.Contains(t, out, "<strong>capital</strong>")
	assert.Contains(t, out, `<a href="https://en.wikipedia.org/wiki/Paris">wiki</a>`)
}

func TestFormatStripsScripts(t *testing.T) {
	out, err := Format("hello <script>alert(1)</script> world")
	require.NoError(t, err)

	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "world")
}

func TestFormatDropsJavascriptLinks(t *testing.T) {
	out, err := Format("[click](javascript:alert(1))")
	require.NoError(t, err)

	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, "<a>click</a>")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"event handlers removed", `<p onclick="x()">hi</p>`, `<p>hi</p>`},
		{"unknown element unwrapped", `<p><blink>hi</blink></p>`, `<p>hi</p>`},
		{"iframe dropped", `<iframe src="https://evil"></iframe><p>ok</p>`, `<p>ok</p>`},
		{"relative link kept", `<a href="/graph/1">g</a>`, `<a href="/graph/1">g</a>`},
		{"mailto kept", `<a href="mailto:a@b.c">m</a>`, `<a href="mailto:a@b.c">m</a>`},
		{"obfuscated scheme", "<a href=\"java\tscript:alert(1)\">x</a>", `<a>x</a>`},
		{"data image", `<img src="data:image/png;base64,AAAA" alt="a">`, `<img alt="a"/>`},
		{"comment removed", `<p>a<!-- hidden -->b</p>`, `<p>ab</p>`},
		{"task list checkbox", `<input type="checkbox" checked="" disabled="">`, `<input type="checkbox" checked="" disabled=""/>`},
		{"text input unwrapped", `<input type="text" value="x">`, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafeURL(t *testing.T) {
	assert.True(t, safeURL("https://example.com"))
	assert.True(t, safeURL("HTTP://example.com"))
	assert.True(t, safeURL("#section"))
	assert.True(t, safeURL("texts/rep.json"))
	assert.False(t, safeURL("vbscript:x"))
	assert.False(t, safeURL(" javascript:x"))
}
