package snapshot

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileURL(t *testing.T) {
	u, err := FileURL(filepath.Join(t.TempDir(), "my graph.html"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(u, "file:///"), u)
	assert.True(t, strings.HasSuffix(u, "/my%20graph.html"), u)
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Greater(t, o.Timeout, o.Settle)
	assert.Positive(t, o.Width)
	assert.Positive(t, o.Height)
}

func findChrome() bool {
	for _, name := range []string{"google-chrome", "google-chrome-stable", "chromium", "chromium-browser", "headless-shell"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func TestCapture(t *testing.T) {
	if testing.Short() || !findChrome() {
		t.Skip("needs a Chrome binary")
	}

	page := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(page, []byte(`<html><body style="background:#21252D">city</body></html>`), 0o644))
	u, err := FileURL(page)
	require.NoError(t, err)

	o := DefaultOptions()
	o.Settle = 100 * time.Millisecond
	res, err := Capture(context.Background(), u, o)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(res.PNG, []byte("\x89PNG")))
	assert.Positive(t, res.Duration)
}
