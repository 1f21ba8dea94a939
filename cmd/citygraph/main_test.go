package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/highlight"
)

func TestParseInterval(t *testing.T) {
	i, err := parseInterval("3:4")
	require.NoError(t, err)
	assert.Equal(t, highlight.Interval{Start: 3, Length: 4}, i)

	for _, bad := range []string{"3", "a:1", "1:b", ""} {
		_, err := parseInterval(bad)
		assert.True(t, errors.IsInvalidRequest(err), bad)
	}
}

func TestExportFlagsRenderer(t *testing.T) {
	r, err := exportFlags{format: "VIS", theme: "light", link: -1}.renderer("City")
	require.NoError(t, err)
	assert.Equal(t, "html", r.Ext())

	_, err = exportFlags{format: "svg", link: -1}.renderer("City")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMergeCommand(t *testing.T) {
	out, err := run(t, "merge", "4:2", "1:3", "9:1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"start":1,"length":5},{"start":9,"length":1}]`, out)

	_, err = run(t, "merge")
	assert.True(t, errors.Is(err, highlight.ErrNoIntervals))
}

func TestNormalizeAndExportFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":[{"id":"a"},{"id":"b"}],"links":[{"source":"a","target":"b"}]}`), 0o644))

	out, err := run(t, "export", "--file", "-f", "adjacency", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":["b"],"b":["a"]}`, out)
}

func TestSaveAndListCommands(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "graphs", "city"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "import-map.json"), []byte(`[{"id":"city","name":"City","path":"graphs/city"}]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "graphs", "city", "graph.json"), []byte(`{"nodes":[],"links":[]}`), 0o644))
	edited := filepath.Join(root, "edited.json")
	require.NoError(t, os.WriteFile(edited, []byte(`{"nodes":[{"id":1}],"links":[]}`), 0o644))

	out, err := run(t, "--root", root, "save", "city", edited)
	require.NoError(t, err)
	assert.Contains(t, out, "saved city as city_")

	out, err = run(t, "--root", root, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "City_")
	assert.Contains(t, out, "2 graphs")
}

func TestRootFlagsBindToConfig(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "--root", root, "--log-level", "warn", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, root)
	assert.Equal(t, root, cfg.Store.Root)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = run(t, "--log-level", "info", "config", "show")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
}
