package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psidex/citygraph/internal/errors"
)

func loadDefaults(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	require.NoError(t, err)
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := loadDefaults(t)

	assert.Equal(t, "127.0.0.1:3000", cfg.Server.Address)
	assert.Equal(t, "public", cfg.Server.StaticDir)
	assert.Equal(t, "127.0.0.1:50051", cfg.Server.GRPCAddress)
	assert.Equal(t, ".", cfg.Store.Root)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Limits.SavePerMinute)
	assert.Equal(t, int64(32), cfg.Limits.MaxUploadMB)
	assert.Equal(t, 30*time.Second, cfg.Snapshot.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.True(t, cfg.Watch.Enabled)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CITYGRAPH_SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("CITYGRAPH_LIMITS_SAVE_PER_MINUTE", "5")

	t.Chdir(t.TempDir())
	v, err := New("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Limits.SavePerMinute)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[store]\nroot = \"/srv/cities\"\n\n[snapshot]\ntimeout = \"1m\"\n"), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cities", cfg.Store.Root)
	assert.Equal(t, time.Minute, cfg.Snapshot.Timeout)
	assert.Equal(t, "public", cfg.Server.StaticDir)
}

func TestMissingExplicitConfigFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := loadDefaults(t)
	cfg.Limits.SavePerMinute = -1
	err := cfg.Validate()
	assert.True(t, errors.IsInvalidRequest(err))
	assert.NotEmpty(t, errors.GetAllHints(err))

	cfg = loadDefaults(t)
	cfg.Store.Root = ""
	assert.Error(t, cfg.Validate())
}

func TestWriteDefaultsRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDefaults(&buf))
	assert.Contains(t, buf.String(), "[server]")
	assert.Contains(t, buf.String(), `address = "127.0.0.1:3000"`)

	path := filepath.Join(t.TempDir(), "citygraph.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	v, err := New(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, loadDefaults(t), cfg)
}

func TestWriteDefaultsFileRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "citygraph.toml")
	require.NoError(t, WriteDefaultsFile(path))

	err := WriteDefaultsFile(path)
	assert.True(t, errors.IsConflict(err))
}
