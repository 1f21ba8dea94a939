// Package config loads citygraph settings from defaults, an optional citygraph.toml,
// CITYGRAPH_* environment variables and command line flags, in increasing precedence.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/psidex/citygraph/internal/errors"
)

const (
	EnvPrefix = "CITYGRAPH"
	FileName  = "citygraph"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Snapshot SnapshotConfig `mapstructure:"snapshot"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

type ServerConfig struct {
	Address   string `mapstructure:"address"`
	StaticDir string `mapstructure:"static_dir"`
	// GRPCAddress is where the health service listens; empty disables it.
	GRPCAddress string `mapstructure:"grpc_address"`
}

type StoreConfig struct {
	Root string `mapstructure:"root"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type LimitsConfig struct {
	SavePerMinute   int   `mapstructure:"save_per_minute"`
	ImportPerMinute int   `mapstructure:"import_per_minute"`
	MaxUploadMB     int64 `mapstructure:"max_upload_mb"`
}

type SnapshotConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Settle  time.Duration `mapstructure:"settle"`
}

type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.address", "127.0.0.1:3000")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.grpc_address", "127.0.0.1:50051")

	v.SetDefault("store.root", ".")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("limits.save_per_minute", 30)
	v.SetDefault("limits.import_per_minute", 10)
	v.SetDefault("limits.max_upload_mb", 32)

	v.SetDefault("snapshot.timeout", "30s")
	v.SetDefault("snapshot.settle", "2s")

	v.SetDefault("watch.enabled", true)
	v.SetDefault("watch.debounce", "250ms")
}

// New builds the viper instance. configFile, when set, must exist; otherwise
// citygraph.toml is looked for in the working directory and then in
// $XDG_CONFIG_HOME/citygraph, and it is fine for neither to exist.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", configFile)
		}
		return v, nil
	}

	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, FileName))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "read config")
		}
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Server.Address == "":
		return errors.InvalidRequestf("server.address must be set")
	case c.Store.Root == "":
		return errors.InvalidRequestf("store.root must be set")
	case c.Limits.SavePerMinute < 0 || c.Limits.ImportPerMinute < 0:
		return errors.WithHint(errors.InvalidRequestf("rate limits must not be negative"), "use 0 to disable a limit")
	case c.Limits.MaxUploadMB <= 0:
		return errors.InvalidRequestf("limits.max_upload_mb must be positive")
	case c.Snapshot.Timeout <= 0:
		return errors.InvalidRequestf("snapshot.timeout must be positive")
	}
	return nil
}

// WriteDefaults writes every default setting as TOML, ready to be edited.
func WriteDefaults(w io.Writer) error {
	v := viper.New()
	SetDefaults(v)

	if _, err := io.WriteString(w, "# citygraph configuration. Every key can also be set as CITYGRAPH_<SECTION>_<KEY>.\n\n"); err != nil {
		return err
	}
	return errors.Wrap(toml.NewEncoder(w).Encode(v.AllSettings()), "encode defaults")
}

// WriteDefaultsFile writes the defaults to path, refusing to replace an existing file.
func WriteDefaultsFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return errors.Mark(errors.Wrapf(err, "%s", path), errors.ErrConflict)
	}
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := WriteDefaults(f); err != nil {
		return err
	}
	return f.Close()
}
