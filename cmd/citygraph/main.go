package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psidex/citygraph/internal/config"
	"github.com/psidex/citygraph/internal/errors"
	"github.com/psidex/citygraph/internal/logger"
	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/ui"
)

var (
	configFile string
	v          *viper.Viper
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "citygraph",
	Short: "Serve, normalize and export city graphs",
	Long: `citygraph keeps a directory of graph documents described by import-map.json
and serves them to the graph frontend.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CITYGRAPH_* prefix, e.g. CITYGRAPH_STORE_ROOT)
3. --config, or ./citygraph.toml, or <user config dir>/citygraph/citygraph.toml
4. Default values

Examples:
  citygraph serve                       # Start the API and websocket server
  citygraph list                        # List graphs in the import map
  citygraph export city -f vis          # Export a graph as a standalone page
  citygraph merge 0:5 3:4 10:2          # Merge highlight intervals`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if v, err = config.New(configFile); err != nil {
			return err
		}
		for key, flag := range map[string]string{
			"store.root": "root",
			"log.level":  "log-level",
			"log.json":   "log-json",
		} {
			if err := v.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
				return errors.Wrapf(err, "bind --%s", flag)
			}
		}
		if err := bindCommandFlags(cmd); err != nil {
			return err
		}
		if cfg, err = config.Load(v); err != nil {
			return err
		}
		return logger.Initialize(cfg.Log.Level, cfg.Log.JSON)
	},
}

// commandFlags maps viper keys onto flags of individual commands; see bindCommandFlags.
var commandFlags = map[*cobra.Command]map[string]string{}

func bindCommandFlags(cmd *cobra.Command) error {
	for key, flag := range commandFlags[cmd] {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "bind --%s", flag)
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./citygraph.toml)")
	rootCmd.PersistentFlags().String("root", ".", "data root holding import-map.json")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(configCmd)
}

// openStore opens the configured data root.
func openStore(opts ...store.Option) *store.Store {
	return store.New(cfg.Store.Root, opts...)
}

func main() {
	err := rootCmd.Execute()
	logger.Sync()
	if err != nil {
		ui.Fail(os.Stderr, err, errors.GetAllHints(err)...)
		os.Exit(1)
	}
}
