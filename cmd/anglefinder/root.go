package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/anglefinder/config"
	"github.com/katalvlaran/anglefinder/internal/logging"
)

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "anglefinder",
		Short: "Find cheap motion sequences between 16-bit angles",
		Long: `anglefinder explores every angle reachable from a set of starting angles
with a table of game motions, then lists the cheapest motion sequences into
each target angle.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML run configuration (defaults apply when empty)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(newSearchCmd(g), newSnapsCmd(g), newMotionsCmd(g))

	return root
}

// logger builds the stderr logger for the chosen level.
func (g *globals) logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(g.logLevel)
	if err != nil {
		return nil, err
	}

	return logging.New(os.Stderr, level), nil
}

// load returns the configuration file, or the defaults when none is given.
func (g *globals) load() (*config.Config, error) {
	if g.configPath == "" {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}

	return config.Load(g.configPath)
}
