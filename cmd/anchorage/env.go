package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tsawler/anchorage/dom"
	"github.com/tsawler/anchorage/internal/config"
	"github.com/tsawler/anchorage/internal/logging"
)

// env is the state every subcommand starts from.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
}

// loadEnv reads the config file, applies flags on top and builds the logger.
// Environment variables override both for logging.
func loadEnv(cmd *cobra.Command) (env, error) {
	flags := cmd.Root().PersistentFlags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return env{}, err
		}
	}

	if flags.Changed("root") {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("ignore") {
		cfg.IgnoreSelector, _ = flags.GetString("ignore")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if cmd.Flags().Lookup("format") != nil && cmd.Flags().Changed("format") {
		cfg.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Lookup("concurrency") != nil && cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	switch mode, _ := flags.GetString("color"); mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
		cfg.NoColor = true
	case "auto", "":
		if cfg.NoColor {
			color.NoColor = true
		}
	default:
		return env{}, fmt.Errorf("unknown color mode: %s", mode)
	}

	if err := cfg.Validate(); err != nil {
		return env{}, err
	}

	lc := logging.DefaultConfig(logging.ProfileRuntime)
	lc.Level, _ = logging.ParseLevel(cfg.LogLevel)
	lc.NoColor = cfg.NoColor
	logging.ApplyEnvOverrides(&lc)

	return env{cfg: cfg, logger: logging.New(lc)}, nil
}

// open parses an HTML file with the configured anchoring root.
func (e env) open(path string) (*dom.Document, error) {
	doc, err := dom.Open(path, dom.WithRoot(e.cfg.Root))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	e.logger.Debug().Str("file", path).Int("length", doc.Len()).Msg("parsed document")
	return doc, nil
}
