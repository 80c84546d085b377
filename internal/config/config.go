// Package config loads the command line tool's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/tsawler/anchorage/internal/logging"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
	FormatPretty  = "pretty"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by every subcommand.
type Config struct {
	// Root is an XPath expression selecting the anchoring root. Empty means
	// the <body> element.
	Root           string
	IgnoreSelector string
	Concurrency    int
	Format         string
	LogLevel       string
	NoColor        bool
}

type fileConfig struct {
	Document struct {
		Root           string `toml:"root"`
		IgnoreSelector string `toml:"ignore_selector"`
	} `toml:"document"`
	Anchor struct {
		Concurrency int `toml:"concurrency"`
	} `toml:"anchor"`
	Output struct {
		Format  string `toml:"format"`
		NoColor bool   `toml:"no_color"`
	} `toml:"output"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		Concurrency: runtime.GOMAXPROCS(0),
		Format:      FormatJSON,
		LogLevel:    "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}

	if meta.IsDefined("document", "root") {
		cfg.Root = strings.TrimSpace(raw.Document.Root)
	}
	if meta.IsDefined("document", "ignore_selector") {
		cfg.IgnoreSelector = strings.TrimSpace(raw.Document.IgnoreSelector)
	}
	if meta.IsDefined("anchor", "concurrency") {
		cfg.Concurrency = raw.Anchor.Concurrency
	}
	if meta.IsDefined("output", "format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Output.Format))
	}
	if meta.IsDefined("output", "no_color") {
		cfg.NoColor = raw.Output.NoColor
	}
	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.TrimSpace(raw.Log.Level)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values a config file or flags may have set.
func (c Config) Validate() error {
	switch c.Format {
	case FormatJSON, FormatMsgpack, FormatPretty:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency %d", ErrInvalid, c.Concurrency)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}
