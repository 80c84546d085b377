// Package logging builds the zerolog loggers used by the command line tool
// and tests.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables read by ApplyEnvOverrides.
const (
	// EnvLogLevel sets the level by name, for example "debug" or "off".
	EnvLogLevel = "ANCHORAGE_LOG_LEVEL"
	// EnvLogTimestamp turns timestamps on or off.
	EnvLogTimestamp = "ANCHORAGE_LOG_TIMESTAMP"
	// EnvLogNoColor disables colored console output when true.
	EnvLogNoColor = "ANCHORAGE_LOG_NOCOLOR"
)

// Profile selects a set of logging defaults.
type Profile int

const (
	// ProfileRuntime is used by the command line tool.
	ProfileRuntime Profile = iota
	// ProfileTest is used by test loggers.
	ProfileTest
)

// Config describes a console logger.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Output    io.Writer
}

// DefaultConfig returns the settings for profile before environment
// overrides. Runtime logging is at info with timestamps; test logging is at
// debug without them.
func DefaultConfig(profile Profile) Config {
	cfg := Config{Output: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

// New returns a console logger for cfg.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	w := zerolog.ConsoleWriter{Out: out, NoColor: cfg.NoColor}
	if !cfg.Timestamp {
		w.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	ctx := zerolog.New(w).Level(cfg.Level).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

// ApplyEnvOverrides applies the ANCHORAGE_LOG_* variables to cfg. Unset or
// unparsable values leave cfg unchanged.
func ApplyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

// ParseLevel maps a level name to a zerolog level. It reports false for
// empty or unrecognised names.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
