// Package testlog provides loggers that write through testing.TB so log
// output is attached to the test that produced it.
package testlog

import (
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tsawler/anchorage/internal/logging"
)

// New returns a logger with the test profile that writes to t.
func New(t testing.TB) zerolog.Logger {
	t.Helper()
	cfg := logging.DefaultConfig(logging.ProfileTest)
	cfg.Output = zerolog.NewTestWriter(t)
	cfg.NoColor = true
	logging.ApplyEnvOverrides(&cfg)
	return logging.New(cfg)
}

// Recorder captures log lines in memory so tests can assert on them. It is
// safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Write implements io.Writer.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, string(p))
	return len(p), nil
}

// Lines returns the captured lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Contains reports whether any captured line contains every one of subs.
func (r *Recorder) Contains(subs ...string) bool {
	for _, line := range r.Lines() {
		all := true
		for _, s := range subs {
			if !strings.Contains(line, s) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// NewRecorder returns a debug-level logger writing to a Recorder.
func NewRecorder() (zerolog.Logger, *Recorder) {
	rec := &Recorder{}
	return zerolog.New(rec).Level(zerolog.DebugLevel), rec
}
