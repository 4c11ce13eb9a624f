// Package logger builds the zerolog logger shared by the catalog binaries.
package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a logger for env. "dev" gets a human-readable console writer
// at debug level; every other environment gets JSON lines at info level.
// A non-empty level overrides the default.
func New(out io.Writer, env, level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	w := out
	if env == "dev" {
		lvl = zerolog.DebugLevel
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "3:04PM"}
	}
	if level != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
			lvl = parsed
		}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
