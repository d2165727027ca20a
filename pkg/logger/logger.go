// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to out. format selects the output style:
// "json" emits structured JSON lines, anything else (the config default
// is "pretty") emits a human-readable console format.
func New(out io.Writer, format, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}
