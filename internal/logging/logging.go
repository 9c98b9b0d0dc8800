// Package logging configures the zerolog logger shared by the commands.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a logger writing to w. Format "json" emits one JSON object per
// line; anything else uses the human console writer. verbose forces debug.
func New(w io.Writer, level, format string, verbose bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}

	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Str("service", "searchwrapped").Logger()
}

// Init sets the global logger and returns it.
func Init(w io.Writer, level, format string, verbose bool) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = New(w, level, format, verbose)
	return log.Logger
}
