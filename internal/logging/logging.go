// Package logging builds the zerolog loggers used by pipelines.
package logging

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New creates a logger writing to w at the given level.
// The console format is meant for humans, the json format for log collectors.
func New(level, format string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), errors.Wrapf(err, "invalid log level %q", level)
	}

	var logger zerolog.Logger
	switch strings.ToLower(format) {
	case FormatJSON:
		logger = zerolog.New(w)
	case FormatConsole, "":
		logger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05.000"})
	default:
		return zerolog.Nop(), errors.Errorf("invalid log format %q", format)
	}

	return logger.Level(lvl).With().Timestamp().Str("component", "pipeline").Logger(), nil
}
