// Package logging builds the zerolog loggers shared by the CLI, fetcher and
// web server.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvMode  = "SHUTTLEBOARD_ENV"
	EnvLevel = "SHUTTLEBOARD_LOG_LEVEL"
)

// New returns a logger tagged with component. Output is human readable when
// SHUTTLEBOARD_ENV=dev and JSON otherwise.
func New(component string) zerolog.Logger {
	return NewWithWriter(os.Stderr, component)
}

func NewWithWriter(out io.Writer, component string) zerolog.Logger {
	if strings.EqualFold(os.Getenv(EnvMode), "dev") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).
		Level(levelFromEnv()).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}

func levelFromEnv() zerolog.Level {
	raw := strings.TrimSpace(os.Getenv(EnvLevel))
	if raw == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
