// Package logging configures the structured logger. The TUI owns the
// terminal, so log output goes to a file or nowhere, never to stderr while
// the screen is up.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger writing console-formatted lines to w. With debug set
// the threshold drops from info to debug.
func New(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}
	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// NewNop returns a logger that discards everything.
func NewNop() zerolog.Logger {
	return zerolog.Nop()
}

// OpenFile builds the logger for the file named by path, creating or
// appending as needed. An empty path disables logging. The caller closes the
// returned closer on shutdown.
func OpenFile(path string, debug bool) (zerolog.Logger, io.Closer, error) {
	if path == "" {
		return NewNop(), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return NewNop(), nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, debug), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
