// Package logger provides structured logging using zerolog.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log zerolog.Logger

// output is where Log writes; tests swap it for a buffer.
var output io.Writer = os.Stdout

func init() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	Log = newConsole(output)
}

func newConsole(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: w != os.Stdout}).
		With().
		Timestamp().
		Caller().
		Logger()
}

func newJSON(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// SetLevel sets the global log level.
func SetLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// SetJSON switches to JSON output (for production).
func SetJSON() {
	Log = newJSON(output)
}

// SetFormat selects JSON output for "json" and the human-readable console
// writer for anything else.
func SetFormat(format string) {
	if format == "json" {
		SetJSON()
		return
	}
	Log = newConsole(output)
}
