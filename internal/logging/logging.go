// Package logging configures the structured logger shared by the command
// line and the library packages that log (simulation runs, experiments and
// run storage).
// The numerical packages never log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLevel names the environment variable holding the default level.
const EnvLevel = "ASTROGOLF_LOG_LEVEL"

type Options struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer // defaults to stderr
}

// New builds a logger. Text output goes to stderr unless Output is set, so
// it never mixes with data written to stdout.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(out, hopts))
	}
	return slog.New(slog.NewTextHandler(out, hopts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level: %q", s)
}

// LevelFromEnv reads EnvLevel, falling back to info.
func LevelFromEnv() slog.Level {
	level, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
