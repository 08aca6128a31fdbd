// Package logging builds the slog handlers used by the autosave command.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseLevel maps a level name to slog. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug", "trace":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewTextHandler returns a human-readable handler writing to w (stderr when nil).
func NewTextHandler(level string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}

	lvl := log.InfoLevel
	reportTimestamp := false
	switch ParseLevel(level) {
	case slog.LevelDebug:
		lvl = log.DebugLevel
		reportTimestamp = true
	case slog.LevelWarn:
		lvl = log.WarnLevel
	case slog.LevelError:
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    strings.EqualFold(level, "trace"),
		Level:           lvl,
		Prefix:          "autosave",
	})
}

// NewJSONHandler returns a JSON handler writing to w (stderr when nil).
func NewJSONHandler(level string, w io.Writer) slog.Handler {
	if w == nil {
		w = os.Stderr
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: strings.EqualFold(level, "trace"),
	})
}

// New builds a logger for format "text" or "json".
func New(format, level string, w io.Writer) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(NewJSONHandler(level, w))
	}
	return slog.New(NewTextHandler(level, w))
}
