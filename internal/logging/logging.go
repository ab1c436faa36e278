// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// ParseLevel maps a LOG_LEVEL value onto a slog level. Unknown values fall back to info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// New returns a logger writing JSON records, or console records through
// charmbracelet/log when format is "text". The writer defaults to [os.Stdout].
func New(format, level string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	lvl := ParseLevel(level)

	if strings.EqualFold(format, FormatText) {
		handler := log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Level:           log.Level(lvl),
		})
		return slog.New(handler)
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
