// Package logging configures the process-wide slog logger.
//
// Usage:
//
//	logging.Setup(slog.LevelInfo, logging.FormatText)  // colored output via tint
//	logging.Setup(slog.LevelDebug, logging.FormatJSON) // one JSON object per line
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats accepted by Setup.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Setup installs a default logger writing to stderr at level in format.
// Unknown formats fall back to text.
func Setup(level slog.Level, format string) {
	slog.SetDefault(New(os.Stderr, level, format))
}

// New returns a logger writing to w at level in format.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		}))
	}

	return slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	)
}
