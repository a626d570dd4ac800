// SPDX-License-Identifier: MPL-2.0

// Package logging builds the structured logger shared by the importer and CLI.
package logging

import (
	"io"
	"log/slog"

	"galaxy-importer/internal/config"

	"github.com/charmbracelet/log"
)

// Prefix tags every line written by the importer.
const Prefix = "importer"

// Level maps a configured level onto the charmbracelet/log level.
func Level(l config.LogLevel) log.Level {
	switch l {
	case config.LogLevelDebug:
		return log.DebugLevel
	case config.LogLevelWarn:
		return log.WarnLevel
	case config.LogLevelError:
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New returns a slog.Logger that writes to w at the given level. Debug
// level also reports the caller.
func New(w io.Writer, level config.LogLevel) *slog.Logger {
	handler := log.NewWithOptions(w, log.Options{
		Level:        Level(level),
		Prefix:       Prefix,
		ReportCaller: level == config.LogLevelDebug,
	})
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
