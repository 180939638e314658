// Package slog provides logging decorators for mdclip services. Each
// decorator logs one line per call: at debug level on success and at warn
// level on failure.
package slog

import (
	"log/slog"
)

func level(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}
