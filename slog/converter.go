package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// Ensure LoggingConverter implements mdclip.Converter.
var _ mdclip.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   mdclip.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next mdclip.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert logs the size of the produced Markdown.
func (c *LoggingConverter) Convert(n *html.Node) (md string, err error) {
	defer func(begin time.Time) {
		c.logger.Log(context.Background(), level(err), "convert",
			"bytes", len(md),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(n)
}
