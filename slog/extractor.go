package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// Ensure LoggingExtractor implements mdclip.Extractor.
var _ mdclip.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   mdclip.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next mdclip.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractArticle logs which element was chosen.
func (e *LoggingExtractor) ExtractArticle(doc *html.Node) (article *html.Node, err error) {
	defer func(begin time.Time) {
		var tag string
		if article != nil {
			tag = article.Data
		}
		e.logger.Log(context.Background(), level(err), "extract article",
			"found", article != nil,
			"tag", tag,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractArticle(doc)
}
