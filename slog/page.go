package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mdclip"
)

// Ensure LoggingPageLoader implements mdclip.PageLoader.
var _ mdclip.PageLoader = (*LoggingPageLoader)(nil)

// LoggingPageLoader wraps a PageLoader with logging.
type LoggingPageLoader struct {
	next   mdclip.PageLoader
	logger *slog.Logger
}

// NewLoggingPageLoader creates a new LoggingPageLoader.
func NewLoggingPageLoader(next mdclip.PageLoader, logger *slog.Logger) *LoggingPageLoader {
	return &LoggingPageLoader{next: next, logger: logger}
}

// LoadPage delegates to the wrapped loader and logs the page title.
func (l *LoggingPageLoader) LoadPage(ctx context.Context, url string) (page *mdclip.Page, err error) {
	defer func(begin time.Time) {
		var title string
		if page != nil {
			title = page.Title
		}
		l.logger.Log(ctx, level(err), "load page",
			"url", url,
			"title", title,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadPage(ctx, url)
}
