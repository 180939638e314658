package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/clip"
	"github.com/fwojciec/mdclip/goquery"
)

// Ensure SourceLoader implements mdclip.PageLoader at compile time.
var _ mdclip.PageLoader = (*SourceLoader)(nil)

// SourceLoader loads pages from web URLs, local HTML files and standard
// input ("-"). Title and URL, when set, replace what the page reports.
type SourceLoader struct {
	Web   mdclip.PageLoader
	Stdin io.Reader
	Title string
	URL   string
}

// LoadPage loads source according to its kind.
func (l *SourceLoader) LoadPage(ctx context.Context, source string) (*mdclip.Page, error) {
	page, err := l.load(ctx, source)
	if err != nil {
		return nil, err
	}
	if l.Title != "" {
		page.Title = l.Title
	}
	if l.URL != "" {
		page.URL = l.URL
	}
	return page, nil
}

func (l *SourceLoader) load(ctx context.Context, source string) (*mdclip.Page, error) {
	switch {
	case source == "-":
		if l.Stdin == nil {
			return nil, mdclip.Errorf(mdclip.EINVALID, "standard input not available")
		}
		data, err := io.ReadAll(l.Stdin)
		if err != nil {
			return nil, err
		}
		return goquery.ParsePage(source, string(data))

	case clip.HostOf(source) != "":
		if l.Web == nil {
			return nil, mdclip.Errorf(mdclip.EINVALID, "no fetcher configured for %s", source)
		}
		return l.Web.LoadPage(ctx, source)

	default:
		data, err := os.ReadFile(source)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, mdclip.Errorf(mdclip.ENOTFOUND, "file %s not found", source)
		}
		if err != nil {
			return nil, err
		}
		return goquery.ParsePage(source, string(data))
	}
}
