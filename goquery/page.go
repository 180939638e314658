package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdclip"
)

// ParsePage parses raw HTML into a page. The title follows document.title:
// the first title element with ASCII whitespace stripped and collapsed.
func ParsePage(url, rawHTML string) (*mdclip.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "failed to parse HTML: %v", err)
	}

	return &mdclip.Page{
		URL:      url,
		Title:    collapseSpace(doc.Find("title").First().Text()),
		Document: doc.Get(0),
	}, nil
}

// collapseSpace strips and collapses ASCII whitespace. Other spaces such as
// NBSP are kept.
func collapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\f', '\r':
			return true
		}
		return false
	}), " ")
}

// Ensure Loader implements mdclip.PageLoader at compile time.
var _ mdclip.PageLoader = (*Loader)(nil)

// Loader fetches pages and parses them into document trees.
type Loader struct {
	fetcher mdclip.Fetcher
}

// NewLoader creates a new Loader backed by fetcher.
func NewLoader(fetcher mdclip.Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// LoadPage fetches url and parses the returned HTML.
func (l *Loader) LoadPage(ctx context.Context, url string) (*mdclip.Page, error) {
	rawHTML, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParsePage(url, rawHTML)
}
