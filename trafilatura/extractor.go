// Package trafilatura provides an article extractor backed by go-trafilatura.
package trafilatura

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdclip"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mdclip.Extractor at compile time.
var _ mdclip.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to locate the main content of a page.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor. pageURL may be nil.
func NewExtractor(pageURL *url.URL) *Extractor {
	return &Extractor{pageURL: pageURL}
}

// ExtractArticle returns trafilatura's content node for doc. The node
// belongs to a tree of its own; doc is never modified.
//
// Trafilatura reports pages it cannot extract from as errors; those are
// treated as pages without an article and yield nil.
func (e *Extractor) ExtractArticle(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, nil
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return nil, err
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		OriginalURL:    e.pageURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(sb.String()), opts)
	if err != nil || result == nil {
		return nil, nil
	}
	return result.ContentNode, nil
}
