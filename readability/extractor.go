// Package readability provides an article extractor backed by
// go-readability, a port of Mozilla's Readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/mdclip"
	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Extractor implements mdclip.Extractor at compile time.
var _ mdclip.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to locate the main content of a page.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor. pageURL, if non-nil, is used to
// resolve relative links inside the article.
func NewExtractor(pageURL *url.URL) *Extractor {
	return &Extractor{pageURL: pageURL}
}

// ExtractArticle returns the readable content of doc as the body of a new
// document, or nil when readability finds nothing. doc is serialized before
// extraction since readability prunes the tree it works on.
func (e *Extractor) ExtractArticle(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, nil
	}

	var sb strings.Builder
	if err := html.Render(&sb, doc); err != nil {
		return nil, err
	}

	article, err := readability.FromReader(strings.NewReader(sb.String()), e.pageURL)
	if err != nil {
		return nil, mdclip.Errorf(mdclip.ECONVERSION, "readability: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, nil
	}

	content, err := html.Parse(strings.NewReader(article.Content))
	if err != nil {
		return nil, err
	}
	return findBody(content), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
