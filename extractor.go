package mdclip

import "golang.org/x/net/html"

// Extractor locates the article body within a full page document.
type Extractor interface {
	// ExtractArticle returns the root of the subtree most likely to hold
	// the article. It returns a nil node when the document offers nothing,
	// which callers report as ENOCONTENT.
	ExtractArticle(doc *html.Node) (*html.Node, error)
}
