package mock

import (
	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

var _ mdclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of mdclip.Extractor.
type Extractor struct {
	ExtractArticleFn func(doc *html.Node) (*html.Node, error)
}

func (e *Extractor) ExtractArticle(doc *html.Node) (*html.Node, error) {
	return e.ExtractArticleFn(doc)
}
