package mock

import (
	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

var _ mdclip.Converter = (*Converter)(nil)

// Converter is a mock implementation of mdclip.Converter.
type Converter struct {
	ConvertFn func(n *html.Node) (string, error)
}

func (c *Converter) Convert(n *html.Node) (string, error) {
	return c.ConvertFn(n)
}
