// Package htmltomarkdown provides a CommonMark converter backed by
// html-to-markdown. It covers tables, code fences and the rest of
// CommonMark, unlike the fixed rule table of package markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// Ensure Converter implements mdclip.Converter at compile time.
var _ mdclip.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert an article node to Markdown.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative link and image URLs against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms the subtree rooted at n into Markdown.
// The subtree is serialized first because html-to-markdown rewrites the
// nodes it converts; n itself is left untouched.
func (c *Converter) Convert(n *html.Node) (string, error) {
	if n == nil {
		return "", mdclip.Errorf(mdclip.EINVALID, "nil node")
	}

	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	result, err := c.conv.ConvertString(sb.String(), opts...)
	if err != nil {
		return "", mdclip.Errorf(mdclip.ECONVERSION, "%v", err)
	}
	result = strings.TrimSpace(result)
	if result == "" {
		return "", nil
	}
	return result + "\n\n", nil
}
