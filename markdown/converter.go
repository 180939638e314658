// Package markdown converts HTML document trees to Markdown using a fixed
// tag-to-markup rule table.
package markdown

import (
	"strconv"
	"strings"

	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// Ensure Converter implements mdclip.Converter at compile time.
var _ mdclip.Converter = (*Converter)(nil)

// Converter implements mdclip.Converter with the rule table.
// It holds no state and is safe for concurrent use.
type Converter struct{}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Convert renders the subtree rooted at n as Markdown. It never fails.
func (c *Converter) Convert(n *html.Node) (string, error) {
	return Convert(n), nil
}

// Convert renders a single node as Markdown.
//
// Whitespace-only text nodes render as nothing; other text nodes keep their
// spacing. Links, images and lists are handled before the rule table since
// they read attributes or children directly. Template contents are inert
// and render as nothing, as does any node that is neither text nor element.
func Convert(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return ""
		}
		return n.Data
	case html.ElementNode:
	default:
		return ""
	}

	tag := tagName(n)
	switch tag {
	case "template":
		return ""
	case "a":
		text := TextContent(n)
		if href := attr(n, "href"); href != "" {
			return "[" + text + "](" + href + ")"
		}
		return text
	case "img":
		return "![" + attr(n, "alt") + "](" + attr(n, "src") + ")\n\n"
	case "ul", "ol":
		return convertList(n, tag == "ol")
	}

	inner := TextContent(n)
	if rule, ok := LookupRule(tag); ok {
		return rule.Render(inner)
	}
	return fallback(inner)
}

// TextContent converts the children of n and concatenates the results.
// Text children are copied verbatim and element children are converted,
// so nested rules compose. No separators are inserted between children;
// the concatenation is trimmed once at the end.
func TextContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			b.WriteString(Convert(c))
		}
	}
	return strings.TrimSpace(b.String())
}

// convertList renders the direct li children of a list, one per line.
// Other children are dropped.
func convertList(n *html.Node, ordered bool) string {
	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || tagName(c) != "li" {
			continue
		}
		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(len(items)+1) + ". "
		}
		items = append(items, prefix+TextContent(c))
	}
	return strings.Join(items, "\n") + "\n\n"
}

func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
