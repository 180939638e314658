package mdclip

import "golang.org/x/net/html"

// Converter converts a document subtree to Markdown.
type Converter interface {
	// Convert renders the subtree rooted at n as Markdown.
	// Implementations must not modify the tree.
	Convert(n *html.Node) (string, error)
}
