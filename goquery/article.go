// Package goquery implements article extraction and page parsing on top of
// goquery's CSS selector matching.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// Ensure ArticleExtractor implements mdclip.Extractor at compile time.
var _ mdclip.Extractor = (*ArticleExtractor)(nil)

// ArticleSelectors are tried in order before falling back to scoring.
// The first selector whose first match carries significant content wins.
var ArticleSelectors = []string{
	"article",
	`[role="main"]`,
	".article",
	".post",
	".content",
	".main-content",
	".entry-content",
	".post-content",
	"main",
	"#content",
	"#main",
}

// Scoring weights for the fallback pass.
const (
	paragraphWeight = 50
	linkPenalty     = 10
	semanticBonus   = 200

	// Minimum trimmed text length and paragraph count for a selector
	// match to be accepted without scoring.
	significantTextLength = 200
	significantParagraphs = 1
)

const (
	candidateSelector = "div, section, article"
	semanticSelector  = "article, .article, .post, .content"
)

// ArticleExtractor locates the article body using selector priority first
// and a text/paragraph/link score second.
// ArticleExtractor holds no state and is safe for concurrent use.
type ArticleExtractor struct{}

// NewArticleExtractor creates a new ArticleExtractor.
func NewArticleExtractor() *ArticleExtractor {
	return &ArticleExtractor{}
}

// ExtractArticle returns the element most likely to hold the article.
//
// Selector matches follow querySelector semantics: the first element in
// document order, the root itself included. When no selector match carries
// significant content, every div, section and article is scored and the
// strictly highest positive score wins, earliest first on ties. The body
// element is the last resort; without one the result is nil.
func (e *ArticleExtractor) ExtractArticle(doc *html.Node) (*html.Node, error) {
	if doc == nil {
		return nil, nil
	}
	root := goquery.NewDocumentFromNode(doc).Selection

	for _, selector := range ArticleSelectors {
		match := querySelectorAll(root, selector).First()
		if match.Length() > 0 && hasSignificantContent(match) {
			return match.Get(0), nil
		}
	}

	if best := findLargestTextBlock(root); best != nil {
		return best, nil
	}

	if body := querySelectorAll(root, "body").First(); body.Length() > 0 {
		return body.Get(0), nil
	}
	return nil, nil
}

func hasSignificantContent(s *goquery.Selection) bool {
	return textLength(s) > significantTextLength &&
		descendants(s, "p").Length() > significantParagraphs
}

func findLargestTextBlock(root *goquery.Selection) *html.Node {
	var best *html.Node
	maxScore := 0

	querySelectorAll(root, candidateSelector).Each(func(_ int, s *goquery.Selection) {
		if score := Score(s); score > maxScore {
			maxScore = score
			best = s.Get(0)
		}
	})

	return best
}

// Score rates how likely a selection is to be the article body:
// trimmed text length, plus 50 per paragraph, minus 10 per link,
// plus 200 for semantic article markers.
func Score(s *goquery.Selection) int {
	score := textLength(s)
	score += descendants(s, "p").Length() * paragraphWeight
	score -= descendants(s, "a").Length() * linkPenalty

	if s.Is(semanticSelector) {
		score += semanticBonus
	}

	return score
}

// inertSelector matches template contents, which browsers keep out of
// the document tree.
const inertSelector = "template *"

// querySelectorAll matches selector against root and its descendants,
// in document order.
func querySelectorAll(root *goquery.Selection, selector string) *goquery.Selection {
	return root.Filter(selector).AddSelection(root.Find(selector)).Not(inertSelector)
}

// descendants matches selector below s, template contents excluded.
func descendants(s *goquery.Selection, selector string) *goquery.Selection {
	return s.Find(selector).Not(inertSelector)
}

// textLength measures trimmed text the way browsers measure string length,
// in UTF-16 code units.
func textLength(s *goquery.Selection) int {
	n := 0
	for _, r := range strings.TrimSpace(textContent(s)) {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// textContent concatenates the text below s, skipping template contents.
func textContent(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && strings.EqualFold(n.Data, "template"):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	return b.String()
}
