package readability_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mdclip.Extractor at compile time.
var _ mdclip.Extractor = (*readability.Extractor)(nil)

// extract parses raw, extracts the article and renders it back to HTML.
func extract(t *testing.T, raw string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	require.NoError(t, err)

	n, err := readability.NewExtractor(nil).ExtractArticle(doc)
	require.NoError(t, err)
	require.NotNil(t, n)

	var sb strings.Builder
	require.NoError(t, html.Render(&sb, n))
	return sb.String()
}

func TestExtractor_NilDocument(t *testing.T) {
	t.Parallel()

	n, err := readability.NewExtractor(nil).ExtractArticle(nil)

	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	got := extract(t, `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article>
<h1>Main Heading</h1>
<p>This is the main article content that should be preserved in the output. It has enough text to be considered the primary content of the page by the readability scorer.</p>
<p>A second paragraph keeps going with more important article paragraph text, so the article clearly outweighs everything else on the page.</p>
</article>
<footer><p>Footer copyright text</p></footer>
</body>
</html>`)

	assert.Contains(t, got, "important article paragraph text")
	assert.NotContains(t, got, "Home Nav Link")
	assert.NotContains(t, got, "Footer copyright text")
}

func TestExtractor_PreservesStructure(t *testing.T) {
	t.Parallel()

	got := extract(t, `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h2>Subheading Level Two</h2>
<p>Paragraph with a <a href="https://example.com">link</a> and some <code>inline code</code>, long enough to count as real prose for the scorer.</p>
<ul><li>First item</li><li>Second item</li></ul>
<pre><code class="language-bash">npm install my-package</code></pre>
<p>Closing paragraph with more words so that the article container is chosen as the main content of this page.</p>
</article>
</body>
</html>`)

	assert.Contains(t, got, "Subheading Level Two")
	assert.Contains(t, got, "<a")
	assert.Contains(t, got, "<code")
	assert.Contains(t, got, "<li")
	assert.Contains(t, got, "npm install my-package")
}

func TestExtractor_DoesNotModifyDocument(t *testing.T) {
	t.Parallel()

	raw := `<html><head><title>T</title></head><body><nav>menu</nav><article><p>Article text that is long enough to be picked as the main content of the page.</p></article></body></html>`
	doc, err := html.Parse(strings.NewReader(raw))
	require.NoError(t, err)
	var before strings.Builder
	require.NoError(t, html.Render(&before, doc))

	_, err = readability.NewExtractor(nil).ExtractArticle(doc)
	require.NoError(t, err)

	var after strings.Builder
	require.NoError(t, html.Render(&after, doc))
	assert.Equal(t, before.String(), after.String())
}
