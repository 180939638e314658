// Package clip orchestrates article conversion. It combines extraction and
// Markdown conversion into complete documents, answers conversion requests,
// and converts batches of sources concurrently.
package clip

import (
	"strings"

	"github.com/fwojciec/mdclip"
	"golang.org/x/net/html"
)

// NoContentMessage is reported when extraction finds nothing to convert.
const NoContentMessage = "No article content found"

// Builder turns a page document into a Markdown document.
// Builder is safe for concurrent use if its Extractor and Converter are.
type Builder struct {
	Extractor mdclip.Extractor
	Converter mdclip.Converter
}

// NewBuilder creates a new Builder.
func NewBuilder(extractor mdclip.Extractor, converter mdclip.Converter) *Builder {
	return &Builder{Extractor: extractor, Converter: converter}
}

// Header returns the title heading and source line that open every document.
func Header(title, url string) string {
	return "# " + title + "\n\n*Source: [" + url + "](" + url + ")*\n\n"
}

// BuildDocument extracts the article from doc, converts it, and prepends the
// header. The result is trimmed.
//
// Returns ENOCONTENT when the extractor finds nothing and ECONVERSION when
// extraction or conversion fails, panics included. No partial document is
// ever returned.
func (b *Builder) BuildDocument(doc *html.Node, title, url string) (md string, err error) {
	defer func() {
		if r := recover(); r != nil {
			md, err = "", mdclip.Errorf(mdclip.ECONVERSION, "%v", r)
		}
	}()

	article, err := b.Extractor.ExtractArticle(doc)
	if err != nil {
		return "", conversionError(err)
	}
	if article == nil {
		return "", mdclip.Errorf(mdclip.ENOCONTENT, NoContentMessage)
	}

	body, err := b.Converter.Convert(article)
	if err != nil {
		return "", conversionError(err)
	}

	return strings.TrimSpace(Header(title, url) + body), nil
}

// BuildClip converts a loaded page into a clip.
func (b *Builder) BuildClip(page *mdclip.Page) (*mdclip.Clip, error) {
	md, err := b.BuildDocument(page.Document, page.Title, page.URL)
	if err != nil {
		return nil, err
	}
	return &mdclip.Clip{
		URL:      page.URL,
		Title:    page.Title,
		Markdown: md,
	}, nil
}

// Handle answers a conversion request for page. Every failure is reported
// in the response; Handle never panics on bad input.
func (b *Builder) Handle(req mdclip.Request, page *mdclip.Page) mdclip.Response {
	if req.Action != mdclip.ActionConvertArticle {
		return failure(mdclip.Errorf(mdclip.EINVALID, "unsupported action %q", req.Action))
	}
	if page == nil {
		return failure(mdclip.Errorf(mdclip.ENOCONTENT, NoContentMessage))
	}

	md, err := b.BuildDocument(page.Document, page.Title, page.URL)
	if err != nil {
		return failure(err)
	}
	return mdclip.Response{Success: true, Markdown: md}
}

func failure(err error) mdclip.Response {
	return mdclip.Response{Success: false, Error: mdclip.ErrorMessage(err)}
}

// conversionError keeps application errors and classifies anything else as
// a conversion failure carrying the original message.
func conversionError(err error) error {
	if mdclip.ErrorCode(err) != mdclip.EINTERNAL {
		return err
	}
	return &mdclip.Error{Code: mdclip.ECONVERSION, Message: err.Error()}
}
