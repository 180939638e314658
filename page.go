package mdclip

import (
	"context"
	"encoding/json"

	"golang.org/x/net/html"
)

// Page is a loaded web page: the context a conversion request reads from.
type Page struct {
	URL      string
	Title    string
	Document *html.Node
}

// PageLoader loads a page and parses it into a document tree.
type PageLoader interface {
	LoadPage(ctx context.Context, url string) (*Page, error)
}

// ActionConvertArticle asks for the current page's article as Markdown.
const ActionConvertArticle = "convertArticle"

// Request is a conversion request sent by the host.
type Request struct {
	Action string `json:"action"`
}

// Response answers a Request. Either Markdown or Error is set.
type Response struct {
	Success  bool   `json:"success"`
	Markdown string `json:"markdown,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MarshalJSON encodes {success, markdown} for successful responses and
// {success, error} for failures. The key is written even when it is empty.
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success  bool   `json:"success"`
			Markdown string `json:"markdown"`
		}{true, r.Markdown})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}{false, r.Error})
}

// RequestHandler answers conversion requests against a loaded page.
type RequestHandler interface {
	Handle(req Request, page *Page) Response
}

// ProgressFunc is called as sources are processed.
type ProgressFunc func(Progress)

// Progress reports progress while converting several sources.
// Skipped is set when the source was not converted because it is
// already saved.
type Progress struct {
	Source    string
	Completed int
	Total     int
	Skipped   bool
	Error     error
}
