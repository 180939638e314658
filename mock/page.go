package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.PageLoader = (*PageLoader)(nil)

// PageLoader is a mock implementation of mdclip.PageLoader.
type PageLoader struct {
	LoadPageFn func(ctx context.Context, url string) (*mdclip.Page, error)
}

func (l *PageLoader) LoadPage(ctx context.Context, url string) (*mdclip.Page, error) {
	return l.LoadPageFn(ctx, url)
}
