package clip

import (
	"context"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/bloom"
)

// SavedFilter reports sources that already have a saved clip. A Bloom filter
// over the saved URLs answers most lookups; possible hits are confirmed
// against the clip service.
type SavedFilter struct {
	seen  *bloom.Filter
	clips mdclip.ClipService
}

// NewSavedFilter loads the URLs of all saved clips.
func NewSavedFilter(ctx context.Context, clips mdclip.ClipService) (*SavedFilter, error) {
	saved, err := clips.FindClips(ctx, mdclip.ClipFilter{})
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(saved))
	for _, c := range saved {
		urls = append(urls, c.URL)
	}
	return &SavedFilter{seen: bloom.NewFilterFrom(urls), clips: clips}, nil
}

// Skip reports whether source has been saved. It has the SkipFunc signature.
func (f *SavedFilter) Skip(ctx context.Context, source string) (bool, error) {
	if !f.seen.Test(source) {
		return false, nil
	}
	found, err := f.clips.FindClips(ctx, mdclip.ClipFilter{URL: &source, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}

// Add records source as saved.
func (f *SavedFilter) Add(source string) {
	f.seen.Add(source)
}
