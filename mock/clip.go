package mock

import (
	"context"

	"github.com/fwojciec/mdclip"
)

var _ mdclip.ClipService = (*ClipService)(nil)

// ClipService is a mock implementation of mdclip.ClipService.
type ClipService struct {
	CreateClipFn   func(ctx context.Context, clip *mdclip.Clip) error
	FindClipByIDFn func(ctx context.Context, id string) (*mdclip.Clip, error)
	FindClipsFn    func(ctx context.Context, filter mdclip.ClipFilter) ([]*mdclip.Clip, error)
	DeleteClipFn   func(ctx context.Context, id string) error
}

func (s *ClipService) CreateClip(ctx context.Context, clip *mdclip.Clip) error {
	return s.CreateClipFn(ctx, clip)
}

func (s *ClipService) FindClipByID(ctx context.Context, id string) (*mdclip.Clip, error) {
	return s.FindClipByIDFn(ctx, id)
}

func (s *ClipService) FindClips(ctx context.Context, filter mdclip.ClipFilter) ([]*mdclip.Clip, error) {
	return s.FindClipsFn(ctx, filter)
}

func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	return s.DeleteClipFn(ctx, id)
}

var _ mdclip.ClipStore = (*ClipStore)(nil)

// ClipStore is a mock implementation of mdclip.ClipStore.
type ClipStore struct {
	SaveFn   func(ctx context.Context, clip *mdclip.Clip) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *ClipStore) Save(ctx context.Context, clip *mdclip.Clip) error {
	return s.SaveFn(ctx, clip)
}

func (s *ClipStore) Commit() error {
	return s.CommitFn()
}

func (s *ClipStore) Abort() error {
	return s.AbortFn()
}
