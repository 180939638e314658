package mdclip

import (
	"context"
	"time"
)

// Clip is a converted article.
type Clip struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	ContentHash string    `json:"contentHash"`
	Tokens      int       `json:"tokens"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the clip contains invalid fields.
func (c *Clip) Validate() error {
	if c.URL == "" {
		return Errorf(EINVALID, "clip URL required")
	}
	if c.Markdown == "" {
		return Errorf(EINVALID, "clip markdown required")
	}
	return nil
}

// ClipService represents a service for managing saved clips.
type ClipService interface {
	// CreateClip saves a new clip and assigns its ID and hash. A zero
	// CreatedAt is set to the current time.
	CreateClip(ctx context.Context, clip *Clip) error

	// FindClipByID retrieves a clip by ID.
	// Returns ENOTFOUND if clip does not exist.
	FindClipByID(ctx context.Context, id string) (*Clip, error)

	// FindClips retrieves clips matching the filter, newest first.
	FindClips(ctx context.Context, filter ClipFilter) ([]*Clip, error)

	// DeleteClip permanently removes a clip.
	// Returns ENOTFOUND if clip does not exist.
	DeleteClip(ctx context.Context, id string) error
}

// ClipFilter represents a filter for FindClips.
type ClipFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ClipStore persists clips as files with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ClipStore interface {
	Save(ctx context.Context, clip *Clip) error
	Commit() error
	Abort() error
}
