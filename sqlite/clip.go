package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mdclip.ClipService = (*ClipService)(nil)

// ClipService implements mdclip.ClipService using SQLite.
type ClipService struct {
	db *DB
}

// NewClipService creates a new ClipService.
func NewClipService(db *DB) *ClipService {
	return &ClipService{db: db}
}

const clipColumns = "id, url, title, markdown, content_hash, tokens, created_at"

// CreateClip saves a new clip and assigns its ID and hash. CreatedAt is set
// to the current time unless the clip already carries one.
func (s *ClipService) CreateClip(ctx context.Context, clip *mdclip.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}

	clip.ID = uuid.New().String()
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = time.Now()
	}
	clip.CreatedAt = clip.CreatedAt.UTC()
	clip.ContentHash = hashContent(clip.Markdown)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO clips (`+clipColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, clip.ID, clip.URL, clip.Title, clip.Markdown, clip.ContentHash, clip.Tokens, formatTime(clip.CreatedAt))

	return err
}

// FindClipByID retrieves a clip by ID.
func (s *ClipService) FindClipByID(ctx context.Context, id string) (*mdclip.Clip, error) {
	clips, err := s.FindClips(ctx, mdclip.ClipFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(clips) == 0 {
		return nil, mdclip.Errorf(mdclip.ENOTFOUND, "clip not found")
	}
	return clips[0], nil
}

// FindClips retrieves clips matching the filter, newest first.
func (s *ClipService) FindClips(ctx context.Context, filter mdclip.ClipFilter) ([]*mdclip.Clip, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + clipColumns + " FROM clips WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clips []*mdclip.Clip
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}

	return clips, rows.Err()
}

// DeleteClip permanently removes a clip.
func (s *ClipService) DeleteClip(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM clips WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return mdclip.Errorf(mdclip.ENOTFOUND, "clip not found")
	}

	return nil
}

func scanClip(rows *sql.Rows) (*mdclip.Clip, error) {
	var clip mdclip.Clip
	var createdAt string

	if err := rows.Scan(&clip.ID, &clip.URL, &clip.Title, &clip.Markdown,
		&clip.ContentHash, &clip.Tokens, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, mdclip.Errorf(mdclip.ENOTFOUND, "clip not found")
		}
		return nil, err
	}

	var err error
	clip.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &clip, nil
}
