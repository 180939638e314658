package fs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/fwojciec/mdclip"
)

// ParseClip reads a clip file produced by FormatClip.
func ParseClip(data []byte) (*mdclip.Clip, error) {
	var meta header
	rest, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return nil, mdclip.Errorf(mdclip.EINVALID, "invalid frontmatter: %v", err)
	}
	if meta.Source == "" {
		return nil, mdclip.Errorf(mdclip.EINVALID, "frontmatter has no source")
	}

	clip := &mdclip.Clip{
		URL:      meta.Source,
		Title:    meta.Title,
		Markdown: strings.TrimSpace(string(rest)),
		Tokens:   meta.Tokens,
	}
	if meta.Clipped != "" {
		clipped, err := time.Parse(clippedLayout, meta.Clipped)
		if err != nil {
			return nil, mdclip.Errorf(mdclip.EINVALID, "invalid clipped date %q", meta.Clipped)
		}
		clip.CreatedAt = clipped
	}
	if err := clip.Validate(); err != nil {
		return nil, err
	}
	return clip, nil
}

// Clips reads every committed clip under the store directory, ordered by
// file path. Markdown files without clip frontmatter are skipped.
func (s *FileStore) Clips(ctx context.Context) ([]*mdclip.Clip, error) {
	var paths []string
	err := filepath.WalkDir(s.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".md" {
			paths = append(paths, p)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, mdclip.Errorf(mdclip.ENOTFOUND, "directory %s not found", s.dir)
	} else if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	clips := make([]*mdclip.Clip, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		clip, err := ParseClip(data)
		if mdclip.ErrorCode(err) == mdclip.EINVALID {
			continue
		} else if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}
