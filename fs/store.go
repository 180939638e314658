package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/mdclip"
	"gopkg.in/yaml.v3"
)

// Ensure FileStore implements mdclip.ClipStore at compile time.
var _ mdclip.ClipStore = (*FileStore)(nil)

// FileStore implements mdclip.ClipStore with atomic update semantics.
// Clips are written under a staging directory next to dir and moved into
// dir on Commit, so a failed batch leaves dir as it was. Files already in
// dir are kept unless a committed clip has the same path.
type FileStore struct {
	dir string
}

// NewFileStore creates a new FileStore writing to dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: filepath.Clean(dir)}
}

func (s *FileStore) stagingDir() string {
	return s.dir + ".tmp"
}

// Save writes clip to the staging directory.
func (s *FileStore) Save(ctx context.Context, clip *mdclip.Clip) error {
	if err := clip.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rel, err := ClipPath(clip.URL)
	if err != nil {
		return err
	}

	content, err := FormatClip(clip)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.stagingDir(), filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}

// Commit moves every staged file into place and removes the staging directory.
func (s *FileStore) Commit() error {
	staging := s.stagingDir()
	if _, err := os.Stat(staging); os.IsNotExist(err) {
		return nil
	}

	err := filepath.WalkDir(staging, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(staging, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(s.dir, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return os.Rename(p, dst)
	})
	if err != nil {
		return err
	}
	return os.RemoveAll(staging)
}

// Abort discards staged files.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.stagingDir())
}

// clippedLayout formats the clipped date in frontmatter.
const clippedLayout = "2006-01-02"

// header is the YAML frontmatter written above each clip.
type header struct {
	Source  string `yaml:"source"`
	Title   string `yaml:"title"`
	Clipped string `yaml:"clipped"`
	Tokens  int    `yaml:"tokens,omitempty"`
}

// FormatClip renders clip as Markdown with YAML frontmatter.
func FormatClip(clip *mdclip.Clip) ([]byte, error) {
	clipped := clip.CreatedAt
	if clipped.IsZero() {
		clipped = time.Now()
	}

	meta, err := yaml.Marshal(header{
		Source:  clip.URL,
		Title:   clip.Title,
		Clipped: clipped.Format(clippedLayout),
		Tokens:  clip.Tokens,
	})
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(meta)+len(clip.Markdown)+16)
	out = append(out, "---\n"...)
	out = append(out, meta...)
	out = append(out, "---\n\n"...)
	out = append(out, clip.Markdown...)
	out = append(out, '\n')
	return out, nil
}
