package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mdclip"
	main "github.com/fwojciec/mdclip/cmd/mdclip"
	"github.com/fwojciec/mdclip/fs"
	"github.com/fwojciec/mdclip/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves new clips and skips saved ones", func(t *testing.T) {
		t.Parallel()

		// Given a clip directory with two clips, one already in history
		dir := filepath.Join(t.TempDir(), "clips")
		store := fs.NewFileStore(dir)
		ctx := context.Background()
		require.NoError(t, store.Save(ctx, &mdclip.Clip{URL: "https://example.com/a", Title: "A", Markdown: "# A"}))
		require.NoError(t, store.Save(ctx, &mdclip.Clip{URL: "https://example.com/b", Title: "B", Markdown: "# B"}))
		require.NoError(t, store.Commit())

		existing := &mdclip.Clip{ID: "clip-a", URL: "https://example.com/a"}
		var created []string
		clips := &mock.ClipService{
			FindClipsFn: func(_ context.Context, filter mdclip.ClipFilter) ([]*mdclip.Clip, error) {
				if filter.URL == nil || *filter.URL == existing.URL {
					return []*mdclip.Clip{existing}, nil
				}
				return nil, nil
			},
			CreateClipFn: func(_ context.Context, clip *mdclip.Clip) error {
				created = append(created, clip.URL)
				return nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Clips:  clips,
		}

		// When importing the directory
		err := (&main.ImportCmd{Dir: dir}).Run(deps)

		// Then only the new clip is saved
		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/b"}, created)
		assert.Contains(t, stdout.String(), "Imported 1 clips (1 already saved)")
	})

	t.Run("reports a missing directory", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Clips:  &mock.ClipService{},
		}

		err := (&main.ImportCmd{Dir: filepath.Join(t.TempDir(), "missing")}).Run(deps)

		assert.Equal(t, mdclip.ENOTFOUND, mdclip.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}
