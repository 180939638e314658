package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createClip(t *testing.T, svc *sqlite.ClipService, url, markdown string) *mdclip.Clip {
	t.Helper()
	clip := &mdclip.Clip{URL: url, Title: "Title " + url, Markdown: markdown}
	require.NoError(t, svc.CreateClip(context.Background(), clip))
	return clip
}

func TestClipService_CreateClip(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		clip := &mdclip.Clip{URL: "https://ex.com/a", Title: "A", Markdown: "# A", Tokens: 3}

		err := svc.CreateClip(context.Background(), clip)

		require.NoError(t, err)
		assert.NotEmpty(t, clip.ID)
		assert.Len(t, clip.ContentHash, 16)
		assert.False(t, clip.CreatedAt.IsZero())
	})

	t.Run("keeps an existing timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		clipped := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		clip := &mdclip.Clip{URL: "https://ex.com/a", Markdown: "# A", CreatedAt: clipped}

		require.NoError(t, svc.CreateClip(context.Background(), clip))

		got, err := svc.FindClipByID(context.Background(), clip.ID)
		require.NoError(t, err)
		assert.True(t, clipped.Equal(got.CreatedAt))
	})

	t.Run("same markdown yields same hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		a := createClip(t, svc, "https://ex.com/a", "# Same")
		b := createClip(t, svc, "https://ex.com/b", "# Same")
		c := createClip(t, svc, "https://ex.com/c", "# Different")

		assert.Equal(t, a.ContentHash, b.ContentHash)
		assert.NotEqual(t, a.ContentHash, c.ContentHash)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("validates clip", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))

		err := svc.CreateClip(context.Background(), &mdclip.Clip{Markdown: "x"})

		assert.Equal(t, mdclip.EINVALID, mdclip.ErrorCode(err))
	})
}

func TestClipService_FindClipByID(t *testing.T) {
	t.Parallel()

	t.Run("round trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		want := &mdclip.Clip{URL: "https://ex.com/a", Title: "A", Markdown: "# A\n\nBody", Tokens: 7}
		require.NoError(t, svc.CreateClip(context.Background(), want))

		got, err := svc.FindClipByID(context.Background(), want.ID)

		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, want.URL, got.URL)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Markdown, got.Markdown)
		assert.Equal(t, want.ContentHash, got.ContentHash)
		assert.Equal(t, 7, got.Tokens)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("returns ENOTFOUND for missing clip", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))

		_, err := svc.FindClipByID(context.Background(), "missing")

		assert.Equal(t, mdclip.ENOTFOUND, mdclip.ErrorCode(err))
	})
}

func TestClipService_FindClips(t *testing.T) {
	t.Parallel()

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		for i := range 3 {
			createClip(t, svc, fmt.Sprintf("https://ex.com/%d", i), "x")
		}

		clips, err := svc.FindClips(context.Background(), mdclip.ClipFilter{})

		require.NoError(t, err)
		require.Len(t, clips, 3)
		assert.Equal(t, "https://ex.com/2", clips[0].URL)
		assert.Equal(t, "https://ex.com/0", clips[2].URL)
	})

	t.Run("filters by URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		createClip(t, svc, "https://ex.com/a", "one")
		createClip(t, svc, "https://ex.com/b", "two")
		createClip(t, svc, "https://ex.com/a", "three")

		url := "https://ex.com/a"
		clips, err := svc.FindClips(context.Background(), mdclip.ClipFilter{URL: &url})

		require.NoError(t, err)
		require.Len(t, clips, 2)
		assert.Equal(t, "three", clips[0].Markdown)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		for i := range 5 {
			createClip(t, svc, fmt.Sprintf("https://ex.com/%d", i), "x")
		}

		page, err := svc.FindClips(context.Background(), mdclip.ClipFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, "https://ex.com/3", page[0].URL)
		assert.Equal(t, "https://ex.com/2", page[1].URL)

		rest, err := svc.FindClips(context.Background(), mdclip.ClipFilter{Offset: 3})
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("returns empty for no matches", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		url := "https://nowhere.example"

		clips, err := svc.FindClips(context.Background(), mdclip.ClipFilter{URL: &url})

		require.NoError(t, err)
		assert.Empty(t, clips)
	})
}

func TestClipService_DeleteClip(t *testing.T) {
	t.Parallel()

	t.Run("removes the clip", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))
		clip := createClip(t, svc, "https://ex.com/a", "x")

		require.NoError(t, svc.DeleteClip(context.Background(), clip.ID))

		_, err := svc.FindClipByID(context.Background(), clip.ID)
		assert.Equal(t, mdclip.ENOTFOUND, mdclip.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing clip", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewClipService(setupTestDB(t))

		err := svc.DeleteClip(context.Background(), "missing")

		assert.Equal(t, mdclip.ENOTFOUND, mdclip.ErrorCode(err))
	})
}
