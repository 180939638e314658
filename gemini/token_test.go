//go:build integration

package gemini_test

import (
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/mdclip"
	"github.com/fwojciec/mdclip/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCounter_CountTokens(t *testing.T) {
	t.Parallel()

	tc, err := gemini.NewTokenCounter("")
	require.NoError(t, err)

	var _ mdclip.TokenCounter = tc

	t.Run("counts tokens in markdown", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "# Title\n\nHello, world!")

		require.NoError(t, err)
		assert.Positive(t, count)
	})

	t.Run("empty string returns zero", func(t *testing.T) {
		t.Parallel()

		count, err := tc.CountTokens(context.Background(), "")

		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("longer text returns more tokens", func(t *testing.T) {
		t.Parallel()

		shortCount, err := tc.CountTokens(context.Background(), "Hello")
		require.NoError(t, err)

		longCount, err := tc.CountTokens(context.Background(), "Hello, this is a much longer piece of text that should have more tokens than just a single word.")
		require.NoError(t, err)

		assert.Greater(t, longCount, shortCount)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tc.CountTokens(ctx, "Hello")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("concurrent use", func(t *testing.T) {
		t.Parallel()

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := tc.CountTokens(context.Background(), "Some shared text")
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}

func TestNewTokenCounter_UnknownModel(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewTokenCounter("no-such-model")

	assert.Equal(t, mdclip.EINVALID, mdclip.ErrorCode(err))
}
