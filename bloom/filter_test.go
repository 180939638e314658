package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/mdclip/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/article"))

	f.Add("https://example.com/article")

	assert.True(t, f.Test("https://example.com/article"))
	assert.False(t, f.Test("https://example.com/other"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/a")
	f.Add("https://example.com/b")
	f.Add("https://example.com/c")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	source := "https://example.com/a"

	f.Add(source)
	countAfterFirst := f.EstimatedCount()
	f.Add(source)
	f.Add(source)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(source))
}

func TestNewFilterFrom(t *testing.T) {
	t.Parallel()

	t.Run("contains every given source", func(t *testing.T) {
		t.Parallel()

		sources := []string{"https://a.example/1", "https://b.example/2", "notes/page.html"}
		f := bloom.NewFilterFrom(sources)

		for _, s := range sources {
			assert.True(t, f.Test(s), s)
		}
		assert.False(t, f.Test("https://c.example/3"))
	})

	t.Run("empty history yields empty filter", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilterFrom(nil)

		assert.Equal(t, uint(0), f.EstimatedCount())
		assert.False(t, f.Test("https://a.example/1"))
	})
}

func TestFilter_ConcurrentUse(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 50 {
				s := fmt.Sprintf("https://example.com/%d/%d", i, j)
				f.Add(s)
				f.Test(s)
			}
		}()
	}
	wg.Wait()

	assert.True(t, f.Test("https://example.com/7/49"))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/notadded/%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
