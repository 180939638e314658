// Package bloom provides a probabilistic set of seen sources, used to skip
// articles that were already clipped without querying storage for each one.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// minCapacity keeps small histories from producing a tiny, saturated filter.
const minCapacity = 1000

// DefaultFalsePositiveRate is used by NewFilterFrom.
const DefaultFalsePositiveRate = 0.01

// Filter is a Bloom filter over source strings. It is safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected sources
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n < minCapacity {
		n = minCapacity
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewFilterFrom creates a filter holding sources, sized with room for as
// many again.
func NewFilterFrom(sources []string) *Filter {
	f := NewFilter(uint(2*len(sources)), DefaultFalsePositiveRate)
	for _, s := range sources {
		f.f.AddString(s)
	}
	return f
}

// Add adds a source to the filter.
func (f *Filter) Add(source string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(source)
}

// Test returns true if the source might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(source string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(source)
}

// EstimatedCount returns the approximate number of sources in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
