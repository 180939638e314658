package clip

import (
	"context"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mdclip"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources converted at once when
// Batch.Concurrency is not set.
const DefaultConcurrency = 3

// SkipFunc reports whether a source should be left out of a batch.
type SkipFunc func(ctx context.Context, source string) (bool, error)

// Batch converts several sources concurrently.
type Batch struct {
	Loader      mdclip.PageLoader
	Builder     *Builder
	Limiter     mdclip.DomainLimiter
	Counter     mdclip.TokenCounter
	Concurrency int
	RetryDelays []time.Duration
	Log         LogFunc
	Skip        SkipFunc
}

type batchResult struct {
	position int
	source   string
	clip     *mdclip.Clip
	skipped  bool
	err      error
}

// Run converts sources and returns the resulting clips in input order.
// Repeated sources are converted once. A source that fails is reported
// through progress and left out of the result; only cancellation of ctx
// fails the whole batch.
func (b *Batch) Run(ctx context.Context, sources []string, progress mdclip.ProgressFunc) ([]*mdclip.Clip, error) {
	sources = unique(sources)
	if len(sources) == 0 {
		return nil, nil
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan batchResult, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, source := range sources {
			g.Go(func() error {
				resultCh <- b.process(gctx, i, source)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	total := len(sources)
	results := make([]batchResult, total)
	for result := range resultCh {
		results[result.position] = result
		n := completed.Add(1)
		if progress != nil {
			progress(mdclip.Progress{
				Source:    result.source,
				Completed: int(n),
				Total:     total,
				Skipped:   result.skipped,
				Error:     result.err,
			})
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clips := make([]*mdclip.Clip, 0, total)
	for _, result := range results {
		if result.clip != nil {
			clips = append(clips, result.clip)
		}
	}
	return clips, nil
}

// process loads and converts a single source.
func (b *Batch) process(ctx context.Context, position int, source string) batchResult {
	result := batchResult{position: position, source: source}

	if b.Skip != nil {
		skip, err := b.Skip(ctx, source)
		if err != nil {
			result.err = err
			return result
		}
		if skip {
			result.skipped = true
			return result
		}
	}

	if b.Limiter != nil {
		if host := HostOf(source); host != "" {
			if err := b.Limiter.Wait(ctx, host); err != nil {
				result.err = err
				return result
			}
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := LoadWithRetryDelays(ctx, source, b.Loader.LoadPage, b.Log, delays)
	if err != nil {
		result.err = err
		return result
	}

	clip, err := b.Builder.BuildClip(page)
	if err != nil {
		result.err = err
		return result
	}

	if b.Counter != nil {
		if tokens, err := b.Counter.CountTokens(ctx, clip.Markdown); err == nil {
			clip.Tokens = tokens
		} else if b.Log != nil {
			b.Log("count tokens %s: %v", source, err)
		}
	}

	result.clip = clip
	return result
}

// HostOf returns the host of an http(s) source, or "" for anything else.
func HostOf(source string) string {
	u, err := url.Parse(source)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Hostname()
}

func unique(sources []string) []string {
	seen := make(map[string]struct{}, len(sources))
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
