package clip

import (
	"context"
	"time"

	"github.com/fwojciec/mdclip"
)

// LoadFunc is the signature for a page load function.
type LoadFunc func(ctx context.Context, url string) (*mdclip.Page, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for load retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LoadWithRetryDelays loads a page, retrying once per entry in delays.
// EINVALID and ENOTFOUND errors are returned after the first attempt.
// The logger function, if provided, is called for each retry attempt.
func LoadWithRetryDelays(ctx context.Context, url string, load LoadFunc, logger LogFunc, delays []time.Duration) (*mdclip.Page, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, err := load(ctx, url)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if code := mdclip.ErrorCode(err); code == mdclip.EINVALID || code == mdclip.ENOTFOUND || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
