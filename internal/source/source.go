// Package source provides headline fetching strategies for the tracked
// regions. A Source is a capability selected by configuration — the
// collection pipeline neither knows nor cares whether headlines come from
// an RSS feed, a scraped page, or canned fallback data.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/seenimoa/econmood/pkg/models"
)

// Source fetches candidate headlines for a region. An empty result means
// "zero headlines this cycle", not an error; implementations perform no
// retries themselves.
type Source interface {
	// Name returns the human-readable name of this source.
	Name() string

	// Fetch returns raw headlines for the region.
	Fetch(ctx context.Context, region models.Region) ([]models.RawHeadline, error)
}

// ErrUnavailable is returned when a source cannot reach its upstream.
var ErrUnavailable = errors.New("headline source unavailable")

// defaultUserAgent is the user agent string used for HTTP requests.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// httpClient is a pre-configured HTTP client with a bounded timeout.
var httpClient = &http.Client{
	Timeout: 15 * time.Second,
}

// doGet performs a GET request, returning the response body. The caller is
// responsible for closing the returned ReadCloser.
func doGet(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET %s: %w", url, err)
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP GET %s: status %s: %w", url, resp.Status, ErrUnavailable)
	}

	return resp.Body, nil
}

// --- Rate limiter ---

// rateLimiter provides simple token-bucket rate limiting for polite
// upstream access.
type rateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

// newRateLimiter creates a limiter allowing maxTokens requests per
// refillRate duration.
func newRateLimiter(maxTokens int, refillRate time.Duration) *rateLimiter {
	return &rateLimiter{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// wait blocks until a token is available or the context is cancelled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		rl.mu.Lock()
		rl.refill()
		if rl.tokens > 0 {
			rl.tokens--
			rl.mu.Unlock()
			return nil
		}
		rl.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
			// Check again after a short sleep.
		}
	}
}

// refill adds tokens based on elapsed time. Must be called with mu held.
func (rl *rateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	if elapsed >= rl.refillRate {
		periods := int(elapsed / rl.refillRate)
		rl.tokens += periods
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = rl.lastRefill.Add(time.Duration(periods) * rl.refillRate)
	}
}
