package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Bar is one daily OHLCV observation as returned by a price provider.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// NewsItem is one headline as returned by a news provider. Sentiment is
// attached later by the ingest layer, not by the provider.
type NewsItem struct {
	PublishedAt time.Time
	Headline    string
	URL         string
	Source      string
	Raw         string
}

// PriceProvider fetches the recent daily bars for one symbol. Bars must be
// deduplicated by (symbol, date) before they reach the engine.
type PriceProvider interface {
	DailyBars(ctx context.Context, symbol string) ([]Bar, error)
}

// NewsProvider fetches recent headlines for one symbol. Duplicate headlines
// may appear across calls; the store's unique index absorbs them.
type NewsProvider interface {
	RecentNews(ctx context.Context, symbol string) ([]NewsItem, error)
}

// ErrUnavailable wraps exhausted-retry failures so callers can tell a dead
// provider from a malformed payload.
var ErrUnavailable = fmt.Errorf("provider unavailable or rate-limited")

// httpFetcher is the retry/backoff plumbing shared by both clients: a paced
// GET with a bounded number of attempts and linearly growing pauses.
type httpFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	retries int
	backoff time.Duration
}

func newHTTPFetcher(requestsPerMinute, retries int, backoff time.Duration) httpFetcher {
	return httpFetcher{
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		retries: retries,
		backoff: backoff,
	}
}

// getWithBackoff performs a rate-limited GET, retrying while shouldRetry says
// the body looks like a transient condition (rate-limit notes, 5xx). The
// returned body is fully read.
func (f httpFetcher) getWithBackoff(ctx context.Context, url string, shouldRetry func(status int, body []byte) bool) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.backoff * time.Duration(attempt)):
			}
		}
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := f.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}
		if shouldRetry(resp.StatusCode, body) {
			lastErr = fmt.Errorf("status %d", resp.StatusCode)
			continue
		}
		return body, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return nil, ErrUnavailable
}
