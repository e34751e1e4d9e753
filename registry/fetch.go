package registry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/correlator-io/curies/format"
)

const rateLimiterBurst = 1

// httpFetcher implements format.Fetcher over net/http, applying a per-host
// token bucket to the requests made through one httpFetcher value.
// buildConverter creates a new httpFetcher on every call, so the limit does
// not span separate canned-converter calls.
type httpFetcher struct {
	client  *http.Client
	rps     float64
	mu      sync.Mutex
	limiter map[string]*rate.Limiter
}

func newHTTPFetcher(timeout time.Duration, requestsPerSecond float64) *httpFetcher {
	return &httpFetcher{
		client:  &http.Client{Timeout: timeout},
		rps:     requestsPerSecond,
		limiter: make(map[string]*rate.Limiter),
	}
}

// Fetch implements format.Fetcher.
func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrFetchFailed, err)
	}

	limiter := f.limiterFor(parsed.Host)
	if err := limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s returned status %d", format.ErrFetchFailed, rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", format.ErrFetchFailed, err)
	}

	return string(body), nil
}

func (f *httpFetcher) limiterFor(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	limiter, ok := f.limiter[host]
	if !ok {
		burst := rateLimiterBurst
		if f.rps > 1 {
			burst = int(f.rps)
		}

		limiter = rate.NewLimiter(rate.Limit(f.rps), burst)
		f.limiter[host] = limiter
	}

	return limiter
}
