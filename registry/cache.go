package registry

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/correlator-io/curies/format"
)

// cacheEntry holds a previously fetched document and when it was fetched,
// so cachingFetcher can expire it after Config.CacheTTL.
type cacheEntry struct {
	body      string
	fetchedAt time.Time
}

// cachingFetcher wraps a format.Fetcher with an in-memory, content-addressed
// cache. Keys are blake2b-256 digests of the request URL rather than the
// raw URL string, so lookups run in constant space regardless of URL
// length and the cache never retains a raw URL as a map key.
type cachingFetcher struct {
	next  format.Fetcher
	ttl   time.Duration
	mu    sync.Mutex
	cache map[[32]byte]cacheEntry
	now   func() time.Time
}

func newCachingFetcher(next format.Fetcher, ttl time.Duration) *cachingFetcher {
	return &cachingFetcher{
		next:  next,
		ttl:   ttl,
		cache: make(map[[32]byte]cacheEntry),
		now:   time.Now,
	}
}

// Fetch implements format.Fetcher, serving a cached body when present and
// unexpired, and populating the cache on a fresh fetch.
func (c *cachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	key := cacheKey(url)

	c.mu.Lock()
	entry, ok := c.cache[key]
	c.mu.Unlock()

	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		return entry.body, nil
	}

	body, err := c.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.cache[key] = cacheEntry{body: body, fetchedAt: c.now()}
	c.mu.Unlock()

	return body, nil
}

func cacheKey(url string) [32]byte {
	return blake2b.Sum256([]byte(url))
}

// cacheKeyHex is exposed for request-tracing log lines that want a short,
// non-sensitive identifier for a cached document.
func cacheKeyHex(url string) string {
	key := cacheKey(url)

	return hex.EncodeToString(key[:8])
}
