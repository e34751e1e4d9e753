// Package format implements the parsers and serializers for the four prefix
// map exchange formats this module understands: simple prefix maps,
// extended prefix maps, JSON-LD @context documents, and SHACL prefix
// declarations (Turtle). Each parser returns plain []curies.Record values
// rather than a constructed Converter, so callers choose how (and whether)
// to merge them; LoadInto is the common path for feeding parsed records
// into a Converter.
package format

import (
	"context"
	"errors"
	"fmt"
)

// ErrFetchFailed is returned by a Fetcher on any network or HTTP error. The
// format package does not retry; it surfaces the error as-is.
var ErrFetchFailed = errors.New("format: fetch failed")

// Fetcher resolves a URL-valued loader input to a text blob. The core
// parsers never perform network I/O themselves; a Fetcher is the sole
// injected collaborator that does. See the registry package for a concrete
// net/http-backed implementation.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// fetchText wraps a Fetcher call with the ErrFetchFailed sentinel, the
// common entry point every Load*FromURL function uses.
func fetchText(ctx context.Context, fetcher Fetcher, url string) (string, error) {
	text, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrFetchFailed, url, err)
	}

	return text, nil
}
