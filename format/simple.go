package format

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/correlator-io/curies/internal/jsonstrict"

	"github.com/correlator-io/curies"
)

// ParseSimplePrefixMap parses a JSON object mapping prefix strings to URI
// prefix strings into one Record per entry. Duplicate keys within the
// document are a parse error (encoding/json silently keeps the last
// occurrence, so duplicates are detected with a raw-token scan before
// unmarshaling). Empty URI prefix values are rejected.
func ParseSimplePrefixMap(data []byte) ([]curies.Record, error) {
	dupKey, err := jsonstrict.FirstDuplicateObjectKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if dupKey != "" {
		return nil, fmt.Errorf("%w: duplicate key %q", ErrParse, dupKey)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	records := make([]curies.Record, 0, len(raw))

	for prefix, uriPrefix := range raw {
		if uriPrefix == "" {
			return nil, fmt.Errorf("%w: empty uri_prefix for prefix %q", ErrParse, prefix)
		}

		records = append(records, curies.Record{Prefix: prefix, URIPrefix: uriPrefix})
	}

	// Deterministic order for callers that don't reorder before use.
	sort.Slice(records, func(i, j int) bool { return records[i].Prefix < records[j].Prefix })

	return records, nil
}

// LoadSimplePrefixMapFromURL fetches url via fetcher and parses the result
// as a simple prefix map.
func LoadSimplePrefixMapFromURL(ctx context.Context, fetcher Fetcher, url string) ([]curies.Record, error) {
	text, err := fetchText(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	return ParseSimplePrefixMap([]byte(text))
}

// WriteSimplePrefixMap serializes records as a JSON object of canonical
// prefix → canonical URI prefix. No synonyms or patterns are emitted.
func WriteSimplePrefixMap(records []curies.Record) ([]byte, error) {
	out := make(map[string]string, len(records))
	for _, r := range records {
		out[r.Prefix] = r.URIPrefix
	}

	return json.MarshalIndent(out, "", "  ")
}
