package format

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/correlator-io/curies"
)

// extendedEntry is the wire shape of one element of an extended prefix map
// array. Unknown fields are ignored by encoding/json's default behavior.
type extendedEntry struct {
	Prefix            string   `json:"prefix"`
	URIPrefix         string   `json:"uri_prefix"`
	PrefixSynonyms    []string `json:"prefix_synonyms,omitempty"`
	URIPrefixSynonyms []string `json:"uri_prefix_synonyms,omitempty"`
	Pattern           string   `json:"pattern,omitempty"`
}

// ParseExtendedPrefixMap parses a JSON array of extended prefix map entries.
// prefix and uri_prefix are required on every element; prefix_synonyms,
// uri_prefix_synonyms, and pattern are optional. A malformed pattern regex
// is a parse error, since patterns are compiled eagerly.
// Duplicate prefixes/URI prefixes across elements are NOT a parse error
// here: they surface later as ErrDuplicatePrefix/ErrDuplicateUriPrefix when
// the records are added to a Converter, unless curies.WithMerge() is used.
func ParseExtendedPrefixMap(data []byte) ([]curies.Record, error) {
	var entries []extendedEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	records := make([]curies.Record, 0, len(entries))

	for i, e := range entries {
		if e.Prefix == "" {
			return nil, fmt.Errorf("%w: entry %d missing required field prefix", ErrParse, i)
		}

		if e.URIPrefix == "" {
			return nil, fmt.Errorf("%w: entry %d missing required field uri_prefix", ErrParse, i)
		}

		record := curies.Record{
			Prefix:            e.Prefix,
			URIPrefix:         e.URIPrefix,
			PrefixSynonyms:    e.PrefixSynonyms,
			URIPrefixSynonyms: e.URIPrefixSynonyms,
		}

		if e.Pattern != "" {
			pattern, err := regexp.Compile(e.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d invalid pattern %q: %w", ErrParse, i, e.Pattern, err)
			}

			record.Pattern = pattern
		}

		records = append(records, record)
	}

	return records, nil
}

// LoadExtendedPrefixMapFromURL fetches url via fetcher and parses the
// result as an extended prefix map.
func LoadExtendedPrefixMapFromURL(ctx context.Context, fetcher Fetcher, url string) ([]curies.Record, error) {
	text, err := fetchText(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	return ParseExtendedPrefixMap([]byte(text))
}

// WriteExtendedPrefixMap serializes records preserving synonyms and
// patterns. Synonym sets are emitted in sorted-ascending order for
// deterministic output.
func WriteExtendedPrefixMap(records []curies.Record) ([]byte, error) {
	entries := make([]extendedEntry, len(records))

	for i, r := range records {
		entry := extendedEntry{
			Prefix:            r.Prefix,
			URIPrefix:         r.URIPrefix,
			PrefixSynonyms:    sortedCopy(r.PrefixSynonyms),
			URIPrefixSynonyms: sortedCopy(r.URIPrefixSynonyms),
		}

		if r.Pattern != nil {
			entry.Pattern = r.Pattern.String()
		}

		entries[i] = entry
	}

	return json.MarshalIndent(entries, "", "  ")
}

func sortedCopy(in []string) []string {
	if len(in) == 0 {
		return nil
	}

	out := append([]string(nil), in...)
	sort.Strings(out)

	return out
}
