package format

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/correlator-io/curies"
)

// uriDelimiters are the trailing characters treated as conventional
// URI-prefix terminators for JSON-LD @id detection.
var uriDelimiters = []byte{'/', '_', ':', '#'}

// ParseJSONLD parses a JSON object containing a top-level "@context" object.
// String-valued entries are treated as simple prefix map entries.
// Object-valued entries with an "@id" string field ending in a URI
// delimiter are also accepted as prefix → URI-prefix bindings. Any other
// shape ("@type", lists, nested contexts) is skipped without error.
func ParseJSONLD(data []byte) ([]curies.Record, error) {
	var doc struct {
		Context map[string]json.RawMessage `json:"@context"`
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if doc.Context == nil {
		return nil, fmt.Errorf("%w: missing top-level @context object", ErrParse)
	}

	records := make([]curies.Record, 0, len(doc.Context))

	for prefix, raw := range doc.Context {
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			if asString == "" {
				continue
			}

			records = append(records, curies.Record{Prefix: prefix, URIPrefix: asString})

			continue
		}

		var asObject struct {
			ID string `json:"@id"`
		}

		if err := json.Unmarshal(raw, &asObject); err != nil {
			// Neither a string nor an object (lists, numbers, booleans):
			// skip silently. Objects without an @id, such as nested
			// contexts, are skipped by the check below.
			continue
		}

		if asObject.ID == "" || !endsWithURIDelimiter(asObject.ID) {
			continue
		}

		records = append(records, curies.Record{Prefix: prefix, URIPrefix: asObject.ID})
	}

	return records, nil
}

func endsWithURIDelimiter(s string) bool {
	if s == "" {
		return false
	}

	last := s[len(s)-1]
	for _, d := range uriDelimiters {
		if last == d {
			return true
		}
	}

	return false
}

// LoadJSONLDFromURL fetches url via fetcher and parses the result as a
// JSON-LD @context document.
func LoadJSONLDFromURL(ctx context.Context, fetcher Fetcher, url string) ([]curies.Record, error) {
	text, err := fetchText(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	return ParseJSONLD([]byte(text))
}

// WriteJSONLD serializes records as a JSON object with an "@context" whose
// value is the simple prefix map (canonical prefix → canonical URI prefix).
func WriteJSONLD(records []curies.Record) ([]byte, error) {
	context := make(map[string]string, len(records))
	for _, r := range records {
		context[r.Prefix] = r.URIPrefix
	}

	doc := struct {
		Context map[string]string `json:"@context"`
	}{Context: context}

	return json.MarshalIndent(doc, "", "  ")
}
