// Package jsonstrict adds the one check encoding/json deliberately skips:
// detecting a duplicate key within a flat JSON object. encoding/json's
// Unmarshal silently keeps the last occurrence of a repeated key, which is
// exactly wrong for a prefix map, where a repeated key is an authoring
// mistake that must surface as a parse error rather than silently shadow an
// earlier binding.
package jsonstrict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// FirstDuplicateObjectKey scans data, which must decode as a single flat
// JSON object (string or scalar values, no nesting), and returns the first
// key that appears more than once. It returns "" (with a nil error) if no
// key repeats. A malformed document returns the underlying decode error.
func FirstDuplicateObjectKey(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", fmt.Errorf("expected JSON object, got %v", tok)
	}

	seen := make(map[string]struct{})

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("decode key: %w", err)
		}

		key, ok := keyTok.(string)
		if !ok {
			return "", fmt.Errorf("expected string key, got %v", keyTok)
		}

		// Consume and discard the value (a single token for scalars).
		var discard json.RawMessage
		if err := dec.Decode(&discard); err != nil {
			return "", fmt.Errorf("decode value for key %q: %w", key, err)
		}

		if _, dup := seen[key]; dup {
			return key, nil
		}

		seen[key] = struct{}{}
	}

	// Drain the closing '}'.
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return "", fmt.Errorf("decode closing delim: %w", err)
	}

	return "", nil
}
