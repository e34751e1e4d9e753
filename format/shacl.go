package format

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/correlator-io/curies"
)

// ParseSHACL extracts prefix/URI-prefix bindings from a Turtle document
// containing sh:declare blank nodes. There is no RDF parsing library in
// this module's dependency stack, so this is a deliberately minimal
// scanner rather than a general Turtle parser: it locates every sh:declare
// object (blank-node or bracketed) and, within it, pairs an sh:prefix
// literal with an sh:namespace literal. @prefix directives are not read:
// the scanner matches the literal spellings sh:declare, sh:prefix and
// sh:namespace, so a document that binds the SHACL namespace to a prefix
// name other than sh: is not recognised. @prefix directives never become
// Records.
func ParseSHACL(data []byte) ([]curies.Record, error) {
	text := string(data)

	declareBlocks, err := extractDeclareBlocks(text)
	if err != nil {
		return nil, err
	}

	records := make([]curies.Record, 0, len(declareBlocks))

	for _, block := range declareBlocks {
		prefix, ok := extractLiteral(block, "sh:prefix")
		if !ok {
			return nil, fmt.Errorf("%w: sh:declare block missing sh:prefix", ErrParse)
		}

		namespace, ok := extractLiteral(block, "sh:namespace")
		if !ok {
			return nil, fmt.Errorf("%w: sh:declare block missing sh:namespace", ErrParse)
		}

		records = append(records, curies.Record{Prefix: prefix, URIPrefix: namespace})
	}

	return records, nil
}

var declareKeywordPattern = regexp.MustCompile(`sh:declare\s*`)

// extractDeclareBlocks returns one string per sh:declare'd blank-node
// description: the object of `sh:declare` may itself be a single `[...]`
// blank node, or a `(...)` collection listing several `[...]` nodes. Both
// shapes are accepted identically.
func extractDeclareBlocks(text string) ([]string, error) {
	var blocks []string

	locs := declareKeywordPattern.FindAllStringIndex(text, -1)
	for _, loc := range locs {
		rest := text[loc[1]:]

		open, content, err := readBracketedGroup(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed sh:declare value: %w", ErrParse, err)
		}

		if open == '(' {
			blocks = append(blocks, splitTopLevelBracketGroups(content)...)
		} else {
			blocks = append(blocks, content)
		}
	}

	return blocks, nil
}

// readBracketedGroup consumes the first `[...]` or `(...)` group in s,
// returning the opening bracket character and the text strictly between
// the matching pair (nesting-aware).
func readBracketedGroup(s string) (byte, string, error) {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return 0, "", fmt.Errorf("unexpected end of input after sh:declare")
	}

	open := s[0]

	var close byte

	switch open {
	case '[':
		close = ']'
	case '(':
		close = ')'
	default:
		return 0, "", fmt.Errorf("expected '[' or '(' after sh:declare, found %q", open)
	}

	depth := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return open, s[1:i], nil
			}
		}
	}

	return 0, "", fmt.Errorf("unterminated bracketed group")
}

// splitTopLevelBracketGroups returns the contents of each top-level
// `[...]` group found in s, ignoring everything between groups (list item
// separators, whitespace).
func splitTopLevelBracketGroups(s string) []string {
	var groups []string

	depth := 0
	start := -1

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			if depth == 0 {
				start = i + 1
			}

			depth++
		case ']':
			depth--

			if depth == 0 && start >= 0 {
				groups = append(groups, s[start:i])
				start = -1
			}
		}
	}

	return groups
}

// extractLiteral finds "<predicate> <value>" within block, where value is
// a double-quoted Turtle string literal optionally followed by a
// ^^datatype tag (stripped) or an @languageTag (stripped).
func extractLiteral(block, predicate string) (string, bool) {
	idx := strings.Index(block, predicate)
	if idx < 0 {
		return "", false
	}

	rest := strings.TrimLeft(block[idx+len(predicate):], " \t\r\n")
	if rest == "" || rest[0] != '"' {
		return "", false
	}

	end := strings.Index(rest[1:], `"`)
	if end < 0 {
		return "", false
	}

	return rest[1 : 1+end], true
}

// LoadSHACLFromURL fetches url via fetcher and parses the result as a
// SHACL Turtle document.
func LoadSHACLFromURL(ctx context.Context, fetcher Fetcher, url string) ([]curies.Record, error) {
	text, err := fetchText(ctx, fetcher, url)
	if err != nil {
		return nil, err
	}

	return ParseSHACL([]byte(text))
}

// WriteSHACL serializes records as a Turtle fragment declaring the sh: and
// xsd: prefixes plus a single sh:declare RDF collection listing one blank
// node per canonical record.
func WriteSHACL(records []curies.Record) ([]byte, error) {
	var b strings.Builder

	b.WriteString("@prefix sh: <http://www.w3.org/ns/shacl#> .\n")
	b.WriteString("@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .\n\n")
	b.WriteString("[] sh:declare (\n")

	for _, r := range records {
		fmt.Fprintf(&b, "  [ sh:prefix %s ; sh:namespace %s^^xsd:anyURI ]\n",
			formatTurtleString(r.Prefix), formatTurtleString(r.URIPrefix))
	}

	b.WriteString(") .\n")

	return []byte(b.String()), nil
}

func formatTurtleString(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)

	return `"` + replacer.Replace(s) + `"`
}
