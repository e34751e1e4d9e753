package curies

import (
	"fmt"
	"sort"
	"strings"

	"github.com/correlator-io/curies/internal/recindex"
	"github.com/correlator-io/curies/internal/uritrie"
)

type (
	// Converter aggregates a set of Records, the two prefix-keyed indices,
	// and the URI trie that backs longest-prefix-match Compress.
	//
	// A freshly built Converter, and any read-only method on it (Expand,
	// Compress, the lookups, GetPrefixes/GetURIPrefixes), is safe for
	// concurrent use by multiple goroutines. AddRecord and AddPrefix mutate
	// the Converter and require exclusive access; Converter does not lock
	// internally. Chain only reads the converters it is given and returns a
	// new one.
	Converter struct {
		records []Record
		index   *recindex.Index
		trie    *uritrie.Trie
	}

	// addOptions configures AddRecord.
	addOptions struct {
		merge         bool
		caseSensitive bool
	}

	// AddRecordOption configures a single AddRecord or Chain call.
	AddRecordOption func(*addOptions)

	// ListItem is one position in the result of ExpandList/CompressList: the
	// converted value when Found, the zero Value otherwise.
	ListItem struct {
		Value string
		Found bool
	}

	// standardizeOptions configures StandardizeCurie/StandardizeURI.
	standardizeOptions struct {
		checkPattern bool
	}

	// StandardizeOption configures a single standardize call.
	StandardizeOption func(*standardizeOptions)
)

// WithMerge makes AddRecord fuse a conflicting incoming record into the
// existing one instead of failing. The existing record's canonical fields
// are kept; the incoming record's canonical and synonym values are folded
// into the existing record's synonym sets. An incoming record that conflicts
// with two different existing records is not fused; AddRecord then fails
// with ErrMergeConflict.
func WithMerge() AddRecordOption {
	return func(o *addOptions) { o.merge = true }
}

// WithCaseInsensitive folds prefix tokens (never URI prefixes) to lower case
// for conflict detection during AddRecord.
func WithCaseInsensitive() AddRecordOption {
	return func(o *addOptions) { o.caseSensitive = false }
}

// WithPatternCheck makes StandardizeCurie/StandardizeURI apply the matched
// record's Pattern against the local identifier, failing with
// ErrPatternMismatch if it does not match. Off by default: Expand and
// Compress never consult Pattern, and plain standardize calls don't either
// unless this option is given.
func WithPatternCheck() StandardizeOption {
	return func(o *standardizeOptions) { o.checkPattern = true }
}

// NewConverter returns an empty Converter.
func NewConverter() *Converter {
	return &Converter{
		index: recindex.New(),
		trie:  uritrie.New(),
	}
}

// Records returns a copy of every record currently in the Converter. Order
// matches insertion order for canonical records; synonym slices are the
// Converter's own accumulated order (see AddRecord merge semantics).
func (c *Converter) Records() []Record {
	out := make([]Record, len(c.records))

	for i, r := range c.records {
		out[i] = r.clone()
	}

	return out
}

// validateRecord checks that a record's required fields are non-empty and
// that no synonym duplicates the record's own canonical value. Uniqueness
// against the rest of the Converter is enforced separately, at insertion.
func validateRecord(r Record) error {
	if r.Prefix == "" {
		return fmt.Errorf("%w: prefix is empty", ErrInvalidRecord)
	}

	if r.URIPrefix == "" {
		return fmt.Errorf("%w: uri_prefix is empty", ErrInvalidRecord)
	}

	for _, syn := range r.PrefixSynonyms {
		if syn == r.Prefix {
			return fmt.Errorf("%w: prefix_synonyms contains canonical prefix %q", ErrInvalidRecord, syn)
		}
	}

	for _, syn := range r.URIPrefixSynonyms {
		if syn == "" {
			return fmt.Errorf("%w: uri_prefix_synonyms contains empty string", ErrInvalidRecord)
		}

		if syn == r.URIPrefix {
			return fmt.Errorf("%w: uri_prefix_synonyms contains canonical uri_prefix %q", ErrInvalidRecord, syn)
		}
	}

	return nil
}

// AddRecord inserts record into the Record Index and the URI Trie.
//
// By default a conflict on any shared prefix or URI prefix fails with
// ErrDuplicatePrefix or ErrDuplicateUriPrefix. With WithMerge, a conflicting
// record is fused instead: the existing record's canonical fields are kept
// and the incoming record's canonical and synonym values are added to the
// existing record's synonym sets (deduplicated).
func (c *Converter) AddRecord(record Record, opts ...AddRecordOption) error {
	cfg := addOptions{caseSensitive: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateRecord(record); err != nil {
		return err
	}

	// fold only governs conflict detection. Records are always indexed under
	// their lower-cased prefixes as well, so a later case-insensitive
	// AddRecord also sees records that were added case-sensitively.
	var fold func(string) string
	if !cfg.caseSensitive {
		fold = strings.ToLower
	}

	prefixes := record.allPrefixes()
	uriPrefixes := record.allURIPrefixes()

	_, prefixConflict := c.index.FindPrefixConflict(prefixes, fold)
	_, uriConflict := c.index.FindURIPrefixConflict(uriPrefixes)

	if !cfg.merge {
		if prefixConflict {
			return fmt.Errorf("%w: %q", ErrDuplicatePrefix, record.Prefix)
		}

		if uriConflict {
			return fmt.Errorf("%w: %q", ErrDuplicateUriPrefix, record.URIPrefix)
		}

		c.insertFresh(record, strings.ToLower)

		return nil
	}

	// Merge mode: every prefix or URI prefix on incoming that already
	// belongs to an existing record must belong to the *same* one. If
	// incoming bridges two distinct existing records, fusing it would
	// require merging those two records into one, which mergeInto cannot
	// do without leaving the index and the trie pointing at different
	// handles for the same URI prefix.
	bridged, target, found := c.findMergeTarget(prefixes, uriPrefixes, fold)
	if bridged {
		return fmt.Errorf("%w: prefix %q and URI prefix %q already belong to different records",
			ErrMergeConflict, record.Prefix, record.URIPrefix)
	}

	if !found {
		c.insertFresh(record, strings.ToLower)

		return nil
	}

	c.mergeInto(target, record, strings.ToLower)

	return nil
}

// findMergeTarget checks every one of prefixes and uriPrefixes against the
// index individually and reports whether they all name the same existing
// record. bridged is true when two or more distinct existing records are
// matched, in which case target and found are meaningless.
func (c *Converter) findMergeTarget(prefixes, uriPrefixes []string, fold func(string) string) (bridged bool, target int, found bool) {
	for _, p := range prefixes {
		h, ok := c.index.FindPrefixConflict([]string{p}, fold)
		if !ok {
			continue
		}

		if found && h != target {
			return true, 0, false
		}

		target, found = h, true
	}

	for _, u := range uriPrefixes {
		h, ok := c.index.FindURIPrefixConflict([]string{u})
		if !ok {
			continue
		}

		if found && h != target {
			return true, 0, false
		}

		target, found = h, true
	}

	return false, target, found
}

// insertFresh appends record as a brand-new handle and indexes all of its
// prefixes and URI prefixes.
func (c *Converter) insertFresh(record Record, fold func(string) string) {
	handle := len(c.records)
	c.records = append(c.records, record.clone())

	prefixes := record.allPrefixes()
	uriPrefixes := record.allURIPrefixes()

	c.index.InsertPrefixes(handle, prefixes, fold)
	c.index.InsertURIPrefixes(handle, uriPrefixes)

	for _, u := range uriPrefixes {
		// Invariant already checked by the caller via FindURIPrefixConflict;
		// insertion here cannot fail.
		_ = c.trie.Insert(u, handle)
	}
}

// mergeInto fuses incoming into the existing record at handle: incoming's
// canonical and synonym prefixes/URI prefixes that aren't already part of
// the existing record become new synonyms, sorted for deterministic output.
// incoming's Pattern is dropped; the existing record's Pattern always wins.
func (c *Converter) mergeInto(handle int, incoming Record, fold func(string) string) {
	existing := &c.records[handle]

	newPrefixes := diffNew(existing.allPrefixes(), incoming.allPrefixes())
	newURIPrefixes := diffNew(existing.allURIPrefixes(), incoming.allURIPrefixes())

	if len(newPrefixes) > 0 {
		existing.PrefixSynonyms = append(existing.PrefixSynonyms, newPrefixes...)
		sort.Strings(existing.PrefixSynonyms)
		c.index.InsertPrefixes(handle, newPrefixes, fold)
	}

	if len(newURIPrefixes) > 0 {
		existing.URIPrefixSynonyms = append(existing.URIPrefixSynonyms, newURIPrefixes...)
		sort.Strings(existing.URIPrefixSynonyms)
		c.index.InsertURIPrefixes(handle, newURIPrefixes)

		for _, u := range newURIPrefixes {
			// findMergeTarget already rejected any URI prefix that names a
			// different existing record, so every entry here is either new
			// to the trie or already terminal at this same handle.
			_ = c.trie.Insert(u, handle)
		}
	}
}

// diffNew returns the values in incoming not already present in existing,
// deduplicated, preserving incoming's order.
func diffNew(existing, incoming []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, v := range existing {
		have[v] = struct{}{}
	}

	out := make([]string, 0, len(incoming))

	for _, v := range incoming {
		if _, ok := have[v]; ok {
			continue
		}

		have[v] = struct{}{}
		out = append(out, v)
	}

	return out
}

// AddPrefix is a convenience for AddRecord with no synonyms and no pattern.
func (c *Converter) AddPrefix(prefix, uriPrefix string) error {
	return c.AddRecord(Record{Prefix: prefix, URIPrefix: uriPrefix})
}

// Expand converts a CURIE to its full URI by splitting at the first ":"
// and concatenating the matched record's URIPrefix with the remainder.
func (c *Converter) Expand(curie string) (string, error) {
	head, tail, ok := strings.Cut(curie, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMalformedCurie, curie)
	}

	handle, ok := c.index.LookupByPrefix(head)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCurieNotFound, head)
	}

	return c.records[handle].URIPrefix + tail, nil
}

// Compress converts a URI to its shortest CURIE via longest-prefix match
// against every registered URI prefix (canonical and synonym).
func (c *Converter) Compress(uri string) (string, error) {
	handle, matchLen, ok := c.trie.LongestMatch(uri)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUriNotFound, uri)
	}

	return c.records[handle].Prefix + ":" + uri[matchLen:], nil
}

// ExpandList converts each item with Expand, preserving order. A failed
// conversion leaves that position with Found=false rather than aborting the
// batch.
func (c *Converter) ExpandList(items []string) []ListItem {
	out := make([]ListItem, len(items))

	for i, item := range items {
		if v, err := c.Expand(item); err == nil {
			out[i] = ListItem{Value: v, Found: true}
		}
	}

	return out
}

// CompressList converts each item with Compress, preserving order. A failed
// conversion leaves that position with Found=false rather than aborting the
// batch.
func (c *Converter) CompressList(items []string) []ListItem {
	out := make([]ListItem, len(items))

	for i, item := range items {
		if v, err := c.Compress(item); err == nil {
			out[i] = ListItem{Value: v, Found: true}
		}
	}

	return out
}

// StandardizePrefix returns the canonical prefix of the record containing p
// as a prefix or synonym.
func (c *Converter) StandardizePrefix(p string) (string, error) {
	handle, ok := c.index.LookupByPrefix(p)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrCurieNotFound, p)
	}

	return c.records[handle].Prefix, nil
}

// StandardizeCurie rewrites curie to use the canonical prefix and canonical
// URI prefix of its matching record (Expand then Compress).
func (c *Converter) StandardizeCurie(curie string, opts ...StandardizeOption) (string, error) {
	expanded, err := c.Expand(curie)
	if err != nil {
		return "", err
	}

	compressed, err := c.Compress(expanded)
	if err != nil {
		return "", err
	}

	if err := c.checkPattern(compressed, opts); err != nil {
		return "", err
	}

	return compressed, nil
}

// StandardizeURI rewrites uri to the canonical URI prefix of its matching
// record (Compress then Expand).
func (c *Converter) StandardizeURI(uri string, opts ...StandardizeOption) (string, error) {
	compressed, err := c.Compress(uri)
	if err != nil {
		return "", err
	}

	if err := c.checkPattern(compressed, opts); err != nil {
		return "", err
	}

	return c.Expand(compressed)
}

// checkPattern applies WithPatternCheck, if given, to the local identifier
// of a canonical CURIE already known to parse (produced by Compress).
func (c *Converter) checkPattern(canonicalCurie string, opts []StandardizeOption) error {
	cfg := standardizeOptions{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.checkPattern {
		return nil
	}

	head, tail, _ := strings.Cut(canonicalCurie, ":")

	handle, ok := c.index.LookupByPrefix(head)
	if !ok {
		return fmt.Errorf("%w: %q", ErrCurieNotFound, head)
	}

	pattern := c.records[handle].Pattern
	if pattern != nil && !pattern.MatchString(tail) {
		return fmt.Errorf("%w: %q against %s", ErrPatternMismatch, tail, pattern.String())
	}

	return nil
}

// ExpandOrStandardize treats s as a CURIE (Expand) when its prefix is
// known; otherwise it tries to canonicalize s as a URI (Compress then
// Expand).
func (c *Converter) ExpandOrStandardize(s string) (string, error) {
	if c.IsCurie(s) {
		return c.Expand(s)
	}

	compressed, err := c.Compress(s)
	if err != nil {
		return "", err
	}

	return c.Expand(compressed)
}

// CompressOrStandardize tries Compress first; if that fails and s parses as
// a CURIE with a known prefix, it applies StandardizeCurie instead.
func (c *Converter) CompressOrStandardize(s string) (string, error) {
	compressed, err := c.Compress(s)
	if err == nil {
		return compressed, nil
	}

	if c.IsCurie(s) {
		return c.StandardizeCurie(s)
	}

	return "", err
}

// IsCurie reports whether s contains ":" and the portion before the first
// ":" is a known prefix or synonym.
func (c *Converter) IsCurie(s string) bool {
	head, _, ok := strings.Cut(s, ":")
	if !ok {
		return false
	}

	_, found := c.index.LookupByPrefix(head)

	return found
}

// IsUri reports whether the URI trie yields a nonzero longest match for s
// (including an exact match against a registered URI prefix).
func (c *Converter) IsUri(s string) bool {
	_, _, ok := c.trie.LongestMatch(s)

	return ok
}

// GetPrefixes returns the set of canonical prefixes. When includeSynonyms is
// true, synonym prefixes are included too. Order is unspecified.
func (c *Converter) GetPrefixes(includeSynonyms bool) []string {
	out := make([]string, 0, len(c.records))

	for _, r := range c.records {
		out = append(out, r.Prefix)

		if includeSynonyms {
			out = append(out, r.PrefixSynonyms...)
		}
	}

	return out
}

// GetUriPrefixes returns the set of canonical URI prefixes. When
// includeSynonyms is true, synonym URI prefixes are included too. Order is
// unspecified.
func (c *Converter) GetUriPrefixes(includeSynonyms bool) []string {
	out := make([]string, 0, len(c.records))

	for _, r := range c.records {
		out = append(out, r.URIPrefix)

		if includeSynonyms {
			out = append(out, r.URIPrefixSynonyms...)
		}
	}

	return out
}

// Chain combines converters in priority order: earlier converters win on
// canonicalization. Every record from the second converter onward is merged
// into the accumulator with AddRecord(..., WithMerge()): a conflict on any
// shared prefix or URI prefix folds the later record into synonyms of the
// earlier one. A record whose prefixes and URI prefixes already belong to two
// different accumulated records is not fused: Chain stops and returns
// ErrMergeConflict.
func Chain(converters []*Converter) (*Converter, error) {
	acc := NewConverter()

	for _, conv := range converters {
		if conv == nil {
			continue
		}

		for _, r := range conv.Records() {
			if err := acc.AddRecord(r, WithMerge()); err != nil {
				return nil, err
			}
		}
	}

	return acc, nil
}
