// Package recindex implements the cross-record uniqueness constraints over
// prefix tokens and URI prefix strings.
//
// Like uritrie, Index stores integer handles rather than owning records: the
// caller (the Converter Engine) is the arena that owns the actual record
// values, keyed by handle. This keeps Index free of back-pointers and lets
// the same handle be shared between the prefix map, the URI-prefix map, and
// the URI trie.
package recindex

// Index maintains prefix-or-synonym → handle and uri-prefix-or-synonym →
// handle maps.
type Index struct {
	byPrefix    map[string]int
	byURIPrefix map[string]int
	// byFoldedPrefix mirrors byPrefix with case-folded keys, used only for
	// case-insensitive conflict detection; byPrefix itself stays case-exact
	// so lookups preserve caller casing semantics.
	byFoldedPrefix map[string]int
}

// New returns an empty Index.
func New() *Index {
	return &Index{
		byPrefix:       make(map[string]int),
		byURIPrefix:    make(map[string]int),
		byFoldedPrefix: make(map[string]int),
	}
}

// FindPrefixConflict returns the handle of an existing record sharing any of
// prefixes, if any. fold, when non-nil, case-folds tokens before comparison.
func (idx *Index) FindPrefixConflict(prefixes []string, fold func(string) string) (int, bool) {
	for _, p := range prefixes {
		if existing, ok := idx.byPrefix[p]; ok {
			return existing, true
		}

		if fold != nil {
			if existing, ok := idx.byFoldedPrefix[fold(p)]; ok {
				return existing, true
			}
		}
	}

	return 0, false
}

// FindURIPrefixConflict returns the handle of an existing record sharing any
// of uriPrefixes, if any. URI prefixes are always compared byte-exact.
func (idx *Index) FindURIPrefixConflict(uriPrefixes []string) (int, bool) {
	for _, u := range uriPrefixes {
		if existing, ok := idx.byURIPrefix[u]; ok {
			return existing, true
		}
	}

	return 0, false
}

// InsertPrefixes registers prefixes under handle.
func (idx *Index) InsertPrefixes(handle int, prefixes []string, fold func(string) string) {
	for _, p := range prefixes {
		idx.byPrefix[p] = handle

		if fold != nil {
			idx.byFoldedPrefix[fold(p)] = handle
		}
	}
}

// InsertURIPrefixes registers uriPrefixes under handle.
func (idx *Index) InsertURIPrefixes(handle int, uriPrefixes []string) {
	for _, u := range uriPrefixes {
		idx.byURIPrefix[u] = handle
	}
}

// LookupByPrefix returns the handle owning prefix-or-synonym s.
func (idx *Index) LookupByPrefix(s string) (int, bool) {
	h, ok := idx.byPrefix[s]

	return h, ok
}

// LookupByURIPrefix returns the handle owning uri-prefix-or-synonym s.
func (idx *Index) LookupByURIPrefix(s string) (int, bool) {
	h, ok := idx.byURIPrefix[s]

	return h, ok
}
