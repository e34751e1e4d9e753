// Package curies implements bidirectional, idiomatic conversion between
// Uniform Resource Identifiers (URIs) and compact URIs (CURIEs) of the form
// "prefix:local_id".
//
// A Converter holds a set of Records: bindings of a canonical short prefix
// to a canonical URI prefix, each with optional synonym sets, and answers
// Expand (CURIE → URI) and Compress (URI → CURIE, via longest-prefix match)
// in either direction. See the format and registry subpackages for loading
// and serializing the external prefix-map formats this library understands.
package curies

import "regexp"

// Record describes one prefix binding: a canonical short prefix, a
// canonical URI prefix, optional synonym sets for both, and an optional
// identifier pattern.
//
// A Record is immutable from the outside. Once added to a Converter it is
// logically owned by that Converter; further mutation only happens through
// Converter operations (AddRecord, Chain) that re-validate invariants.
type Record struct {
	// Prefix is the canonical short token, e.g. "DOID".
	Prefix string
	// URIPrefix is the canonical URI prefix, e.g.
	// "http://purl.obolibrary.org/obo/DOID_".
	URIPrefix string
	// PrefixSynonyms are alternate short tokens for the same record,
	// excluding Prefix itself.
	PrefixSynonyms []string
	// URIPrefixSynonyms are alternate URI prefixes for the same record,
	// excluding URIPrefix itself.
	URIPrefixSynonyms []string
	// Pattern, if set, matches the local identifier (the portion of a CURIE
	// or URI after the prefix) during standardization. Expand and Compress
	// never evaluate it.
	Pattern *regexp.Regexp
}

// allPrefixes returns Prefix followed by PrefixSynonyms.
func (r Record) allPrefixes() []string {
	out := make([]string, 0, 1+len(r.PrefixSynonyms))
	out = append(out, r.Prefix)

	return append(out, r.PrefixSynonyms...)
}

// allURIPrefixes returns URIPrefix followed by URIPrefixSynonyms.
func (r Record) allURIPrefixes() []string {
	out := make([]string, 0, 1+len(r.URIPrefixSynonyms))
	out = append(out, r.URIPrefix)

	return append(out, r.URIPrefixSynonyms...)
}

// clone returns a deep-enough copy of r so that a merge can mutate the
// synonym slices without aliasing the caller's backing arrays.
func (r Record) clone() Record {
	cp := r
	cp.PrefixSynonyms = append([]string(nil), r.PrefixSynonyms...)
	cp.URIPrefixSynonyms = append([]string(nil), r.URIPrefixSynonyms...)

	return cp
}
