package curies

import "errors"

// Sentinel errors for the Converter Engine. Operations wrap these with
// fmt.Errorf("%w: ...") to attach detail; callers should compare with
// errors.Is.
var (
	// ErrMalformedCurie is returned by Expand when the input has no ":" separator.
	ErrMalformedCurie = errors.New("curies: malformed CURIE, missing ':' separator")
	// ErrCurieNotFound is returned when a prefix is not a known prefix or synonym.
	ErrCurieNotFound = errors.New("curies: prefix not found")
	// ErrUriNotFound is returned when no registered URI prefix matches a URI.
	ErrUriNotFound = errors.New("curies: no URI prefix matches")
	// ErrDuplicatePrefix is returned when a prefix or synonym collides with
	// an existing record.
	ErrDuplicatePrefix = errors.New("curies: duplicate prefix")
	// ErrDuplicateUriPrefix is returned when a URI prefix or synonym collides
	// with an existing record.
	ErrDuplicateUriPrefix = errors.New("curies: duplicate URI prefix")
	// ErrInvalidRecord is returned when a record fails field-level validation
	// (empty canonical prefix or URI prefix, or a synonym equal to another of
	// the record's own fields).
	ErrInvalidRecord = errors.New("curies: invalid record")
	// ErrPatternMismatch is returned by the optional standardize pattern
	// check when a record's Pattern rejects the local identifier.
	ErrPatternMismatch = errors.New("curies: local identifier does not match pattern")
	// ErrMergeConflict is returned by AddRecord in merge mode when an
	// incoming record's prefix matches one existing record while its URI
	// prefix matches a different existing record. Fusing it would require
	// merging two already-distinct records into one, which AddRecord does
	// not do.
	ErrMergeConflict = errors.New("curies: merge would bridge two distinct records")
)
