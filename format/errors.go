package format

import "errors"

// ErrParse is the sentinel wrapped by every syntactically-invalid-input
// failure across the four formats.
var ErrParse = errors.New("format: parse error")
