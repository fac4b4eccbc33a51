package mangle

import "errors"

// ErrInvalidArgument reports structurally impossible input: an empty
// path, an empty identifier, a negative integer where a non-negative
// one is required, or an identifier containing ASCII characters outside
// the mangling grammar's identifier set.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrEncoding reports identifier text that is not well-formed Unicode
// and therefore cannot be transliterated.
var ErrEncoding = errors.New("malformed identifier encoding")
