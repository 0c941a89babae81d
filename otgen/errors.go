package otgen

import "errors"

// ErrInvalidCodePoint is returned for input which cannot be mapped by the
// font's cmap table: empty input, more than one character, malformed UTF-8
// or UTF-16, code points outside the Basic Multilingual Plane, surrogates,
// U+0000 and U+FFFF.
var ErrInvalidCodePoint = errors.New("invalid code point")

// ErrEncodingInconsistency flags a font whose table directory does not match
// its table data. It indicates a bug in this package and is never the result
// of client input.
var ErrEncodingInconsistency = errors.New("font encoding inconsistency")

// ErrHexToken is returned when parsing a malformed hex token stream.
var ErrHexToken = errors.New("malformed hex token")
