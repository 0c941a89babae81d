package otgen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// CodePoint is a Unicode code point. Code points accepted by the generator
// fit into 16 bits, as they are stored in a cmap format 4 sub-table.
type CodePoint rune

func (cp CodePoint) String() string {
	return fmt.Sprintf("U+%04X", uint32(cp))
}

// Valid reports whether cp may be mapped to the custom glyph.
//
// U+0000 is reserved for `.notdef` and U+FFFF collides with the mandatory
// terminator segment of the cmap sub-table. Surrogates are not characters.
func (cp CodePoint) Valid() bool {
	if cp < 0x0001 || cp > 0xfffe {
		return false
	}
	return !utf16.IsSurrogate(rune(cp))
}

func checkCodePoint(cp CodePoint) error {
	if cp.Valid() {
		return nil
	}
	if cp > 0xffff {
		return fmt.Errorf("%w: %s is outside the Basic Multilingual Plane", ErrInvalidCodePoint, cp)
	}
	return fmt.Errorf("%w: %s cannot be mapped to a glyph", ErrInvalidCodePoint, cp)
}

// CodePointOf returns the code point of the single character in s.
// s has to consist of exactly one valid character of the Basic Multilingual
// Plane, otherwise an error wrapping ErrInvalidCodePoint is returned.
func CodePointOf(s string) (CodePoint, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrInvalidCodePoint)
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return 0, fmt.Errorf("%w: input is not valid UTF-8", ErrInvalidCodePoint)
	}
	if size != len(s) {
		return 0, fmt.Errorf("%w: input %q has more than one character", ErrInvalidCodePoint, s)
	}
	cp := CodePoint(r)
	tracer().Debugf("character %q has code point %s", s, cp)
	return cp, checkCodePoint(cp)
}

// CodePointOfUTF16 returns the code point of a character given as UTF-16
// code units, i.e. either a single unit or a high/low surrogate pair.
// A surrogate pair always denotes a supplementary character, which the
// generator does not support; it is decoded anyway to produce a helpful
// error message.
func CodePointOfUTF16(units ...uint16) (CodePoint, error) {
	switch len(units) {
	case 0:
		return 0, fmt.Errorf("%w: empty input", ErrInvalidCodePoint)
	case 1:
		if utf16.IsSurrogate(rune(units[0])) {
			return 0, fmt.Errorf("%w: lone surrogate %04X", ErrInvalidCodePoint, units[0])
		}
		cp := CodePoint(units[0])
		return cp, checkCodePoint(cp)
	case 2:
		hi, lo := units[0], units[1]
		if hi < 0xd800 || hi > 0xdbff || lo < 0xdc00 || lo > 0xdfff {
			return 0, fmt.Errorf("%w: %04X %04X is not a surrogate pair", ErrInvalidCodePoint, hi, lo)
		}
		cp := CodePoint((rune(hi)-0xd800)*0x400 + (rune(lo) - 0xdc00) + 0x10000)
		return cp, checkCodePoint(cp)
	}
	return 0, fmt.Errorf("%w: %d code units form more than one character", ErrInvalidCodePoint, len(units))
}

// HexPair formats a code point as the two hex tokens which represent it in
// the cmap table, e.g. "00 41" for 'A'.
func HexPair(cp CodePoint) (string, error) {
	if cp < 0 || cp > 0xffff {
		return "", fmt.Errorf("%w: %s needs more than 16 bits", ErrInvalidCodePoint, cp)
	}
	return hex16(uint16(cp)), nil
}

// ParseCodePoint reads a character argument as given on a command line.
// token is either the character itself or its code point in hex notation,
// with prefix "U+" or "0x", e.g. "U+20AC".
func ParseCodePoint(token string) (CodePoint, error) {
	token = strings.TrimSpace(token)
	hex := ""
	switch {
	case len(token) > 2 && (strings.HasPrefix(token, "U+") || strings.HasPrefix(token, "u+")):
		hex = token[2:]
	case len(token) > 2 && (strings.HasPrefix(token, "0x") || strings.HasPrefix(token, "0X")):
		hex = token[2:]
	default:
		return CodePointOf(token)
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid code point %q", ErrInvalidCodePoint, token)
	}
	cp := CodePoint(u)
	return cp, checkCodePoint(cp)
}
