/*
Package tinyfont generates minimal TrueType fonts.

A tiny font maps exactly one character to a custom glyph. The glyph is a
single zero-width point, so the character becomes invisible wherever the font
is applied, while text using it stays selectable. Fonts are delivered as
base64 text or as data URIs, ready to be embedded into CSS.

	uri, err := tinyfont.DataURI("A")
	// uri == "data:font/ttf;base64,AAEAAAAKAIAAAwAg…"

This package is a convenience layer on top of the sub-packages: otgen
generates fonts, ot decodes them, and otquery reads information from the
decoded tables.

# Status

Only characters of the Unicode Basic Multilingual Plane are supported,
excluding U+0000 and U+FFFF.

# Links

TrueType reference manual:
https://developer.apple.com/fonts/TrueType-Reference-Manual/

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package tinyfont

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/npillmayer/tinyfont/otquery"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'tinyfont'
func tracer() tracing.Trace {
	return tracing.Select("tinyfont")
}

// Generate returns a tiny font for the single character in s, base64 encoded.
func Generate(s string) (string, error) {
	return otgen.Generate(s)
}

// DataURI returns a tiny font for the single character in s as a data URI
// with MIME type "font/ttf".
func DataURI(s string) (string, error) {
	f, err := otgen.FontFor(s)
	if err != nil {
		return "", err
	}
	return f.DataURI(otgen.DefaultMIME), nil
}

// FromBinary parses raw font bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing for the font to be usable.
func FromBinary(data []byte) (*ot.Font, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		tracer().Errorf("cannot parse font: %v", err)
	}
	return otf, err
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader. Tiny fonts carry empty names.
func FamilyName(f *ot.Font) (family, subfamily string) {
	for nameId, stringValue := range otquery.NamesRange(f) {
		switch nameId {
		case sfnt.NameIDFamily:
			family = stringValue
		case sfnt.NameIDSubfamily:
			subfamily = stringValue
		}
	}
	return
}

// MappedCharacter returns the character a tiny font maps to its custom glyph,
// or 0 if there is none.
func MappedCharacter(f *ot.Font) rune {
	return otquery.CodePointForGlyph(f, 1)
}
