/*
Package otgen synthesizes tiny TrueType fonts.

A font produced by otgen contains exactly two glyphs: the mandatory `.notdef`
glyph at index 0 and one zero-width glyph at index 1, which is mapped to a
single character chosen by the client. Such fonts are useful for embedding
in a web page as a data URI, e.g. to detect whether a browser has finished
loading web fonts, or to render a character invisible.

The font consists of ten tables

	OS/2  cmap  glyf  head  hhea  hmtx  loca  maxp  name  post

which are written in this (ASCII-sorted) order, preceded by the SFNT offset
table and the table directory. Only the cmap table depends on the
character; all other tables are constants and are built once per Generator.
Table checksums are always zero, as no consumer targeted by otgen verifies
them.

Several field values are not derivable from the OpenType specification but
have been found by testing against rendering engines (a minimum usWinAscent,
a minimum xMax, a fixed EM square, the cmap sub-table format and its literal
binary search parameters). They are kept as named constants and must not be
re-computed.

Usage:

	gen := otgen.NewGenerator()
	font, err := gen.Font("A")
	if err != nil {
	    ...
	}
	uri := font.DataURI(otgen.DefaultMIME)

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

The table contents have originally been hand-crafted by Mike "Pomax"
Kamermans for his FontGen.js tiny font generator (MIT license).
*/
package otgen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tinyfont.gen'
func tracer() tracing.Trace {
	return tracing.Select("tinyfont.gen")
}
