/*
Package otquery answers questions about a decoded tiny TrueType font.

Package ot exposes the table directory and a small set of typed table views.
otquery decodes the remaining fields of the global tables (head, hhea, maxp,
OS/2, post, name) from the raw table bytes and offers glyph oriented queries,
like mapping a code-point to a glyph or retrieving a glyph's metrics.

Functions in this package return a flag or a zero value instead of an error
if a table is missing or too short; ot.Parse has already checked the
structure of the font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tinyfont.query'
func tracer() tracing.Trace {
	return tracing.Select("tinyfont.query")
}
