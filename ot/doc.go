/*
Package ot decodes the SFNT container of small TrueType fonts and gives access
to their tables. Intended audience for this package are:

▪︎ tests and tools which need to verify the fonts produced by package `otgen`
byte by byte, i.e. check the table directory, offsets and lengths, and the
character mapping

▪︎ any application needing to have the internal structure of a tiny TrueType
font available, for example to print a table dump

Package `ot` will not interpret glyph outlines, nor does it support advanced
layout tables (GSUB, GPOS, …). It exposes the table directory and a handful
of typed table views; clients query the values they need from the raw table
bytes, or use the sister package `otquery`.

The decoder is lenient in one respect: table checksums are never
verified, as the fonts produced by `otgen` carry zero checksums throughout.
Structural problems (unsorted directory, misaligned or out-of-bounds tables,
missing required tables) are reported as errors, whereas deviations which
consumers tolerate are collected as warnings and may be inspected after
parsing.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

The cmap format 4 lookup has originally been modelled after
golang.org/x/image/font/sfnt/cmap.go, as the cmap-routines are not accessible
through the sfnt package's API.

	Copyright 2017 The Go Authors. All rights reserved.
	Use of this source code is governed by a BSD-style
	license that can be found in the LICENSE file.
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tinyfont.ot'
func tracer() tracing.Trace {
	return tracing.Select("tinyfont.ot")
}
