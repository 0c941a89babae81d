package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "char", "generate":
		pterm.Info.Println("char:<c>")
		pterm.Println(`
	Generates a font for a single character and makes it the current font.
	The character may be given literally or as code point:
	    char:A   char:U+20AC   char:0x41
	Use U+003A for ':'. Characters outside the Basic Multilingual Plane,
	U+0000 and U+FFFF cannot be mapped.
	`)
	case "load":
		pterm.Info.Println("load:<file>")
		pterm.Println(`
	Loads a font from a file. The file may contain a binary TrueType font,
	its base64 encoding, or a base64 data URI.
	`)
	case "table", "tables", "dir":
		pterm.Info.Println("Tables")
		pterm.Println(`
	A tiny font consists of 10 tables, stored in this order:
	+------+------+------+------+------+------+------+------+------+------+
	| OS/2 | cmap | glyf | head | hhea | hmtx | loca | maxp | name | post |
	+------+------+------+------+------+------+------+------+------+------+
	dir                 prints the table directory
	table:<tag>         selects a table and prints its decoded fields
	table:<tag>:hex     selects a table and dumps its bytes
	`)
	case "cmap", "lookup":
		pterm.Info.Println("cmap / lookup")
		pterm.Println(`
	The cmap table holds a single format 4 sub-table (Windows, Unicode BMP)
	with two segments: one for the character, one terminating segment for U+FFFF.
	Glyph 0 is .notdef, glyph 1 is the custom glyph.
	lookup              lists all mapped characters
	lookup:<c>          looks up the glyph for a character
	`)
	case "glyph", "glyphs":
		pterm.Info.Println("glyph[:n]")
		pterm.Println(`
	Prints outline header and metrics of glyph n, or of all glyphs.
	.notdef is empty, the custom glyph is a single zero-width point.
	`)
	case "output", "base64", "uri", "save":
		pterm.Info.Println("Output")
		pterm.Println(`
	base64              prints the font in base64 encoding
	uri[:mime]          prints the font as data URI (default font/ttf)
	save:<file>[:fmt]   writes the font, fmt is ttf (default) or b64
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	char:<c>  load:<file>  dir  table:<tag>[:hex]  lookup[:<c>]  glyph[:n]
	names  base64  uri[:mime]  save:<file>[:fmt]  help[:topic]  quit
	Commands may be chained on one line, separated by blanks.
	Help topics: char, load, table, cmap, glyph, output
	`)
	}
}
