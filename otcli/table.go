package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/npillmayer/tinyfont/otquery"
	"github.com/pterm/pterm"
)

func dirOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	h := intp.font.OT.Header
	pterm.Printf("sfnt version %#08x, %d tables, searchRange=%d entrySelector=%d rangeShift=%d\n",
		h.FontType, h.TableCount, h.SearchRange, h.EntrySelector, h.RangeShift)
	printDirectory(intp.font.OT)
	pterm.Printf("font type %s, %d bytes\n", otquery.FontType(intp.font.OT), len(intp.font.Binary))
	return nil, false
}

// tableOp selects a table and displays it. Format "hex" dumps the table's
// bytes, format "info" (the default) prints the decoded fields.
func tableOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if tag, ok := op.hasArg(); ok {
		if intp.table = intp.font.OT.Table(ot.T(tag)); intp.table == nil {
			return errors.New("table not found in font"), false
		}
		tracer().Infof("setting table: %v", tag)
	} else if err := intp.checkTable(); err != nil {
		return err, false
	}
	tag := intp.table.Self().NameTag()
	offset, size := intp.table.Extent()
	pterm.Printf("table %s at offset %d, %d bytes\n", tag, offset, size)
	switch op.format {
	case "", "info":
		printTableInfo(intp.font.OT, tag)
	case "hex":
		printHexDump(intp.table.Binary())
	default:
		return fmt.Errorf("unknown table format: %s", op.format), false
	}
	return nil, false
}

func lookupOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		for _, r := range otquery.MappedCodePoints(intp.font.OT) {
			pterm.Printf("%U %s => glyph %d\n", r, characterName(r), otquery.GlyphIndex(intp.font.OT, r))
		}
		return nil, false
	}
	cp, err := otgen.ParseCodePoint(op.arg)
	if err != nil && cp == 0 { // unmappable code points may still be looked up
		return err, false
	}
	gid := otquery.GlyphIndex(intp.font.OT, rune(cp))
	pterm.Printf("%s %s => glyph %d\n", cp, characterName(rune(cp)), gid)
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		printGlyphs(intp.font.OT)
		return nil, false
	}
	n, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("glyph index not numeric: %v", op.arg), false
	}
	g, ok := otquery.GlyphHeader(intp.font.OT, ot.GlyphIndex(n))
	if !ok {
		return fmt.Errorf("no glyph with index %d", n), false
	}
	m := otquery.GlyphMetrics(intp.font.OT, ot.GlyphIndex(n))
	pterm.Printf("glyph %d: offset=%d length=%d contours=%d points=%d\n",
		n, g.Offset, g.Length, g.Contours, g.Points)
	pterm.Printf("         advance=%d lsb=%d rsb=%d bbox=(%d,%d)-(%d,%d)\n",
		m.Advance, m.LSB, m.RSB, g.BBox.MinX, g.BBox.MinY, g.BBox.MaxX, g.BBox.MaxY)
	return nil, false
}

func namesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	printNames(intp.font.OT)
	return nil, false
}

func base64Op(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	pterm.Println(base64.StdEncoding.EncodeToString(intp.font.Binary))
	return nil, false
}

// uriOp prints the font as a data URI. The MIME type may be given as
// argument, e.g. "uri:application/x-font-ttf".
func uriOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	mime := op.arg
	if mime == "" {
		mime = otgen.DefaultMIME
	}
	pterm.Println("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(intp.font.Binary))
	return nil, false
}

// saveOp writes the font to a file, either binary (format "ttf", the
// default) or as base64 text (format "b64").
func saveOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	fname, ok := op.hasArg()
	if !ok {
		return errors.New("usage: save:<file>[:ttf|b64]"), false
	}
	data := intp.font.Binary
	switch op.format {
	case "", "ttf":
	case "b64":
		data = []byte(base64.StdEncoding.EncodeToString(intp.font.Binary))
	default:
		return fmt.Errorf("unknown save format: %s", op.format), false
	}
	if err := os.WriteFile(fname, data, 0644); err != nil {
		return err, false
	}
	pterm.Printf("wrote %d bytes to %s\n", len(data), fname)
	return nil, false
}
