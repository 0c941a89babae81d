package otgen

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/tinyfont/ot"
)

// SFNT offset table of a font with 10 tables. The binary search parameters
// are valid for this table count only.
const (
	sfntVersionTrueType = 0x00010000
	tableCount          = 10
	searchRange         = 128
	entrySelector       = 3
	rangeShift          = 32
)

const (
	headerSize         = 12
	directoryEntrySize = 16
	// FirstTableOffset is the offset of the first table's data.
	FirstTableOffset = headerSize + directoryEntrySize*tableCount
)

// MIME types for embedding fonts in data URIs.
const (
	DefaultMIME = "font/ttf"
	LegacyMIME  = "application/x-font-ttf"
)

var tableOrder = [tableCount]ot.Tag{
	ot.T("OS/2"), ot.T("cmap"), ot.T("glyf"), ot.T("head"), ot.T("hhea"),
	ot.T("hmtx"), ot.T("loca"), ot.T("maxp"), ot.T("name"), ot.T("post"),
}

// TableOrder returns the tags of the tables of a generated font, in the order
// they appear in the table directory and in the font data. The order is
// ASCII-sorted, i.e. upper-case letters come first.
func TableOrder() []ot.Tag {
	tags := make([]ot.Tag, tableCount)
	copy(tags, tableOrder[:])
	return tags
}

// DirectoryEntry is a table record of the font's table directory.
type DirectoryEntry struct {
	Tag      ot.Tag
	Checksum [4]byte // always zero
	Offset   uint32  // from the start of the font
	Length   uint32
}

// Font is a generated font.
type Font struct {
	CodePoint CodePoint        // the character mapped to glyph 1
	Tables    []*Table         // in table order
	Directory []DirectoryEntry // in table order
	Binary    []byte           // the complete font file
}

// Table returns the table for a tag, or nil.
func (f *Font) Table(tag ot.Tag) *Table {
	for _, t := range f.Tables {
		if t.Tag == tag {
			return t
		}
	}
	return nil
}

// Base64 returns the font file in standard base64 encoding.
func (f *Font) Base64() string {
	return base64.StdEncoding.EncodeToString(f.Binary)
}

// DataURI returns the font as a data URI for mime type mime. If mime is
// empty, DefaultMIME is used.
func (f *Font) DataURI(mime string) string {
	if mime == "" {
		mime = DefaultMIME
	}
	return "data:" + mime + ";base64," + f.Base64()
}

// --- Generator -------------------------------------------------------------

// Generator creates tiny fonts. It caches the tables it builds and is safe
// for concurrent use. The zero value is ready to use.
type Generator struct {
	cache tableCache
}

// NewGenerator creates a generator with an empty table cache.
func NewGenerator() *Generator {
	return &Generator{}
}

// Font generates a font for the single character in s.
func (g *Generator) Font(s string) (*Font, error) {
	cp, err := CodePointOf(s)
	if err != nil {
		return nil, err
	}
	return g.FontForCodePoint(cp)
}

// FontForCodePoint generates a font mapping cp to glyph 1.
// cp is checked before any table is built.
func (g *Generator) FontForCodePoint(cp CodePoint) (*Font, error) {
	if err := checkCodePoint(cp); err != nil {
		return nil, err
	}
	cmap, err := g.cache.cmapTable(cp)
	if err != nil {
		return nil, err
	}
	invariant := g.cache.invariantTables()
	tables := make([]*Table, 0, tableCount)
	for _, tag := range tableOrder {
		if tag == cmap.Tag {
			tables = append(tables, cmap)
			continue
		}
		tables = append(tables, invariant[tag])
	}
	return assemble(cp, tables)
}

// Generate generates a font for the single character in s and returns it
// base64-encoded.
func (g *Generator) Generate(s string) (string, error) {
	f, err := g.Font(s)
	if err != nil {
		return "", err
	}
	return f.Base64(), nil
}

// CachedCMaps returns the number of cmap tables in the generator's cache.
func (g *Generator) CachedCMaps() int {
	return g.cache.cmapCount()
}

var defaultGenerator = NewGenerator()

// Generate generates a font for the single character in s using a
// package-wide generator, and returns it base64-encoded.
func Generate(s string) (string, error) {
	return defaultGenerator.Generate(s)
}

// FontFor generates a font for the single character in s using the
// package-wide generator.
func FontFor(s string) (*Font, error) {
	return defaultGenerator.Font(s)
}

// --- Assembly --------------------------------------------------------------

// directory computes the table records for tables, with offsets starting
// right after the table directory.
func directory(tables []*Table) []DirectoryEntry {
	dir := make([]DirectoryEntry, len(tables))
	offset := uint32(headerSize + directoryEntrySize*len(tables))
	for i, t := range tables {
		dir[i] = DirectoryEntry{
			Tag:      t.Tag,
			Checksum: StubChecksum(t.Data),
			Offset:   offset,
			Length:   uint32(t.Len()),
		}
		offset += uint32(t.Len())
	}
	return dir
}

func assemble(cp CodePoint, tables []*Table) (*Font, error) {
	dir := directory(tables)
	size := headerSize + directoryEntrySize*len(tables)
	for _, t := range tables {
		size += t.Len()
	}
	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, sfntVersionTrueType)
	buf = binary.BigEndian.AppendUint16(buf, tableCount)
	buf = binary.BigEndian.AppendUint16(buf, searchRange)
	buf = binary.BigEndian.AppendUint16(buf, entrySelector)
	buf = binary.BigEndian.AppendUint16(buf, rangeShift)
	for _, e := range dir {
		tag, offset, length := e.Tag.Bytes(), BigEndianU32(e.Offset), BigEndianU32(e.Length)
		buf = append(buf, tag[:]...)
		buf = append(buf, e.Checksum[:]...)
		buf = append(buf, offset[:]...)
		buf = append(buf, length[:]...)
		tracer().Debugf("table record %s: offset %d, length %d", e.Tag, e.Offset, e.Length)
	}
	for _, t := range tables {
		buf = append(buf, t.Data...)
	}
	f := &Font{CodePoint: cp, Tables: tables, Directory: dir, Binary: buf}
	if err := f.verify(); err != nil {
		tracer().Errorf("font for %s: %v", cp, err)
		return nil, err
	}
	return f, nil
}

// verify checks the layout of a font: table order, long-alignment of every
// table, and that every table record points at the table's data.
func (f *Font) verify() error {
	if len(f.Tables) != tableCount || len(f.Directory) != tableCount {
		return fmt.Errorf("%w: font has %d tables and %d table records, need %d",
			ErrEncodingInconsistency, len(f.Tables), len(f.Directory), tableCount)
	}
	offset := uint32(FirstTableOffset)
	for i, e := range f.Directory {
		t := f.Tables[i]
		switch {
		case e.Tag != tableOrder[i] || t.Tag != e.Tag:
			return fmt.Errorf("%w: table #%d is %s, expected %s", ErrEncodingInconsistency, i, e.Tag, tableOrder[i])
		case e.Length == 0 || e.Length%4 != 0:
			return fmt.Errorf("%w: table %s has length %d", ErrEncodingInconsistency, e.Tag, e.Length)
		case e.Offset != offset:
			return fmt.Errorf("%w: table %s at offset %d, expected %d", ErrEncodingInconsistency, e.Tag, e.Offset, offset)
		case int(e.Length) != t.Len():
			return fmt.Errorf("%w: table %s has %d bytes, record says %d", ErrEncodingInconsistency, e.Tag, t.Len(), e.Length)
		case int(offset+e.Length) > len(f.Binary) || !bytes.Equal(f.Binary[offset:offset+e.Length], t.Data):
			return fmt.Errorf("%w: data of table %s not found at offset %d", ErrEncodingInconsistency, e.Tag, offset)
		}
		offset += e.Length
	}
	if int(offset) != len(f.Binary) {
		return fmt.Errorf("%w: font has %d bytes, tables end at %d", ErrEncodingInconsistency, len(f.Binary), offset)
	}
	return nil
}
