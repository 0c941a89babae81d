package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments often cite passages from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// RequiredTables lists the tables every TrueType font handled by this package
// has to contain.
var RequiredTables = []string{
	"OS/2", "cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post",
}

const (
	headerSize      = 12
	tableRecordSize = 16
)

// Parse parses a TrueType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// If the font cannot be used, the error returned is a *ParseError, which
// wraps ErrFontFormat and lists the issues found.
func Parse(font []byte) (*Font, error) {
	ec := &errorCollector{}
	otf, err := parse(font, ec)
	if err != nil {
		return nil, ec.abort(err)
	}
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	if ec.hasCriticalErrors() {
		return otf, ec.abort(errFontFormat("font has critical errors"))
	}
	return otf, nil
}

func parse(font []byte, ec *errorCollector) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		ec.addError(T(""), "Header", "font data too short", SeverityCritical, 0)
		return nil, errFontFormat(fmt.Sprintf("header: %v", err))
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	if !(h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565) { // true
		ec.addError(T(""), "Header", fmt.Sprintf("font type not supported: %x", h.FontType), SeverityCritical, 0)
		return nil, errFontFormat(fmt.Sprintf("font type not supported: %x", h.FontType))
	}
	checkSearchParams(h, ec)
	otf := &Font{Binary: font, Header: &h, tables: make(map[Tag]Table)}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	buf, err := src.view(headerSize, tableRecordSize*int(h.TableCount))
	if err != nil {
		ec.addError(T(""), "TableRecords", "table record entries", SeverityCritical, headerSize)
		return nil, errFontFormat("table record entries")
	}
	dirEnd := uint32(headerSize + tableRecordSize*int(h.TableCount))
	var prevEnd uint32 = dirEnd
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[tableRecordSize:] {
		rec := TableRecord{
			Tag:      MakeTag(b),
			Checksum: u32(b[4:8]),
			Offset:   u32(b[8:12]),
			Length:   u32(b[12:16]),
		}
		tag := rec.Tag
		if tag <= prevTag {
			ec.addError(tag, "TableRecords", "table order", SeverityCritical, headerSize)
			return nil, errFontFormat("table order")
		}
		prevTag = tag
		off, size := rec.Offset, rec.Length
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			ec.addError(tag, "Offset", "invalid table offset", SeverityCritical, off)
			return nil, errFontFormat("invalid table offset")
		}
		if size&3 != 0 {
			ec.addWarning(tag, fmt.Sprintf("table length %d is not long-aligned", size), off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			ec.addError(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), SeverityCritical, off)
			return nil, errFontFormat(fmt.Sprintf("table %s: size calculation overflow: %v", tag, err))
		}
		if off < dirEnd || tableEnd > uint32(len(src)) {
			ec.addError(tag, "Bounds", fmt.Sprintf("bounds [%d:%d] outside font data [%d:%d]", off, tableEnd, dirEnd, len(src)), SeverityCritical, off)
			return nil, errFontFormat(fmt.Sprintf("table %s: bounds [%d:%d] outside font data", tag, off, tableEnd))
		}
		if off < prevEnd {
			ec.addError(tag, "Bounds", "table overlaps its predecessor", SeverityMajor, off)
		}
		prevEnd = tableEnd
		if rec.Checksum != 0 {
			tracer().Debugf("table %s carries checksum %08x, not verified", tag, rec.Checksum)
		}
		otf.Directory = append(otf.Directory, rec)
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
	}
	if err := extractInfo(otf, ec); err != nil {
		return nil, err
	}
	return otf, nil
}

// checkSearchParams verifies the binary search parameters of the offset table,
// as derived from the table count.
func checkSearchParams(h FontHeader, ec *errorCollector) {
	entrySelector, pow := 0, 1
	for pow*2 <= int(h.TableCount) {
		pow *= 2
		entrySelector++
	}
	searchRange := pow * 16
	rangeShift := int(h.TableCount)*16 - searchRange
	if int(h.SearchRange) != searchRange || int(h.EntrySelector) != entrySelector ||
		int(h.RangeShift) != rangeShift {
		ec.addWarning(T(""), fmt.Sprintf("search parameters (%d, %d, %d) inconsistent with %d tables",
			h.SearchRange, h.EntrySelector, h.RangeShift, h.TableCount), 0)
	}
}

// Consistency check and shortcuts to essential tables.
func extractInfo(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		h := otf.tables[T(tag)]
		if h == nil {
			ec.addError(T(tag), "Missing", "missing required table", SeverityCritical, 0)
			return errFontFormat("missing required table " + tag)
		}
	}
	otf.CMap = otf.tables[T("cmap")].Self().AsCMap()
	otf.HHea = otf.tables[T("hhea")].Self().AsHHea()
	otf.HMtx = otf.tables[T("hmtx")].Self().AsHMtx()
	otf.OS2 = otf.tables[T("OS/2")].Self().AsOS2()
	maxp := otf.tables[T("maxp")].Self().AsMaxP()
	head := otf.tables[T("head")].Self().AsHead()
	if otf.CMap == nil || otf.HHea == nil || otf.HMtx == nil || otf.OS2 == nil || maxp == nil || head == nil {
		return errFontFormat("required table cannot be interpreted")
	}
	numGlyphs := maxp.NumGlyphs
	otf.CMap.NumGlyphs = numGlyphs
	// "Note that a font must have at least two glyphs, and that glyph index 0
	// must have an outline."
	if numGlyphs < 2 {
		ec.addWarning(T("maxp"), fmt.Sprintf("font has %d glyphs, at least 2 expected", numGlyphs), 0)
	}
	if err := otf.HMtx.parseAll(numGlyphs, otf.HHea.NumberOfHMetrics); err != nil {
		ec.addError(T("hmtx"), "Metrics", err.Error(), SeverityCritical, 0)
		return err
	}
	loca := otf.tables[T("loca")].Self().AsLoca()
	if head.IndexToLocFormat == 1 {
		loca.inx2loc = longLocaVersion
	}
	loca.locCnt = numGlyphs
	entrySize := 2
	if head.IndexToLocFormat == 1 {
		entrySize = 4
	}
	if need := (numGlyphs + 1) * entrySize; need > len(loca.data) {
		ec.addError(T("loca"), "Size", fmt.Sprintf("loca needs %d bytes, has %d", need, len(loca.data)), SeverityCritical, 0)
		return errFontFormat("loca table too small")
	}
	_, glyfSize := otf.tables[T("glyf")].Extent()
	if end := loca.IndexToLocation(GlyphIndex(numGlyphs)); end > glyfSize {
		ec.addError(T("loca"), "EndMarker", fmt.Sprintf("end of glyph data %d exceeds glyf size %d", end, glyfSize), SeverityMajor, 0)
	}
	tracer().Debugf("consistency check: maxp.NumGlyphs = %d, hhea.NumberOfHMetrics = %d",
		numGlyphs, otf.HHea.NumberOfHMetrics)
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("cmap"):
		return parseCMap(t, b, offset, size, ec)
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("glyf"):
		// We do not interpret glyph outlines, clients may decode glyph headers
		// with package otquery.
		return newTable(t, b, offset, size), nil
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("loca"):
		return parseLoca(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("OS/2"):
		return parseOS2(t, b, offset, size, ec)
	case T("name"), T("post"):
		return newTable(t, b, offset, size), nil
	}
	tracer().Infof("font contains table (%s), will not be interpreted", t)
	ec.addWarning(t, "table not interpreted", offset)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		ec.addError(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), SeverityCritical, offset)
		return nil, errFontFormat("size of head table")
	}
	t := newHeadTable(tag, b, offset, size)
	t.MagicNumber, _ = b.u32(12)
	t.Flags, _ = b.u16(16)      // flags
	t.UnitsPerEm, _ = b.u16(18) // units per em
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat, _ = b.u16(50)
	if t.MagicNumber != 0x5F0F3CF5 {
		ec.addError(tag, "MagicNumber", fmt.Sprintf("magic number is %08x", t.MagicNumber), SeverityCritical, offset+12)
	}
	if t.UnitsPerEm < 16 || t.UnitsPerEm > 16384 {
		ec.addError(tag, "UnitsPerEm", fmt.Sprintf("units per em %d out of range", t.UnitsPerEm), SeverityMajor, offset+18)
	}
	if t.IndexToLocFormat > 1 {
		ec.addError(tag, "IndexToLocFormat", "unknown loca format", SeverityCritical, offset+50)
		return nil, errFontFormat("head table: unknown loca format")
	}
	return t, nil
}

// --- CMap table ------------------------------------------------------------

// This table defines mapping of character codes to a default glyph index. Different
// subtables may be defined that each contain mappings for different character encoding
// schemes. The table header indicates the character encodings for which subtables are
// present.
func parseCMap(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	const headerSize, entrySize = 4, 8
	if size < headerSize {
		ec.addError(tag, "Header", "cmap table too small", SeverityCritical, offset)
		return nil, errFontFormat("size of cmap table")
	}
	n := int(b.U16(2)) // number of sub-tables
	tracer().Debugf("font cmap has %d sub-tables in %d|%d bytes", n, len(b), size)
	t := newCMapTable(tag, b, offset, size)
	t.Version, t.NumSubtables = b.U16(0), n
	if int(size) < headerSize+entrySize*n {
		ec.addError(tag, "Header", fmt.Sprintf("table size %d < required %d", size, headerSize+entrySize*n), SeverityCritical, offset)
		return nil, errFontFormat("size of cmap table")
	}
	var best struct {
		width      int
		pid, psid  uint16
		subtableAt uint32
	}
	for i := 0; i < n; i++ {
		rec, _ := b.view(headerSize+entrySize*i, entrySize)
		pid, psid := u16(rec), u16(rec[2:])
		width := platformEncodingWidth(pid, psid)
		if width <= best.width {
			continue
		}
		at := u32(rec[4:])
		if at >= size {
			ec.addWarning(tag, fmt.Sprintf("sub-table %d (platform=%d, encoding=%d) out of bounds", i, pid, psid), offset)
			continue
		}
		format := b.U16(int(at))
		tracer().Debugf("cmap table contains subtable with format %d", format)
		if supportedCmapFormat(format, pid, psid) {
			best.width, best.pid, best.psid, best.subtableAt = width, pid, psid, at
		}
	}
	if best.width == 0 {
		ec.addError(tag, "Format", "no supported cmap format found", SeverityMajor, offset)
		return nil, errFontFormat("no supported cmap format found")
	}
	t.PlatformID, t.EncodingID = best.pid, best.psid
	var err error
	t.GlyphIndexMap, err = makeGlyphIndexFormat4(b[best.subtableAt:], tag, offset+best.subtableAt, ec)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// --- Loca table ------------------------------------------------------------

// Dependencies (taken from Apple Developer page about TrueType):
// The size of entries in the 'loca' table must be appropriate for the value of the
// indexToLocFormat field of the 'head' table. The number of entries must be the same
// as the numGlyphs field of the 'maxp' table, plus one.
func parseLoca(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		ec.addError(tag, "Size", "maxp table too small", SeverityCritical, offset)
		return nil, errFontFormat("size of maxp table")
	}
	t := newMaxPTable(tag, b, offset, size)
	if v := b.U32(0); v != 0x00010000 {
		ec.addWarning(tag, fmt.Sprintf("maxp version %08x is not for TrueType outlines", v), offset)
	}
	t.NumGlyphs = int(b.U16(4))
	return t, nil
}

// --- HHea table ------------------------------------------------------------

func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	tracer().Debugf("HHea table has size %d", size)
	if size < 36 {
		ec.addError(tag, "Size", fmt.Sprintf("hhea table too small: %d bytes (need 36)", size), SeverityCritical, offset)
		return nil, errFontFormat("hhea table incomplete")
	}
	t := newHHeaTable(tag, b, offset, size)
	t.Ascender = int16(b.U16(4))
	t.Descender = int16(b.U16(6))
	t.LineGap = int16(b.U16(8))
	t.AdvanceWidthMax = b.U16(10)
	t.NumberOfHMetrics = int(b.U16(34))
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// The value of the numOfLongHorMetrics field is found in the 'hhea' (Horizontal Header)
// table. Decoding of the metrics is deferred until the consistency check.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newHMtxTable(tag, b, offset, size), nil
}

// --- OS/2 table ------------------------------------------------------------

// The OS/2 table consists of a set of metrics and other data that are required
// in OpenType fonts. We read the fields up to usWinDescent, which are present
// in every version of the table.
func parseOS2(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	const minSize = 78
	if size < minSize {
		ec.addError(tag, "Size", fmt.Sprintf("OS/2 table too small: %d bytes (need %d)", size, minSize), SeverityCritical, offset)
		return nil, errFontFormat("OS/2 table incomplete")
	}
	t := newOS2Table(tag, b, offset, size)
	t.Version = b.U16(0)
	t.XAvgCharWidth = int16(b.U16(2))
	t.WeightClass = b.U16(4)
	t.WidthClass = b.U16(6)
	t.TypoAscender = int16(b.U16(68))
	t.TypoDescender = int16(b.U16(70))
	t.TypoLineGap = int16(b.U16(72))
	t.WinAscent = b.U16(74)
	t.WinDescent = b.U16(76)
	return t, nil
}
