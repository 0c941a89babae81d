package otgen

import (
	"fmt"

	"github.com/npillmayer/tinyfont/ot"
)

// Table is the binary data of one font table. Data is long-aligned and has to
// be treated as read-only, as tables are shared between fonts.
type Table struct {
	Tag  ot.Tag
	Data []byte
}

// Len returns the (padded) length of the table in bytes.
func (t *Table) Len() int {
	return len(t.Data)
}

func (t *Table) String() string {
	return fmt.Sprintf("%s[%d]", t.Tag, len(t.Data))
}

// mustTable builds a table from a hex text which is known to be well-formed.
func mustTable(tag string, text string) *Table {
	data, err := ParseHexTokens(text)
	if err != nil {
		panic(fmt.Sprintf("table %s: %v", tag, err))
	}
	tracer().Debugf("built table %s with %d bytes", tag, len(data))
	return &Table{Tag: ot.T(tag), Data: data}
}

// Glyph and metric counts of every generated font.
const (
	numGlyphs        = 2 // .notdef and the custom glyph
	numberOfHMetrics = 1 // one metric, shared by both glyphs
)

// Values found by testing against rendering engines. Do not derive them
// from other values.
const (
	minWinAscent = 0x0100 // Opera refuses fonts with a smaller usWinAscent
	minXMax      = 0x0100 // Opera refuses fonts with a smaller head.xMax
	unitsPerEm   = 8192   // larger EM squares break Opera

	cmapSubtableFormat = 4 // OTS rejects every other sub-table format
	cmapSegCountX2     = 4 // two segments: the character and the 0xFFFF terminator
	cmapSearchRange    = 4 // Chrome and Firefox reject inconsistent search parameters
	cmapEntrySelector  = 1
	cmapRangeShift     = 0

	// End of the glyph data in loca's short format (offset/2). Engines could
	// take it from glyf's length, but fonts without it have never been tested.
	locaEndOfGlyf = 0x0008
)

const (
	headMagicNumber    = 0x5F0F3CF5
	cmapSubtableOffset = 12 // header plus one encoding record
	cmapSubtableLength = 14 + 8*cmapSegCountX2/2 + 2
	platformWindows    = 3
	encodingUnicodeBMP = 1
	languageEnglishUS  = 0x0409
)

// BuildOS2 builds the OS/2 table, version 4. All fields for font
// classification are zero, as the font is never catalogued.
func BuildOS2() *Table {
	var t tableText
	t.u16(4)       // version
	t.u16(1)       // xAvgCharWidth
	t.u16(100)     // usWeightClass: thin
	t.u16(1)       // usWidthClass: ultra-condensed
	t.u16(0)       // fsType: installable embedding
	t.zeros(8 * 2) // sub- and superscript sizes and offsets
	t.zeros(2 * 2) // strikeout size and position
	t.zeros(2)     // sFamilyClass
	t.zeros(10)    // panose
	t.zeros(4 * 4) // ulUnicodeRange1-4
	t.zeros(4)     // achVendID
	t.zeros(2)     // fsSelection
	t.zeros(2 * 2) // first and last char index
	t.zeros(3 * 2) // typo ascender, descender and line gap
	t.u16(minWinAscent)
	t.u16(0) // usWinDescent
	t.zeros(2 * 4)
	return mustTable("OS/2", t.String())
}

// BuildCMap builds the cmap table for a code point, with a single format 4
// sub-table for platform 3 (Windows), encoding 1 (Unicode BMP).
// The sub-table has one segment covering just cp, mapped to glyph 1, and the
// terminator segment for 0xFFFF, which maps to glyph 0.
func BuildCMap(cp CodePoint) (*Table, error) {
	if err := checkCodePoint(cp); err != nil {
		return nil, err
	}
	char, err := HexPair(cp)
	if err != nil {
		return nil, err
	}
	var t tableText
	t.u16(0) // version
	t.u16(1) // number of encoding records
	t.u16(platformWindows)
	t.u16(encodingUnicodeBMP)
	t.u32(cmapSubtableOffset)
	// format 4 sub-table
	t.u16(cmapSubtableFormat)
	t.u16(cmapSubtableLength)
	t.u16(0) // language
	t.u16(cmapSegCountX2)
	t.u16(cmapSearchRange)
	t.u16(cmapEntrySelector)
	t.u16(cmapRangeShift)
	t.field(char) // endCode
	t.u16(0xffff)
	t.u16(0)      // reservedPad
	t.field(char) // startCode
	t.u16(0xffff)
	t.u16(idDelta(cp))
	t.u16(1) // 0xFFFF + 1 wraps to glyph 0
	t.u16(0) // idRangeOffset
	t.u16(0)
	tracer().Debugf("cmap for %s: [%s], idDelta %04X", cp, char, idDelta(cp))
	return mustTable("cmap", t.String()), nil
}

// idDelta returns the delta which maps cp to glyph 1, modulo 65536.
func idDelta(cp CodePoint) uint16 {
	return uint16(1 - uint32(cp))
}

// IDDelta returns the idDelta value of the character's cmap segment.
func IDDelta(cp CodePoint) (uint16, error) {
	if err := checkCodePoint(cp); err != nil {
		return 0, err
	}
	return idDelta(cp), nil
}

// BuildGlyf builds the glyf table. It contains a single glyph description:
// one contour made of one on-curve point at the origin, without instructions.
func BuildGlyf() *Table {
	var t tableText
	t.u16(1)   // numberOfContours
	t.zeros(8) // xMin, yMin, xMax, yMax
	t.u16(0)   // endPtsOfContours[0]
	t.u16(0)   // instructionLength
	// on-curve, x and y "same as previous", i.e. (0,0)
	t.field("31")
	t.zeros(1)
	return mustTable("glyf", t.String())
}

// BuildHead builds the font header table.
func BuildHead() *Table {
	var t tableText
	t.u32(0x00010000) // version
	t.u32(0)          // fontRevision
	t.u32(0)          // checksumAdjustment
	t.u32(headMagicNumber)
	t.u16(0) // flags
	t.u16(unitsPerEm)
	t.zeros(8) // created
	t.zeros(8) // modified
	t.u16(0)   // xMin
	t.u16(0)   // yMin
	t.u16(minXMax)
	t.u16(0) // yMax
	t.u16(0) // macStyle
	t.u16(1) // lowestRecPPEM
	t.u16(2) // fontDirectionHint, deprecated
	t.u16(0) // indexToLocFormat: short offsets
	t.u16(0) // glyphDataFormat
	return mustTable("head", t.String())
}

// BuildHHea builds the horizontal header table.
func BuildHHea() *Table {
	var t tableText
	t.u32(0x00010000) // version
	t.u16(1)          // ascender
	t.u16(0)          // descender
	t.u16(1)          // lineGap
	t.u16(0)          // advanceWidthMax
	t.u16(0)          // minLeftSideBearing
	t.u16(0)          // minRightSideBearing
	t.u16(0)          // xMaxExtent
	t.u16(0)          // caretSlopeRise
	t.u16(0)          // caretSlopeRun
	t.u16(0)          // caretOffset
	t.zeros(4 * 2)    // reserved
	t.u16(0)          // metricDataFormat
	t.u16(numberOfHMetrics)
	return mustTable("hhea", t.String())
}

// BuildHMtx builds the horizontal metrics: one (advanceWidth, lsb) pair
// and numGlyphs-numberOfHMetrics left side bearings, all zero.
func BuildHMtx() *Table {
	var t tableText
	for range numberOfHMetrics {
		t.u16(0) // advanceWidth
		t.u16(0) // lsb
	}
	for range numGlyphs - numberOfHMetrics {
		t.u16(0)
	}
	return mustTable("hmtx", t.String())
}

// BuildLoca builds the index-to-location table in short format. Neither glyph
// starts beyond offset 0; the last entry marks the end of the glyph data.
func BuildLoca() *Table {
	var t tableText
	for range numGlyphs {
		t.u16(0)
	}
	t.u16(locaEndOfGlyf)
	return mustTable("loca", t.String())
}

// BuildMaxP builds the maximum profile, version 1.0 as required for
// TrueType outlines.
func BuildMaxP() *Table {
	var t tableText
	t.u32(0x00010000) // version
	t.u16(numGlyphs)
	t.u16(1)       // maxPoints
	t.u16(1)       // maxContours
	t.u16(0)       // maxCompositePoints
	t.u16(0)       // maxCompositeContours
	t.u16(2)       // maxZones: no twilight zone
	t.zeros(7 * 2) // twilight points up to maxComponentElements
	t.u16(0)       // maxComponentDepth
	return mustTable("maxp", t.String())
}

// BuildName builds the naming table with two records, font family (1) and
// subfamily (2), for Windows/Unicode/en-US. The string storage is empty.
//
// The subfamily record declares a length of 2, pointing at the two zero bytes
// of the storage area.
func BuildName() *Table {
	const count = 2
	var t tableText
	t.u16(0) // version
	t.u16(count)
	t.u16(6 + 12*count) // storage offset
	for _, rec := range []struct{ nameID, length uint16 }{{1, 0}, {2, 2}} {
		t.u16(platformWindows)
		t.u16(encodingUnicodeBMP)
		t.u16(languageEnglishUS)
		t.u16(rec.nameID)
		t.u16(rec.length)
		t.u16(0) // string offset
	}
	t.u16(0) // storage
	return mustTable("name", t.String())
}

// BuildPost builds a truncated PostScript table: the first 16 bytes of a
// version 1.0 header (standard Macintosh glyph names). A complete version 1.0
// table has 32 bytes; the four memory usage fields are left out, as in the
// fonts this generator reproduces.
func BuildPost() *Table {
	var t tableText
	t.u32(0x00010000) // version
	t.u32(0)          // italicAngle
	t.u32(0)          // underlinePosition, underlineThickness
	t.u32(0)          // isFixedPitch
	return mustTable("post", t.String())
}
