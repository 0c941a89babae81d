package ot

import "fmt"

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
//
// A cmap table may contain more than one lookup table, but we will only
// instantiate the most appropriate one.
type CMapTable struct {
	tableBase
	Version       uint16
	NumSubtables  int
	PlatformID    uint16 // platform of the selected sub-table
	EncodingID    uint16 // platform specific encoding of the selected sub-table
	GlyphIndexMap CMapGlyphIndex
	NumGlyphs     int // taken from maxp during consistency check
}

func newCMapTable(tag Tag, b binarySegm, offset, size uint32) *CMapTable {
	t := &CMapTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// platformEncodingWidth returns the number of bytes per character assumed by
// the given Platform ID and Platform Specific ID.
//
// Old fonts, from when Unicode meant the Basic Multilingual Plane (BMP),
// assume that 2 bytes per character is sufficient. Fonts produced by otgen
// always use the Windows/Unicode-BMP combination.
func platformEncodingWidth(pid, psid uint16) int {
	switch pid {
	case 0: // Unicode platform
		switch psid {
		case 3: // Unicode BMB
			return 2
		}
	case 3: // Windows platform
		switch psid {
		case 1: // Unicode BMP
			return 2
		}
	}
	return 0 // width 0 will never get selected
}

// We only support the following plaform/encoding/format combinations:
//
//	0 (Unicode)  3    4   Unicode BMB
//	3 (Win)      1    4   Unicode BMP
func supportedCmapFormat(format, pid, psid uint16) bool {
	tracer().Debugf("checking supported cmap format (%d | %d | %d)", pid, psid, format)
	return (pid == 0 && psid == 3 && format == 4) ||
		(pid == 3 && psid == 1 && format == 4)
}

// CMapGlyphIndex represents a CMap table index to receive a glyph index from
// a code-point.
type CMapGlyphIndex interface {
	Lookup(rune) GlyphIndex        // central activiy of CMap
	ReverseLookup(GlyphIndex) rune // this is non-standard, but helps with tests
}

// CMapFormat4Header holds the search parameters of a format 4 sub-table.
// Rendering engines check these values against the segment count, so they are
// exposed for verification.
type CMapFormat4Header struct {
	Format        uint16
	Length        uint16
	Language      uint16
	SegCountX2    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// CMapSegment is one segment of a format 4 sub-table.
type CMapSegment struct {
	End, Start, Delta, RangeOffset uint16
}

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
type Format4GlyphIndex struct {
	Header   CMapFormat4Header
	segments []CMapSegment
	glyphIds []uint16
}

// Segments returns a copy of the segments of the sub-table, in table order.
func (f4 Format4GlyphIndex) Segments() []CMapSegment {
	s := make([]CMapSegment, len(f4.segments))
	copy(s, f4.segments)
	return s
}

// Lookup returns the glyph index for code-point r. Code-points not covered by
// any segment map to glyph 0.
func (f4 Format4GlyphIndex) Lookup(r rune) GlyphIndex {
	if r < 0 || uint32(r) > 0xffff { // format 4 is for BMP code-points only
		return 0 // return index for 'missing character'
	}
	c := uint16(r)
	N := len(f4.segments)
	for i, j := 0, N; i < j; {
		h := i + (j-i)/2 // binary search on the segments
		seg := &f4.segments[h]
		if c < seg.Start {
			j = h
		} else if seg.End < c {
			i = h + 1
		} else if seg.RangeOffset == 0 {
			return GlyphIndex(c + seg.Delta) // arithmetic is modulo 65536
		} else {
			// idRangeOffset is relative to its own position in the segment array;
			// convert it into an index into the glyph ID array.
			index := int(seg.RangeOffset)/2 - (N - h) + int(c-seg.Start)
			if index < 0 || index >= len(f4.glyphIds) {
				return 0
			}
			g := f4.glyphIds[index]
			if g > 0 {
				g += seg.Delta
			}
			return GlyphIndex(g)
		}
	}
	return 0
}

// ReverseLookup retrieves a code-point for a given glyph. The Cmap tables do not
// support this operation, thus this operation is inefficient.
// However, for testing and debugging purposes it is often useful.
func (f4 Format4GlyphIndex) ReverseLookup(gid GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	for _, seg := range f4.segments {
		if seg.End < seg.Start || seg.Start == 0xffff {
			break
		}
		for c := uint32(seg.Start); c <= uint32(seg.End); c++ {
			if f4.Lookup(rune(c)) == gid {
				return rune(c)
			}
		}
	}
	return 0
}

// The format's data is divided into three parts, which must occur in the following order:
//
// - A seven-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
func makeGlyphIndexFormat4(b binarySegm, tag Tag, offset uint32, ec *errorCollector) (CMapGlyphIndex, error) {
	const headerSize = 14
	if headerSize > b.Size() {
		ec.addError(tag, "Format4", "sub-table header out of bounds", SeverityCritical, offset)
		return nil, errFontFormat("cmap subtable bounds overflow")
	}
	h := CMapFormat4Header{
		Format:        b.U16(0),
		Length:        b.U16(2),
		Language:      b.U16(4),
		SegCountX2:    b.U16(6),
		SearchRange:   b.U16(8),
		EntrySelector: b.U16(10),
		RangeShift:    b.U16(12),
	}
	if h.SegCountX2&1 != 0 || h.SegCountX2 == 0 {
		ec.addError(tag, "Format4", fmt.Sprintf("illegal segment count x2 = %d", h.SegCountX2), SeverityCritical, offset)
		return nil, errFontFormat("cmap table format, illegal segment count")
	}
	segCount := int(h.SegCountX2 / 2)
	eLength := 8*segCount + 2
	if int(h.Length) > b.Size() || headerSize+eLength > int(h.Length) {
		ec.addError(tag, "Format4", "segment arrays exceed sub-table length", SeverityCritical, offset)
		return nil, errFontFormat("cmap internal structure")
	}
	checkFormat4SearchParams(h, segCount, tag, offset, ec)
	b = b[headerSize:h.Length]
	ends, _ := b.array16(0, segCount)
	if pad := b.U16(segCount * 2); pad != 0 {
		ec.addWarning(tag, "reserved pad of format 4 sub-table is not zero", offset)
	}
	next := segCount*2 + 2 // 2 is a padding entry in the cmap table
	starts, _ := b.array16(next, segCount)
	next += segCount * 2
	deltas, _ := b.array16(next, segCount)
	next += segCount * 2
	rangeOffsets, _ := b.array16(next, segCount)
	next += segCount * 2
	segments := make([]CMapSegment, segCount)
	for i := range segments {
		segments[i] = CMapSegment{
			End:         ends[i],
			Start:       starts[i],
			Delta:       deltas[i],
			RangeOffset: rangeOffsets[i],
		}
		if segments[i].Start > segments[i].End {
			ec.addError(tag, "Segments", fmt.Sprintf("segment %d has start > end", i), SeverityMajor, offset)
		}
		if i > 0 && segments[i-1].End >= segments[i].Start {
			ec.addError(tag, "Segments", fmt.Sprintf("segment %d overlaps its predecessor", i), SeverityMajor, offset)
		}
	}
	if segments[segCount-1].End != 0xffff {
		ec.addError(tag, "Segments", "last segment does not end at 0xFFFF", SeverityMajor, offset)
	}
	glyphIds, _ := b.array16(next, (b.Size()-next)/2)
	tracer().Debugf("cmap format 4 has %d segments, %d glyph ids", segCount, len(glyphIds))
	return Format4GlyphIndex{
		Header:   h,
		segments: segments,
		glyphIds: glyphIds,
	}, nil
}

// checkFormat4SearchParams cross-checks the binary search parameters. At
// least two browser engines reject sub-tables where these are inconsistent,
// even though they could be re-computed from the segment count.
func checkFormat4SearchParams(h CMapFormat4Header, segCount int, tag Tag, offset uint32, ec *errorCollector) {
	entrySelector, searchRange := 0, 1
	for searchRange*2 <= segCount {
		searchRange *= 2
		entrySelector++
	}
	searchRange *= 2
	if int(h.SearchRange) != searchRange || int(h.EntrySelector) != entrySelector ||
		int(h.RangeShift) != 2*segCount-searchRange {
		ec.addWarning(tag, fmt.Sprintf("format 4 search parameters (%d, %d, %d) inconsistent with %d segments",
			h.SearchRange, h.EntrySelector, h.RangeShift, segCount), offset)
	}
}
