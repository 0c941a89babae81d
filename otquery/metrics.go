package otquery

import (
	"github.com/npillmayer/tinyfont/ot"
	"golang.org/x/image/font/sfnt"
)

// --- Font Information -------------------------------------------------

// FontType returns the outline flavour of a font, "TrueType" or "CFF".
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	switch otf.Header.FontType {
	case 0x00010000, 0x74727565: // 'true'
		return "TrueType"
	case 0x4f54544f: // 'OTTO'
		return "CFF"
	}
	return "unknown"
}

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea := otf.HorizontalHeader(); hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender)
		metrics.Descent = sfnt.Units(hhea.Descender)
		metrics.LineGap = sfnt.Units(hhea.LineGap)
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax)
	}
	if os2 := otf.OS2Metrics(); os2 != nil {
		metrics.WinAscent = sfnt.Units(os2.WinAscent)
		if metrics.Ascent == 0 && metrics.Descent == 0 {
			a := sfnt.Units(os2.TypoAscender)
			if a > metrics.Ascent {
				tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
				metrics.Ascent = a
			}
			d := sfnt.Units(os2.TypoDescender)
			if d < metrics.Descent {
				tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
				metrics.Descent = d
			}
		}
	}
	if head := otf.Table(ot.T("head")); head != nil { // head is a required table
		metrics.UnitsPerEm = sfnt.Units(head.Self().AsHead().UnitsPerEm)
	}
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	if otf == nil || otf.CMap == nil {
		return 0
	}
	return otf.CMap.GlyphIndexMap.Lookup(codepoint)
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 || otf == nil || otf.CMap == nil {
		return 0
	}
	return otf.CMap.GlyphIndexMap.ReverseLookup(gid)
}

// MappedCodePoints returns all code-points which the font's cmap maps to a
// glyph other than `.notdef`.
func MappedCodePoints(otf *ot.Font) []rune {
	if otf == nil || otf.CMap == nil {
		return nil
	}
	f4, ok := otf.CMap.GlyphIndexMap.(ot.Format4GlyphIndex)
	if !ok {
		return nil
	}
	var cps []rune
	for _, seg := range f4.Segments() {
		for c := uint32(seg.Start); c <= uint32(seg.End) && seg.Start <= seg.End; c++ {
			if f4.Lookup(rune(c)) != 0 {
				cps = append(cps, rune(c))
			}
		}
	}
	return cps
}

// GlyphHeader decodes the header of glyph gid in table 'glyf'. Glyphs without
// outline data, i.e. with a length of 0 in table 'loca', have zero contours.
func GlyphHeader(otf *ot.Font, gid ot.GlyphIndex) (GlyphInfo, bool) {
	var info GlyphInfo
	glyf, lo := otf.Table(ot.T("glyf")), otf.Table(ot.T("loca"))
	if glyf == nil || lo == nil {
		return info, false
	}
	loca := lo.Self().AsLoca()
	if loca == nil || int(gid) >= len(loca.Locations())-1 {
		return info, false
	}
	info.Offset = loca.IndexToLocation(gid)
	next := loca.IndexToLocation(gid + 1)
	b := glyf.Binary()
	const glyphHeaderSize = 10
	if next == info.Offset {
		return info, true
	}
	if next < info.Offset || int(info.Offset)+glyphHeaderSize > len(b) {
		tracer().Debugf("glyph %d: no glyph header at offset %d", gid, info.Offset)
		return info, false
	}
	info.Length = next - info.Offset
	b = b[info.Offset:]
	info.Contours = i16(b)
	info.BBox = BoundingBox{
		MinX: sfnt.Units(i16(b[2:])),
		MinY: sfnt.Units(i16(b[4:])),
		MaxX: sfnt.Units(i16(b[6:])),
		MaxY: sfnt.Units(i16(b[8:])),
	}
	if info.Contours > 0 {
		// the last end point index tells the number of points
		last := glyphHeaderSize + 2*(int(info.Contours)-1)
		if last+2 <= len(b) {
			info.Points = int(u16(b[last:])) + 1
		}
	}
	return info, true
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table HMtx: advance width and left side bearing
	if hmtx := otf.HorizontalMetrics(); hmtx != nil {
		if aw, lsb, ok := hmtx.HMetrics(gid); ok {
			metrics.Advance = sfnt.Units(aw)
			metrics.LSB = sfnt.Units(lsb)
		}
	}
	//
	// table glyf: bounding box
	if g, ok := GlyphHeader(otf, gid); ok {
		metrics.BBox = g.BBox
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// From the OpenType specification:
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() { // leave RSB for empty bboxes
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}
