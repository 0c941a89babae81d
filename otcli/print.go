package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func printDirectory(otf *ot.Font) {
	data := [][]string{
		{"#", "Tag", "Offset", "Length", "Checksum"},
	}
	for i, rec := range otf.Directory {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			rec.Tag.String(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("%08x", rec.Checksum),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// printHexDump prints table data in rows of 16 bytes, grouped into 16-bit
// words, which is how font tables are usually read.
func printHexDump(b []byte) {
	for row := 0; row < len(b); row += 16 {
		end := min(row+16, len(b))
		sb := strings.Builder{}
		for i := row; i < end; i++ {
			sb.WriteString(fmt.Sprintf("%02x", b[i]))
			if i%2 == 1 {
				sb.WriteByte(' ')
			}
		}
		pterm.Printf("%04x: %s\n", row, sb.String())
	}
}

func printTableInfo(otf *ot.Font, tag ot.Tag) {
	var fields [][]string
	switch tag {
	case ot.T("head"):
		if h, ok := otquery.HeadInfo(otf); ok {
			fields = [][]string{
				{"version", fmt.Sprintf("%d.%d", h.MajorVersion, h.MinorVersion)},
				{"magicNumber", fmt.Sprintf("%#08x", h.MagicNumber)},
				{"flags", fmt.Sprintf("%#04x", h.Flags)},
				{"unitsPerEm", fmt.Sprintf("%d", h.UnitsPerEm)},
				{"bbox", fmt.Sprintf("(%d,%d)-(%d,%d)", h.XMin, h.YMin, h.XMax, h.YMax)},
				{"lowestRecPPEM", fmt.Sprintf("%d", h.LowestRecPPEM)},
				{"fontDirectionHint", fmt.Sprintf("%d", h.FontDirectionHint)},
				{"indexToLocFormat", fmt.Sprintf("%d", h.IndexToLocFormat)},
			}
		}
	case ot.T("hhea"):
		if h, ok := otquery.HHeaInfo(otf); ok {
			fields = [][]string{
				{"ascender", fmt.Sprintf("%d", h.Ascender)},
				{"descender", fmt.Sprintf("%d", h.Descender)},
				{"lineGap", fmt.Sprintf("%d", h.LineGap)},
				{"advanceWidthMax", fmt.Sprintf("%d", h.AdvanceWidthMax)},
				{"numberOfHMetrics", fmt.Sprintf("%d", h.NumberOfHMetrics)},
			}
		}
	case ot.T("maxp"):
		if m, ok := otquery.MaxPInfo(otf); ok {
			fields = [][]string{
				{"version", fmt.Sprintf("%#08x", m.VersionFixed)},
				{"numGlyphs", fmt.Sprintf("%d", m.NumGlyphs)},
				{"maxPoints", fmt.Sprintf("%d", m.MaxPoints)},
				{"maxContours", fmt.Sprintf("%d", m.MaxContours)},
				{"maxZones", fmt.Sprintf("%d", m.MaxZones)},
			}
		}
	case ot.T("OS/2"):
		if o, ok := otquery.OS2Info(otf); ok {
			fields = [][]string{
				{"version", fmt.Sprintf("%d", o.Version)},
				{"weightClass", fmt.Sprintf("%d", o.WeightClass)},
				{"widthClass", fmt.Sprintf("%d", o.WidthClass)},
				{"typo asc/desc/gap", fmt.Sprintf("%d/%d/%d", o.TypoAscender, o.TypoDescender, o.TypoLineGap)},
				{"winAscent", fmt.Sprintf("%d", o.WinAscent)},
				{"winDescent", fmt.Sprintf("%d", o.WinDescent)},
			}
		}
	case ot.T("post"):
		if p, ok := otquery.PostInfo(otf); ok {
			fields = [][]string{
				{"version", fmt.Sprintf("%#08x", p.VersionFixed)},
				{"italicAngle", fmt.Sprintf("%d", p.ItalicAngle)},
				{"isFixedPitch", fmt.Sprintf("%d", p.IsFixedPitch)},
			}
		}
	case ot.T("cmap"):
		printCMap(otf)
		return
	case ot.T("name"):
		printNames(otf)
		return
	case ot.T("glyf"), ot.T("loca"), ot.T("hmtx"):
		printGlyphs(otf)
		return
	}
	if len(fields) == 0 {
		pterm.Printf("no decoded view for table %s\n", tag)
		return
	}
	data := append([][]string{{"Field", "Value"}}, fields...)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printCMap(otf *ot.Font) {
	cmap := otf.CMap
	if cmap == nil {
		pterm.Println("font has no usable cmap sub-table")
		return
	}
	pterm.Printf("cmap platform=%d encoding=%d, %d sub-table(s)\n",
		cmap.PlatformID, cmap.EncodingID, cmap.NumSubtables)
	f4, ok := cmap.GlyphIndexMap.(ot.Format4GlyphIndex)
	if !ok {
		return
	}
	data := [][]string{
		{"Segment", "Start", "End", "Delta", "RangeOffset"},
	}
	for i, seg := range f4.Segments() {
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("U+%04X", seg.Start),
			fmt.Sprintf("U+%04X", seg.End),
			fmt.Sprintf("%#04x", seg.Delta),
			fmt.Sprintf("%d", seg.RangeOffset),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printNames(otf *ot.Font) {
	data := [][]string{
		{"Platform", "Encoding", "Language", "Name ID", "Length", "Value"},
	}
	for _, rec := range otquery.NameRecords(otf) {
		data = append(data, []string{
			fmt.Sprintf("%d", rec.Platform),
			fmt.Sprintf("%d", rec.Encoding),
			fmt.Sprintf("%#04x", rec.Language),
			fmt.Sprintf("%d", rec.Name),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("%q", rec.Value),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printGlyphs(otf *ot.Font) {
	data := [][]string{
		{"Glyph", "Character", "Offset", "Length", "Contours", "Points", "Advance"},
	}
	for gid := ot.GlyphIndex(0); ; gid++ {
		g, ok := otquery.GlyphHeader(otf, gid)
		if !ok {
			break
		}
		char := ".notdef"
		if r := otquery.CodePointForGlyph(otf, gid); r != 0 {
			char = fmt.Sprintf("%U %s", r, characterName(r))
		} else if gid > 0 {
			char = "-"
		}
		m := otquery.GlyphMetrics(otf, gid)
		data = append(data, []string{
			fmt.Sprintf("%d", gid),
			char,
			fmt.Sprintf("%d", g.Offset),
			fmt.Sprintf("%d", g.Length),
			fmt.Sprintf("%d", g.Contours),
			fmt.Sprintf("%d", g.Points),
			fmt.Sprintf("%d", m.Advance),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func characterName(r rune) string {
	if name := runenames.Name(r); name != "" {
		return name
	}
	return "<unnamed>"
}
