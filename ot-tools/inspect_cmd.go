package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/tinyfont/internal/fontload"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otquery"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/runenames"
)

func runInspectCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(mustFlagBool(flags["verbose"], "verbose"))
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	tf, err := fontload.LoadFont(fontPath)
	if err != nil {
		fatalf("cannot load font %s: %v", fontPath, err)
	}
	inspectFont(os.Stdout, tf, splitCSVSpace(args["tables"].Value),
		mustFlagBool(flags["errors"], "errors"))
}

func inspectFont(w io.Writer, tf *fontload.TinyFont, tables []string, showIssues bool) {
	otf := tf.OT
	fmt.Fprintf(w, "Path: %s\n", tf.Source)
	if tf.MIME != "" {
		fmt.Fprintf(w, "MIME: %s\n", tf.MIME)
	}
	fmt.Fprintf(w, "Type: %s\n", otquery.FontType(otf))
	fmt.Fprintf(w, "Size: %d bytes\n", len(tf.Binary))
	fmt.Fprintf(w, "Tables (%d):\n", len(otf.Directory))
	for _, rec := range otf.Directory {
		fmt.Fprintf(w, "  %s offset=%d length=%d checksum=%08x\n", rec.Tag, rec.Offset, rec.Length, rec.Checksum)
	}
	m := otquery.FontMetrics(otf)
	fmt.Fprintf(w, "Metrics: upem=%d ascent=%d descent=%d linegap=%d winascent=%d\n",
		m.UnitsPerEm, m.Ascent, m.Descent, m.LineGap, m.WinAscent)
	for _, r := range otquery.MappedCodePoints(otf) {
		name := runenames.Name(r)
		fmt.Fprintf(w, "Maps: %U %s => glyph %d\n", r, name, otquery.GlyphIndex(otf, r))
	}
	errs := otf.Errors()
	warns := otf.Warnings()
	crit := otf.CriticalErrors()
	fmt.Fprintf(w, "Issues: errors=%d warnings=%d critical=%d\n", len(errs), len(warns), len(crit))
	if len(tables) > 0 {
		printSelectedTables(w, otf, tables)
	}
	if showIssues {
		for _, e := range errs {
			fmt.Fprintf(w, "error: %s\n", e.Error())
		}
		for _, wn := range warns {
			fmt.Fprintf(w, "warning: %s\n", wn.String())
		}
	}
}

func printSelectedTables(w io.Writer, otf *ot.Font, requested []string) {
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		tag := ot.T(tagName)
		table := otf.Table(tag)
		if table == nil {
			fmt.Fprintf(w, "table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Fprintf(w, "table %s: offset=%d size=%d\n", tagName, off, size)
		printTableFields(w, otf, tag)
	}
}

func printTableFields(w io.Writer, otf *ot.Font, tag ot.Tag) {
	switch tag {
	case ot.T("head"):
		if h, ok := otquery.HeadInfo(otf); ok {
			fmt.Fprintf(w, "  magic=%08x upem=%d bbox=(%d,%d)-(%d,%d) indexToLocFormat=%d\n",
				h.MagicNumber, h.UnitsPerEm, h.XMin, h.YMin, h.XMax, h.YMax, h.IndexToLocFormat)
		}
	case ot.T("hhea"):
		if h, ok := otquery.HHeaInfo(otf); ok {
			fmt.Fprintf(w, "  ascender=%d descender=%d linegap=%d numberOfHMetrics=%d\n",
				h.Ascender, h.Descender, h.LineGap, h.NumberOfHMetrics)
		}
	case ot.T("maxp"):
		if m, ok := otquery.MaxPInfo(otf); ok {
			fmt.Fprintf(w, "  numGlyphs=%d maxPoints=%d maxContours=%d maxZones=%d\n",
				m.NumGlyphs, m.MaxPoints, m.MaxContours, m.MaxZones)
		}
	case ot.T("OS/2"):
		if o, ok := otquery.OS2Info(otf); ok {
			fmt.Fprintf(w, "  version=%d weight=%d width=%d winAscent=%d winDescent=%d\n",
				o.Version, o.WeightClass, o.WidthClass, o.WinAscent, o.WinDescent)
		}
	case ot.T("post"):
		if p, ok := otquery.PostInfo(otf); ok {
			fmt.Fprintf(w, "  version=%08x italicAngle=%d\n", p.VersionFixed, p.ItalicAngle)
		}
	case ot.T("name"):
		for _, rec := range otquery.NameRecords(otf) {
			fmt.Fprintf(w, "  %s\n", rec)
		}
	case ot.T("cmap"):
		if otf.CMap == nil {
			return
		}
		if f4, ok := otf.CMap.GlyphIndexMap.(ot.Format4GlyphIndex); ok {
			for _, seg := range f4.Segments() {
				fmt.Fprintf(w, "  segment %04x..%04x delta=%04x rangeOffset=%d\n",
					seg.Start, seg.End, seg.Delta, seg.RangeOffset)
			}
		}
	case ot.T("glyf"), ot.T("loca"):
		for gid := ot.GlyphIndex(0); ; gid++ {
			g, ok := otquery.GlyphHeader(otf, gid)
			if !ok {
				break
			}
			fmt.Fprintf(w, "  glyph %d: offset=%d length=%d contours=%d points=%d\n",
				gid, g.Offset, g.Length, g.Contours, g.Points)
		}
	}
}
