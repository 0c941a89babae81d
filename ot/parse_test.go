package ot_test

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, s string) []byte {
	t.Helper()
	f, err := otgen.NewGenerator().Font(s)
	require.NoError(t, err)
	b := make([]byte, len(f.Binary))
	copy(b, f.Binary)
	return b
}

func TestParseGeneratedFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	otf, err := ot.Parse(generate(t, "A"))
	require.NoError(t, err)
	assert.Empty(t, otf.Errors())
	assert.Empty(t, otf.Warnings())
	assert.False(t, otf.HasCriticalErrors())
	assert.Equal(t, uint32(0x00010000), otf.Header.FontType)
	assert.Equal(t, uint16(10), otf.Header.TableCount)
	assert.Equal(t, otgen.TableOrder(), otf.TableTags())
	for _, tag := range ot.RequiredTables {
		assert.NotNil(t, otf.Table(ot.T(tag)), "table %s", tag)
	}
	assert.Nil(t, otf.Table(ot.T("GSUB")))
	//
	head := otf.Table(ot.T("head")).Self().AsHead()
	require.NotNil(t, head)
	assert.Equal(t, uint32(0x5F0F3CF5), head.MagicNumber)
	assert.Equal(t, uint16(8192), head.UnitsPerEm)
	assert.Equal(t, uint16(0), head.IndexToLocFormat)
	maxp := otf.Table(ot.T("maxp")).Self().AsMaxP()
	require.NotNil(t, maxp)
	assert.Equal(t, 2, maxp.NumGlyphs)
	assert.Equal(t, 1, otf.HorizontalHeader().NumberOfHMetrics)
	assert.Equal(t, uint16(0x0100), otf.OS2Metrics().WinAscent)
	assert.Equal(t, uint16(4), otf.OS2Metrics().Version)
	assert.Equal(t, 2, otf.HorizontalMetrics().GlyphCount())
	adv, lsb, ok := otf.HorizontalMetrics().HMetrics(1)
	assert.True(t, ok)
	assert.Zero(t, adv)
	assert.Zero(t, lsb)
	loca := otf.Table(ot.T("loca")).Self().AsLoca()
	require.NotNil(t, loca)
	assert.Equal(t, []uint32{0, 0, 16}, loca.Locations(), "end marker points to the end of glyf")
}

func TestParseCMap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	otf, err := ot.Parse(generate(t, "A"))
	require.NoError(t, err)
	cmap := otf.CMap
	require.NotNil(t, cmap)
	assert.Equal(t, uint16(3), cmap.PlatformID)
	assert.Equal(t, uint16(1), cmap.EncodingID)
	assert.Equal(t, 1, cmap.NumSubtables)
	assert.Equal(t, 2, cmap.NumGlyphs)
	f4, ok := cmap.GlyphIndexMap.(ot.Format4GlyphIndex)
	require.True(t, ok, "expected a format 4 sub-table")
	assert.Equal(t, ot.CMapFormat4Header{
		Format: 4, Length: 32, SegCountX2: 4, SearchRange: 4, EntrySelector: 1,
	}, f4.Header)
	assert.Equal(t, []ot.CMapSegment{
		{End: 0x41, Start: 0x41, Delta: 0xffc0},
		{End: 0xffff, Start: 0xffff, Delta: 1},
	}, f4.Segments())
	assert.Equal(t, ot.GlyphIndex(1), f4.Lookup('A'))
	assert.Equal(t, ot.GlyphIndex(0), f4.Lookup('B'))
	assert.Equal(t, ot.GlyphIndex(0), f4.Lookup(0))
	assert.Equal(t, 'A', f4.ReverseLookup(1))
}

// corrupt generates a font for 'A' and applies f to its bytes.
func corrupt(t *testing.T, f func(b []byte) []byte) []byte {
	return f(generate(t, "A"))
}

func dirOffset(i int) int {
	return 12 + 16*i
}

func TestParseRejectsBrokenFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	be := binary.BigEndian
	for name, font := range map[string][]byte{
		"empty":     {},
		"too short": {0, 1, 0, 0, 0},
		"CFF": corrupt(t, func(b []byte) []byte {
			copy(b, "OTTO")
			return b
		}),
		"truncated directory": corrupt(t, func(b []byte) []byte {
			return b[:100]
		}),
		"unsorted directory": corrupt(t, func(b []byte) []byte {
			r0, r1 := dirOffset(0), dirOffset(1)
			tmp := make([]byte, 16)
			copy(tmp, b[r0:r0+16])
			copy(b[r0:r0+16], b[r1:r1+16])
			copy(b[r1:r1+16], tmp)
			return b
		}),
		"misaligned table": corrupt(t, func(b []byte) []byte {
			be.PutUint32(b[dirOffset(9)+8:], 494)
			return b
		}),
		"table beyond end": corrupt(t, func(b []byte) []byte {
			be.PutUint32(b[dirOffset(9)+12:], 32)
			return b
		}),
		"table inside directory": corrupt(t, func(b []byte) []byte {
			be.PutUint32(b[dirOffset(0)+8:], 12)
			return b
		}),
		"missing table": corrupt(t, func(b []byte) []byte {
			copy(b[dirOffset(9):], "zzzz")
			return b
		}),
		"bad loca format": corrupt(t, func(b []byte) []byte {
			be.PutUint16(b[320+50:], 7)
			return b
		}),
		"no format 4": corrupt(t, func(b []byte) []byte {
			be.PutUint16(b[260+12:], 6)
			return b
		}),
		"odd segment count": corrupt(t, func(b []byte) []byte {
			be.PutUint16(b[260+12+6:], 3)
			return b
		}),
	} {
		_, err := ot.Parse(font)
		assert.Error(t, err, name)
	}
}

func TestParseCollectsWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	font := corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint16(b[6:], 64)        // searchRange
		binary.BigEndian.PutUint16(b[260+12+10:], 2) // cmap entrySelector
		return b
	})
	otf, err := ot.Parse(font)
	require.NoError(t, err)
	assert.Len(t, otf.Warnings(), 2)
	assert.Empty(t, otf.Errors())
}

func TestParseCollectsErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	font := corrupt(t, func(b []byte) []byte {
		// start code of the real segment > end code
		binary.BigEndian.PutUint16(b[260+12+14+6:], 0x42)
		return b
	})
	otf, err := ot.Parse(font)
	require.NoError(t, err, "major errors must not stop parsing")
	require.NotEmpty(t, otf.Errors())
	assert.Equal(t, ot.SeverityMajor, otf.Errors()[0].Severity)
	assert.Equal(t, ot.T("cmap"), otf.Errors()[0].Table)
	assert.Empty(t, otf.CriticalErrors())
}
