package otgen_test

import (
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/npillmayer/tinyfont/otquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleCodePoints returns every 61st code point of the BMP plus the edge
// cases, skipping code points which cannot be mapped.
func sampleCodePoints() []otgen.CodePoint {
	cps := []otgen.CodePoint{0x0001, 0x0041, 0x00ff, 0x0100, 0xd7ff, 0xe000, 0xf001, 0xf002, 0xfffe}
	for c := otgen.CodePoint(2); c < 0xffff; c += 61 {
		if c.Valid() {
			cps = append(cps, c)
		}
	}
	return cps
}

func TestDecodedFontLaws(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	tracing.Select("tinyfont.gen").SetTraceLevel(tracing.LevelError)
	tracing.Select("tinyfont.ot").SetTraceLevel(tracing.LevelError)
	//
	g := otgen.NewGenerator()
	for _, cp := range sampleCodePoints() {
		f, err := g.FontForCodePoint(cp)
		require.NoError(t, err, "code point %s", cp)
		otf, err := ot.Parse(f.Binary)
		require.NoError(t, err, "code point %s", cp)
		require.Empty(t, otf.Errors(), "code point %s", cp)
		require.Empty(t, otf.Warnings(), "code point %s", cp)
		//
		require.Len(t, otf.Directory, 10)
		offset, total := uint32(otgen.FirstTableOffset), 0
		for i, rec := range otf.Directory {
			assert.Equal(t, otgen.TableOrder()[i], rec.Tag)
			assert.Equal(t, offset, rec.Offset, "offset of %s for %s", rec.Tag, cp)
			assert.NotZero(t, rec.Length)
			assert.Zero(t, rec.Length%4, "table %s must be long-aligned", rec.Tag)
			assert.Zero(t, rec.Checksum)
			offset += rec.Length
			total += int(rec.Length)
		}
		assert.Equal(t, otgen.FirstTableOffset+total, len(f.Binary))
		//
		assert.Equal(t, ot.GlyphIndex(1), otquery.GlyphIndex(otf, rune(cp)), "lookup of %s", cp)
		assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otf, 0), "lookup of U+0000 in font for %s", cp)
		assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otf, rune(cp)-1), "lookup of predecessor of %s", cp)
		assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otf, rune(cp)+1), "lookup of successor of %s", cp)
		assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otf, 0xffff))
		assert.Equal(t, rune(cp), otquery.CodePointForGlyph(otf, 1))
	}
}

func TestIndependentCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	//
	g := otgen.NewGenerator()
	fa, err := g.Font("A")
	require.NoError(t, err)
	fb, err := g.Font("B")
	require.NoError(t, err)
	otfA, err := ot.Parse(fa.Binary)
	require.NoError(t, err)
	otfB, err := ot.Parse(fb.Binary)
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphIndex(1), otquery.GlyphIndex(otfA, 'A'))
	assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otfA, 'B'))
	assert.Equal(t, ot.GlyphIndex(1), otquery.GlyphIndex(otfB, 'B'))
	assert.Equal(t, ot.GlyphIndex(0), otquery.GlyphIndex(otfB, 'A'))
	// the font for 'A' must not have been changed by generating 'B'
	again, err := g.Font("A")
	require.NoError(t, err)
	assert.Equal(t, fa.Binary, again.Binary)
	otfA, err = ot.Parse(fa.Binary)
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphIndex(1), otquery.GlyphIndex(otfA, 'A'))
}

func TestGeneratedFontIsTrueType(t *testing.T) {
	f, err := otgen.NewGenerator().Font("A")
	require.NoError(t, err)
	otf, err := ot.Parse(f.Binary)
	require.NoError(t, err)
	assert.Equal(t, "TrueType", otquery.FontType(otf))
	head, ok := otquery.HeadInfo(otf)
	require.True(t, ok)
	assert.Equal(t, int16(0), head.IndexToLocFormat, "loca uses short offsets")
	maxp, ok := otquery.MaxPInfo(otf)
	require.True(t, ok)
	assert.Equal(t, uint16(2), maxp.NumGlyphs)
}
