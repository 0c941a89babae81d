package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/npillmayer/tinyfont/otgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	font, err := otgen.NewGenerator().Font("A")
	require.NoError(t, err)
	for _, text := range []string{
		font.Base64(),
		font.DataURI(otgen.DefaultMIME),
		"  " + font.Base64()[:40] + "\n" + font.Base64()[40:] + "\n",
	} {
		f, err := ParseText(text)
		require.NoError(t, err)
		assert.Equal(t, font.Binary, f.Binary)
		assert.Equal(t, ot.GlyphIndex(1), f.OT.CMap.GlyphIndexMap.Lookup('A'))
	}
	f, err := ParseText(font.DataURI(otgen.LegacyMIME))
	require.NoError(t, err)
	assert.Equal(t, otgen.LegacyMIME, f.MIME)
}

func TestParseTextRejects(t *testing.T) {
	for _, text := range []string{
		"data:font/ttf,AAEAAA",
		"data:font/ttf;base64",
		"not base64!",
	} {
		_, err := ParseText(text)
		assert.ErrorIs(t, err, ErrNotBase64, "text %q", text)
	}
	_, err := ParseText("AAAA") // valid base64, but no font
	assert.Error(t, err)
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	font, err := otgen.NewGenerator().Font("€")
	require.NoError(t, err)
	dir := t.TempDir()
	bin := filepath.Join(dir, "euro.ttf")
	require.NoError(t, os.WriteFile(bin, font.Binary, 0o644))
	txt := filepath.Join(dir, "euro.txt")
	require.NoError(t, os.WriteFile(txt, []byte(font.DataURI("")), 0o644))
	for _, name := range []string{bin, txt} {
		f, err := LoadFont(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, f.Source)
		assert.Equal(t, font.Binary, f.Binary)
	}
	_, err = LoadFont(filepath.Join(dir, "missing.ttf"))
	assert.Error(t, err)
}
