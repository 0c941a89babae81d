package otgen

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodePointOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	//
	for _, tt := range []struct {
		input string
		cp    CodePoint
	}{
		{"A", 0x41},
		{"\u00e9", 0xe9},
		{"\u20ac", 0x20ac},
		{"\u0001", 0x0001},
		{"\ufffe", 0xfffe},
		{"\ud7ff", 0xd7ff},
		{"\ue000", 0xe000},
	} {
		cp, err := CodePointOf(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.cp, cp, "input %q", tt.input)
	}
}

func TestCodePointOfRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	//
	for name, input := range map[string]string{
		"empty":         "",
		"two runes":     "AB",
		"combining":     "e\u0301",
		"supplementary": "\U0001F600",
		"NUL":           "\x00",
		"terminator":    "\uffff",
		"broken UTF-8":  "\xff",
		"truncated":     "\xe2\x82",
	} {
		_, err := CodePointOf(input)
		assert.ErrorIs(t, err, ErrInvalidCodePoint, name)
	}
}

func TestCodePointOfUTF16(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	//
	cp, err := CodePointOfUTF16(0x0041)
	require.NoError(t, err)
	assert.Equal(t, CodePoint('A'), cp)
	// U+1F600 is D83D DE00 in UTF-16; it is decoded but cannot be used
	cp, err = CodePointOfUTF16(0xd83d, 0xde00)
	assert.True(t, errors.Is(err, ErrInvalidCodePoint), "supplementary character must be rejected")
	assert.Equal(t, CodePoint(0x1f600), cp, "surrogate pair must be combined, not truncated")
	for _, units := range [][]uint16{
		{},
		{0xd83d},         // lone high surrogate
		{0xde00},         // lone low surrogate
		{0xde00, 0xd83d}, // reversed pair
		{0x0041, 0x0042}, // two characters
		{0x0041, 0x0042, 0x0043},
	} {
		_, err := CodePointOfUTF16(units...)
		assert.ErrorIs(t, err, ErrInvalidCodePoint, "units %04X", units)
	}
}

func TestCodePointValid(t *testing.T) {
	assert.False(t, CodePoint(0).Valid())
	assert.True(t, CodePoint(1).Valid())
	assert.False(t, CodePoint(0xd800).Valid())
	assert.False(t, CodePoint(0xdfff).Valid())
	assert.True(t, CodePoint(0xfffe).Valid())
	assert.False(t, CodePoint(0xffff).Valid())
	assert.False(t, CodePoint(0x10000).Valid())
	assert.False(t, CodePoint(-1).Valid())
	assert.Equal(t, "U+0041", CodePoint('A').String())
}

func TestHexPair(t *testing.T) {
	for _, tt := range []struct {
		cp   CodePoint
		pair string
	}{
		{0x41, "00 41"},
		{0x01, "00 01"},
		{0x100, "01 00"}, // three hex digits are padded to four
		{0x20ac, "20 AC"},
		{0xffff, "FF FF"},
	} {
		pair, err := HexPair(tt.cp)
		require.NoError(t, err)
		assert.Equal(t, tt.pair, pair, "hex pair of %s", tt.cp)
	}
	_, err := HexPair(0x1f600)
	assert.ErrorIs(t, err, ErrInvalidCodePoint)
}

func TestParseCodePoint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.gen")
	defer teardown()
	//
	for token, cp := range map[string]CodePoint{
		"A":        'A',
		"U+20AC":   0x20ac,
		"u+00e9":   0xe9,
		"0x41":     'A',
		" U+0041 ": 'A',
		"U":        'U',
		"\u20ac":   0x20ac,
	} {
		got, err := ParseCodePoint(token)
		require.NoError(t, err, "token %q", token)
		assert.Equal(t, cp, got, "token %q", token)
	}
	for _, token := range []string{"", "U+", "U+XYZ", "U+1F600", "0xffff", "U+D800", "AB"} {
		_, err := ParseCodePoint(token)
		assert.ErrorIs(t, err, ErrInvalidCodePoint, "token %q", token)
	}
}
