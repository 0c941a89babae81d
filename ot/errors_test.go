package ot_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyfont/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontErrorFormat(t *testing.T) {
	e := ot.FontError{
		Table:    ot.T("cmap"),
		Section:  "Format4",
		Issue:    "illegal segment count",
		Severity: ot.SeverityCritical,
		Offset:   272,
	}
	assert.Equal(t, "[CRITICAL] cmap/Format4 at offset 272: illegal segment count", e.Error())
	e.Offset, e.Severity = 0, ot.SeverityMajor
	assert.Equal(t, "[MAJOR] cmap/Format4: illegal segment count", e.Error())
	w := ot.FontWarning{Table: ot.T("post"), Issue: "table length 14 is not long-aligned", Offset: 492}
	assert.Equal(t, "[WARNING] post at offset 492: table length 14 is not long-aligned", w.String())
	w.Offset = 0
	assert.Equal(t, "[WARNING] post: table length 14 is not long-aligned", w.String())
	assert.Equal(t, "MINOR", ot.SeverityMinor.String())
	assert.Equal(t, "UNKNOWN", ot.ErrorSeverity(99).String())
}

// parseError parses a broken font and returns the issues reported with
// the failure.
func parseError(t *testing.T, font []byte) *ot.ParseError {
	t.Helper()
	_, err := ot.Parse(font)
	require.Error(t, err)
	assert.ErrorIs(t, err, ot.ErrFontFormat)
	var perr *ot.ParseError
	require.True(t, errors.As(err, &perr), "expected a *ParseError, got %T", err)
	return perr
}

func TestUnalignedTableOffset(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	perr := parseError(t, corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint32(b[dirOffset(9)+8:], 494)
		return b
	}))
	crit := perr.Critical()
	require.Len(t, crit, 1)
	assert.Equal(t, ot.T("post"), crit[0].Table)
	assert.Equal(t, "Offset", crit[0].Section)
	assert.Equal(t, uint32(494), crit[0].Offset)
}

func TestBadSegmentCount(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	const subtable = 260 + 12
	perr := parseError(t, corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint16(b[subtable+6:], 3)
		return b
	}))
	crit := perr.Critical()
	require.Len(t, crit, 1)
	assert.Equal(t, ot.T("cmap"), crit[0].Table)
	assert.Equal(t, "Format4", crit[0].Section)
	assert.Equal(t, uint32(subtable), crit[0].Offset)
}

func TestMissingTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	perr := parseError(t, corrupt(t, func(b []byte) []byte {
		copy(b[dirOffset(9):], "zzzz")
		return b
	}))
	crit := perr.Critical()
	require.Len(t, crit, 1)
	assert.Equal(t, ot.T("post"), crit[0].Table)
	assert.Equal(t, "Missing", crit[0].Section)
	assert.NotEmpty(t, perr.Warnings, "uninterpreted table zzzz is reported")
}

func TestLocaEndMarkerBeyondGlyf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	otf, err := ot.Parse(corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint16(b[420+4:], 9) // 18 bytes, glyf has 16
		return b
	}))
	require.NoError(t, err, "a major error does not stop decoding")
	require.Len(t, otf.Errors(), 1)
	e := otf.Errors()[0]
	assert.Equal(t, ot.T("loca"), e.Table)
	assert.Equal(t, "EndMarker", e.Section)
	assert.Equal(t, ot.SeverityMajor, e.Severity)
	assert.False(t, otf.HasCriticalErrors())
}

func TestUnalignedTableLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	otf, err := ot.Parse(corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint32(b[dirOffset(9)+12:], 14)
		return b
	}))
	require.NoError(t, err)
	assert.Empty(t, otf.Errors())
	require.Len(t, otf.Warnings(), 1)
	w := otf.Warnings()[0]
	assert.Equal(t, ot.T("post"), w.Table)
	assert.Equal(t, uint32(492), w.Offset)
	assert.Contains(t, w.Issue, "not long-aligned")
}

func TestCriticalErrorKeepsFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyfont.ot")
	defer teardown()
	//
	otf, err := ot.Parse(corrupt(t, func(b []byte) []byte {
		binary.BigEndian.PutUint32(b[320+12:], 0xdeadbeef) // head magic number
		return b
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ot.ErrFontFormat)
	require.NotNil(t, otf, "decoding completed, the font is returned for inspection")
	assert.True(t, otf.HasCriticalErrors())
	crit := otf.CriticalErrors()
	require.Len(t, crit, 1)
	assert.Equal(t, "MagicNumber", crit[0].Section)
	assert.Equal(t, uint32(320+12), crit[0].Offset)
}
