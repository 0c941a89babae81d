package otgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexTokens(t *testing.T) {
	for _, tt := range []struct {
		text string
		data []byte
	}{
		{"", []byte{}},
		{"00 01 00 00", []byte{0, 1, 0, 0}},
		{" 00 04\n\t00 01  00 64 ", []byte{0, 4, 0, 1, 0, 0x64, 0, 0}},
		{"31", []byte{0x31, 0, 0, 0}},
		{"5F 0f 3C f5 01", []byte{0x5f, 0x0f, 0x3c, 0xf5, 1, 0, 0, 0}},
	} {
		data, err := ParseHexTokens(tt.text)
		require.NoError(t, err, "text %q", tt.text)
		if diff := cmp.Diff(tt.data, data); diff != "" {
			t.Errorf("ParseHexTokens(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
		assert.Zero(t, len(data)%4, "result must be long-aligned")
	}
}

func TestParseHexTokensMalformed(t *testing.T) {
	for _, text := range []string{"0", "000", "0x", "GG", "00 1", "00 -1"} {
		_, err := ParseHexTokens(text)
		assert.ErrorIs(t, err, ErrHexToken, "text %q", text)
	}
}

func TestBigEndian(t *testing.T) {
	assert.Equal(t, [4]byte{0, 0, 0, 172}, BigEndianU32(172))
	assert.Equal(t, [4]byte{0x5f, 0x0f, 0x3c, 0xf5}, BigEndianU32(0x5F0F3CF5))
	assert.Equal(t, [4]byte{0xff, 0xff, 0xff, 0xff}, BigEndianU32(0xffffffff))
	assert.Equal(t, [4]byte{0xff, 0xff, 0xff, 0xff}, BigEndianInt(-1))
	assert.Equal(t, [4]byte{0x80, 0, 0, 0}, BigEndianInt(-0x80000000))
	assert.Equal(t, [4]byte{0, 0, 0, 1}, BigEndianInt(1<<32+1))
}

func TestStubChecksum(t *testing.T) {
	assert.Equal(t, [4]byte{}, StubChecksum(nil))
	assert.Equal(t, [4]byte{}, StubChecksum([]byte{1, 2, 3, 4}))
}

func TestTableText(t *testing.T) {
	var text tableText
	text.u16(0x2000)
	text.u32(0x00010000)
	text.zeros(2)
	text.field("31")
	assert.Equal(t, " 20 00 00 01 00 00 00 00 31", text.String())
}
