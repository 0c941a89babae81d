package otgen

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// ParseHexTokens converts a stream of whitespace-separated two-digit hex
// tokens into bytes, one byte per token. The result is padded with zero
// bytes to a multiple of 4, as required for every table of an SFNT font.
func ParseHexTokens(text string) ([]byte, error) {
	tokens := strings.Fields(text)
	buf := make([]byte, 0, longAligned(len(tokens)))
	for i, tok := range tokens {
		if len(tok) != 2 {
			return nil, fmt.Errorf("%w: token #%d %q is not 2 digits", ErrHexToken, i, tok)
		}
		b, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: token #%d %q", ErrHexToken, i, tok)
		}
		buf = append(buf, byte(b))
	}
	for len(buf)%4 != 0 {
		buf = append(buf, 0)
	}
	return buf, nil
}

func longAligned(n int) int {
	return (n + 3) &^ 3
}

// BigEndianU32 returns n as 4 bytes, most significant byte first.
func BigEndianU32(n uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], n)
	return b
}

// BigEndianInt returns the lower 32 bits of n as 4 bytes, most significant
// byte first. Negative values wrap around as two's complement, i.e. -1 is
// encoded as FF FF FF FF.
func BigEndianInt(n int64) [4]byte {
	return BigEndianU32(uint32(n))
}

// StubChecksum returns the checksum for a table. It is always zero, as
// consumers of the generated fonts do not verify checksums.
func StubChecksum(data []byte) [4]byte {
	return [4]byte{}
}

// --- Hex text --------------------------------------------------------------

func hex16(v uint16) string {
	return fmt.Sprintf("%02X %02X", v>>8, v&0xff)
}

func hex32(v uint32) string {
	return hex16(uint16(v>>16)) + " " + hex16(uint16(v))
}

// tableText collects the hex tokens of a table, field by field.
type tableText struct {
	strings.Builder
}

func (t *tableText) field(tokens string) {
	t.WriteByte(' ')
	t.WriteString(tokens)
}

func (t *tableText) u16(v uint16) {
	t.field(hex16(v))
}

func (t *tableText) u32(v uint32) {
	t.field(hex32(v))
}

// zeros appends n zero bytes.
func (t *tableText) zeros(n int) {
	for range n {
		t.field("00")
	}
}
