package otquery

import "encoding/binary"

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}

// fieldReader reads consecutive big-endian fields of a table. The caller
// checks the table size before reading.
type fieldReader struct {
	b   []byte
	pos int
}

func (r *fieldReader) u16() uint16 {
	v := binary.BigEndian.Uint16(r.b[r.pos:])
	r.pos += 2
	return v
}

func (r *fieldReader) i16() int16 {
	return int16(r.u16())
}

func (r *fieldReader) u32() uint32 {
	v := binary.BigEndian.Uint32(r.b[r.pos:])
	r.pos += 4
	return v
}

func (r *fieldReader) i64() int64 {
	v := binary.BigEndian.Uint64(r.b[r.pos:])
	r.pos += 8
	return int64(v)
}

func (r *fieldReader) bytes(n int) []byte {
	v := r.b[r.pos : r.pos+n]
	r.pos += n
	return v
}
