package ot

import (
	"errors"
)

// Reading bytes from a font's binary representation

var errBufferBounds = errors.New("internal inconsistency: buffer bounds error")

func u16(b []byte) uint16 {
	_ = b[1] // Bounds check hint to compiler
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func u32(b []byte) uint32 {
	_ = b[3] // Bounds check hint to compiler
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

// binarySegm is a segment of byte data. We use it throughout this package to
// navigate the font's binary data.
type binarySegm []byte

// Size returns the number of bytes in the segment.
func (b binarySegm) Size() int {
	return len(b)
}

// Bytes returns the segment as a plain byte slice.
func (b binarySegm) Bytes() []byte {
	return b
}

// U16 returns the uint16 at byte index i, or 0 if out of bounds.
func (b binarySegm) U16(i int) uint16 {
	n, err := b.u16(i)
	if err != nil {
		return 0
	}
	return n
}

// U32 returns the uint32 at byte index i, or 0 if out of bounds.
func (b binarySegm) U32(i int) uint32 {
	n, err := b.u32(i)
	if err != nil {
		return 0
	}
	return n
}

// view returns n bytes at the given offset.
// The byte segment returned is a sub-slice of b.
func (b binarySegm) view(offset, n int) (binarySegm, error) {
	if offset < 0 || n <= 0 || offset+n > len(b) {
		return nil, errBufferBounds
	}
	return b[offset : offset+n], nil
}

// u16 returns the uint16 in b at the relative offset i.
func (b binarySegm) u16(i int) (uint16, error) {
	buf, err := b.view(i, 2)
	if err != nil {
		return 0, err
	}
	return u16(buf), nil
}

// u32 returns the uint32 in b at the relative offset i.
func (b binarySegm) u32(i int) (uint32, error) {
	buf, err := b.view(i, 4)
	if err != nil {
		return 0, err
	}
	return u32(buf), nil
}

// array16 views b as a sequence of big-endian uint16 values.
func (b binarySegm) array16(offset, count int) ([]uint16, error) {
	if count == 0 {
		return []uint16{}, nil
	}
	buf, err := b.view(offset, count*2)
	if err != nil {
		return nil, err
	}
	r := make([]uint16, count)
	for i := range r {
		r[i] = u16(buf[i*2:])
	}
	return r, nil
}
