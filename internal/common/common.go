package common

import (
	"encoding/binary"
)

// MaxWidth is the widest element PutInt and Int can encode.
const MaxWidth = 8

// PutInt writes the low width bytes of v's two's-complement form into b,
// little-endian. b must hold at least width bytes.
func PutInt(b []byte, v int64, width int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, uint64(v))
	default:
		u := uint64(v)
		for i := 0; i < width; i++ {
			b[i] = byte(u)
			u >>= 8
		}
	}
}

// Int decodes a little-endian two's-complement integer of width bytes from b,
// sign-extending from its top bit.
func Int(b []byte, width int) int64 {
	switch width {
	case 1:
		return int64(int8(b[0]))
	case 2:
		return int64(int16(binary.LittleEndian.Uint16(b)))
	case 4:
		return int64(int32(binary.LittleEndian.Uint32(b)))
	case 8:
		return int64(binary.LittleEndian.Uint64(b))
	}
	var u uint64
	for i := width - 1; i >= 0; i-- {
		u = u<<8 | uint64(b[i])
	}
	shift := 64 - 8*uint(width)
	return int64(u<<shift) >> shift
}

// Fits reports whether v survives a PutInt/Int round trip at width bytes.
func Fits(v int64, width int) bool {
	if width >= MaxWidth {
		return true
	}
	shift := 64 - 8*uint(width)
	return int64(uint64(v)<<shift)>>shift == v
}

// WriteVarUint appends a varint to buf (allocating if needed).
func WriteVarUint(buf []byte, x uint64) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// n is 0 when b ends before the varint does or the value overflows 64 bits.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == binary.MaxVarintLen64 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}
