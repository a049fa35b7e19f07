// Package snapshot saves a packed array to a self-describing frame and loads
// it back.
//
// Frame layout (little-endian):
//
//	offset  size  field
//	0       4     magic "PKA1"
//	4       1     version
//	5       1     element width in bytes
//	6       1     compression
//	7       var   uvarint element count
//	..      var   uvarint payload length
//	..      n     payload: the packed elements, compressed
//	end-4   4     CRC32 (IEEE) of bytes [4, end-4)
//
// The frame is an export format. It detects corruption but does not recover
// from it.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"

	"github.com/rawbytedev/packarray"
	"github.com/rawbytedev/packarray/internal/common"
)

const (
	Magic   = "PKA1"
	Version = 1

	magicBytes   = len(Magic)
	versionBytes = 1
	widthBytes   = 1
	compBytes    = 1
	crcBytes     = 4

	fixedBytes = magicBytes + versionBytes + widthBytes + compBytes + crcBytes
)

var (
	ErrBadMagic       = errors.New("snapshot: bad magic")
	ErrBadVersion     = errors.New("snapshot: unsupported version")
	ErrBadCompression = errors.New("snapshot: unknown compression")
	ErrChecksum       = errors.New("snapshot: checksum mismatch")
	ErrLengthMismatch = errors.New("snapshot: length mismatch")
)

// Write encodes a as a frame on w, compressing the payload with c. Payloads
// that do not shrink under LZ4 are stored uncompressed.
func Write(w io.Writer, a *packarray.Array, c Compression) error {
	var raw bytes.Buffer
	raw.Grow(a.Len() * a.Width().Bytes())
	if _, err := a.WriteTo(&raw); err != nil {
		return fmt.Errorf("snapshot: read array: %w", err)
	}
	payload, used, err := compress(c, raw.Bytes())
	if err != nil {
		return err
	}

	buf := make([]byte, 0, fixedBytes+2*binary.MaxVarintLen64+len(payload))
	buf = append(buf, Magic...)
	buf = append(buf, Version, byte(a.Width()), byte(used))
	buf = common.WriteVarUint(buf, uint64(a.Len()))
	buf = common.WriteVarUint(buf, uint64(len(payload)))
	buf = append(buf, payload...)
	buf = binary.LittleEndian.AppendUint32(buf, crc32.ChecksumIEEE(buf[magicBytes:]))

	_, err = w.Write(buf)
	return err
}

// Header is the decoded fixed part of a frame.
type Header struct {
	Version     uint8
	Width       packarray.Width
	Compression Compression
	Count       uint64
}

// Read decodes a frame from r into a new array built with opts. The caller
// owns the returned array.
func Read(r io.Reader, opts ...packarray.Option) (*packarray.Array, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	h, payload, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if h.Count > math.MaxInt/uint64(h.Width) {
		return nil, fmt.Errorf("%w: %d elements overflow", ErrLengthMismatch, h.Count)
	}
	size := h.Count * uint64(h.Width)

	a, err := packarray.New(h.Width, nil, opts...)
	if err != nil {
		return nil, err
	}
	if err := load(a, h.Compression, payload, size); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	return a, nil
}

func load(a *packarray.Array, c Compression, payload []byte, size uint64) error {
	raw, err := decompress(c, payload, int(size))
	if err != nil {
		return err
	}
	if uint64(len(raw)) != size {
		return fmt.Errorf("%w: payload is %d bytes, want %d", ErrLengthMismatch, len(raw), size)
	}
	_, err = a.ReadFrom(bytes.NewReader(raw))
	return err
}

// Decode validates a whole frame and returns its header and the still
// compressed payload, which aliases data.
func Decode(data []byte) (Header, []byte, error) {
	var h Header
	if len(data) < fixedBytes+2 {
		return h, nil, fmt.Errorf("%w: frame is %d bytes", ErrLengthMismatch, len(data))
	}
	if string(data[:4]) != Magic {
		return h, nil, ErrBadMagic
	}
	body := data[magicBytes : len(data)-crcBytes]
	want := binary.LittleEndian.Uint32(data[len(data)-crcBytes:])
	if crc32.ChecksumIEEE(body) != want {
		return h, nil, ErrChecksum
	}

	h.Version = body[0]
	if h.Version != Version {
		return h, nil, fmt.Errorf("%w: %d", ErrBadVersion, h.Version)
	}
	h.Width = packarray.Width(body[1])
	if h.Width < 1 {
		return h, nil, fmt.Errorf("%w: zero element width", ErrLengthMismatch)
	}
	h.Compression = Compression(body[2])
	if h.Compression > Zstd {
		return h, nil, fmt.Errorf("%w: %d", ErrBadCompression, body[2])
	}

	cursor := 3
	count, n := common.ReadVarUint(body[cursor:])
	if n == 0 {
		return h, nil, fmt.Errorf("%w: element count", ErrLengthMismatch)
	}
	cursor += n
	h.Count = count

	plen, n := common.ReadVarUint(body[cursor:])
	if n == 0 {
		return h, nil, fmt.Errorf("%w: payload length", ErrLengthMismatch)
	}
	cursor += n
	if uint64(len(body)-cursor) != plen {
		return h, nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrLengthMismatch, len(body)-cursor, plen)
	}
	return h, body[cursor:], nil
}
