package snapshot

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how a frame's payload is compressed. The values are
// stored in the frame header.
type Compression uint8

const (
	None Compression = 0
	LZ4  Compression = 1
	Zstd Compression = 2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression maps "none", "lz4" or "zstd" to a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadCompression, s)
}

// lz4MaxRatio is the largest expansion an LZ4 block can encode.
const lz4MaxRatio = 255

var errIncompressible = errors.New("snapshot: payload incompressible")

// Encoders are safe for concurrent use and costly to build.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("snapshot: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("snapshot: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the payload for raw under c, and the compression actually
// used: incompressible data is stored raw.
func compress(c Compression, raw []byte) ([]byte, Compression, error) {
	switch c {
	case None:
		return raw, None, nil
	case LZ4:
		out, err := compressLZ4(raw)
		if errors.Is(err, errIncompressible) {
			return raw, None, nil
		}
		return out, LZ4, err
	case Zstd:
		return zstdEncoder.EncodeAll(raw, make([]byte, 0, len(raw)/2)), Zstd, nil
	}
	return nil, c, fmt.Errorf("%w: %d", ErrBadCompression, uint8(c))
}

func decompress(c Compression, payload []byte, size int) ([]byte, error) {
	switch c {
	case None:
		return payload, nil
	case LZ4:
		if size > len(payload)*lz4MaxRatio+16 {
			return nil, fmt.Errorf("%w: %d bytes cannot expand to %d", ErrLengthMismatch, len(payload), size)
		}
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, dst)
		if err != nil {
			return nil, fmt.Errorf("snapshot: lz4 decompress: %w", err)
		}
		return dst[:n], nil
	case Zstd:
		// The declared size is untrusted until it matches the decoded output.
		out, err := zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("snapshot: zstd decompress: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBadCompression, uint8(c))
}

func compressLZ4(raw []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, dst, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: lz4 compress: %w", err)
	}
	if n == 0 || n >= len(raw) {
		return nil, errIncompressible
	}
	return dst[:n], nil
}
