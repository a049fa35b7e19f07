package packarray

import (
	"fmt"
	"math"
	"strconv"
)

// Width is the number of bytes used to store each element.
type Width int

const (
	Width16 Width = 2
	Width32 Width = 4
	Width64 Width = 8
)

// NativeWidth is the byte size of int on this platform and the widest
// element an Array accepts.
const NativeWidth = strconv.IntSize / 8

// Bytes returns w as a byte count.
func (w Width) Bytes() int { return int(w) }

func (w Width) String() string {
	return "int" + strconv.Itoa(8*int(w))
}

// Max returns the largest value an element of width w holds.
func (w Width) Max() int {
	if w >= NativeWidth {
		return math.MaxInt
	}
	return 1<<(8*uint(w)-1) - 1
}

// Min returns the smallest value an element of width w holds.
func (w Width) Min() int {
	if w >= NativeWidth {
		return math.MinInt
	}
	return -1 << (8*uint(w) - 1)
}

// Supported reports whether arrays of width w can be constructed here.
func (w Width) Supported() bool {
	return w >= 1 && w <= NativeWidth
}

func (w Width) check() error {
	if !w.Supported() {
		return fmt.Errorf("%w: %d-byte elements, host int is %d bytes", ErrCapability, int(w), NativeWidth)
	}
	return nil
}

// ParseWidth accepts a bit count ("16", "int32") and returns its Width.
func ParseWidth(s string) (Width, error) {
	if len(s) > 3 && s[:3] == "int" {
		s = s[3:]
	}
	bits, err := strconv.Atoi(s)
	if err != nil || bits <= 0 || bits%8 != 0 {
		return 0, fmt.Errorf("packarray: invalid width %q", s)
	}
	return Width(bits / 8), nil
}
