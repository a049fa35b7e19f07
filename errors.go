package packarray

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrCapability means the element width cannot be represented by the
	// host int. It is only returned by New.
	ErrCapability = errors.New("packarray: element width not supported on this platform")

	ErrIndexOutOfRange = errors.New("packarray: index out of range")

	// ErrEndOfData means a read ran past the end of the store's data, or
	// the data ends inside an element.
	ErrEndOfData = errors.New("packarray: end of data")

	ErrValueRange = errors.New("packarray: value out of range for element width")
	ErrClosed     = errors.New("packarray: array closed")
)

func indexError(i, length int) error {
	return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, i, length)
}

// readError maps a short read of element i onto ErrEndOfData.
func readError(err error, i int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: element %d", ErrEndOfData, i)
	}
	return fmt.Errorf("packarray: read element %d: %w", i, err)
}
