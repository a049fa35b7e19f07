// Package store provides the byte stores a packed array keeps its elements in.
//
// A Store is a sequential byte region with a single position: reads and
// writes happen at the position and advance it, Seek moves it, and Truncate
// changes the size without moving it. Memory is the default; File keeps the
// bytes in a regular or temporary file.
package store

import (
	"errors"
	"io"
)

var (
	ErrClosed       = errors.New("store: closed")
	ErrNegativeSeek = errors.New("store: negative position")
	ErrBadWhence    = errors.New("store: invalid whence")
	ErrNegativeSize = errors.New("store: negative size")
)

// Store is the capability a packed array needs from its backing bytes.
type Store interface {
	io.ReadWriteSeeker
	io.Closer

	// Truncate sets the size to size bytes, zero-filling when it grows.
	Truncate(size int64) error

	// Size returns the current size in bytes.
	Size() (int64, error)
}
