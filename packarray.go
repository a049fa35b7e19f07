package packarray

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rawbytedev/packarray/internal/common"
	"github.com/rawbytedev/packarray/pkg/store"
)

// Array is a sequence of signed integers packed at a fixed width.
type Array struct {
	width     Width
	length    int
	store     store.Store
	batchSize int
	logger    *slog.Logger
	scratch   [common.MaxWidth]byte
	closed    bool
}

// New creates an array of the given width holding values, in order.
//
// The backing store is an in-memory buffer unless an Option selects another;
// whichever store is used starts out empty. If New fails the store has
// already been closed.
func New(width Width, values []int, opts ...Option) (*Array, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := width.check(); err != nil {
		if o.supplied != nil {
			err = errors.Join(err, o.supplied.Close())
		}
		return nil, err
	}

	s := o.supplied
	if s == nil {
		var err error
		if s, err = o.open(); err != nil {
			return nil, fmt.Errorf("packarray: open store: %w", err)
		}
	}
	if err := s.Truncate(0); err != nil {
		return nil, errors.Join(fmt.Errorf("packarray: reset store: %w", err), s.Close())
	}

	a := &Array{
		width:     width,
		store:     s,
		batchSize: o.batchSize,
		logger:    o.logger,
	}
	for _, v := range values {
		if err := a.Push(v); err != nil {
			return nil, errors.Join(err, a.Close())
		}
	}
	a.logger.Debug("packarray opened", "width", width.String(), "length", a.length)
	return a, nil
}

// NewShort creates an array of 16-bit elements.
func NewShort(values []int, opts ...Option) (*Array, error) {
	return New(Width16, values, opts...)
}

// NewLong creates an array of 32-bit elements.
func NewLong(values []int, opts ...Option) (*Array, error) {
	return New(Width32, values, opts...)
}

// NewLongLong creates an array of 64-bit elements.
func NewLongLong(values []int, opts ...Option) (*Array, error) {
	return New(Width64, values, opts...)
}

func (a *Array) Width() Width { return a.width }

// Len returns the number of elements.
func (a *Array) Len() int { return a.length }

// Push appends v.
func (a *Array) Push(v int) error {
	if err := a.checkValue(v); err != nil {
		return err
	}
	if err := a.writeAt(a.length, v); err != nil {
		// Drop whatever part of the element reached the store.
		return errors.Join(err, a.truncate(a.length))
	}
	a.length++
	return nil
}

// Pop removes and returns the last element.
func (a *Array) Pop() (int, error) {
	v, err := a.Last()
	if err != nil {
		return 0, err
	}
	if err := a.truncate(a.length - 1); err != nil {
		return 0, err
	}
	a.length--
	return v, nil
}

// Unshift inserts v at index 0, moving every element up one slot.
func (a *Array) Unshift(v int) error {
	if err := a.checkValue(v); err != nil {
		return err
	}
	if err := a.Push(0); err != nil {
		return err
	}
	for i := a.length - 1; i > 0; i-- {
		prev, err := a.Get(i - 1)
		if err != nil {
			return err
		}
		if err := a.Set(i, prev); err != nil {
			return err
		}
	}
	return a.Set(0, v)
}

// Shift removes and returns the first element, moving the rest down one slot.
func (a *Array) Shift() (int, error) {
	v, err := a.First()
	if err != nil {
		return 0, err
	}
	for i := 0; i < a.length-1; i++ {
		next, err := a.Get(i + 1)
		if err != nil {
			return 0, err
		}
		if err := a.Set(i, next); err != nil {
			return 0, err
		}
	}
	if _, err := a.Pop(); err != nil {
		return 0, err
	}
	return v, nil
}

// Get returns the element at i.
func (a *Array) Get(i int) (int, error) {
	if err := a.checkIndex(i); err != nil {
		return 0, err
	}
	return a.readAt(i)
}

// Set overwrites the element at i with v.
func (a *Array) Set(i, v int) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	if err := a.checkValue(v); err != nil {
		return err
	}
	return a.writeAt(i, v)
}

func (a *Array) First() (int, error) { return a.Get(0) }

func (a *Array) Last() (int, error) { return a.Get(a.length - 1) }

// Remove deletes the element at i, moving the elements after it down one slot.
func (a *Array) Remove(i int) error {
	if err := a.checkIndex(i); err != nil {
		return err
	}
	for j := i; j < a.length-1; j++ {
		next, err := a.Get(j + 1)
		if err != nil {
			return err
		}
		if err := a.Set(j, next); err != nil {
			return err
		}
	}
	_, err := a.Pop()
	return err
}

// ToSlice decodes every element into a new slice, reading the store in
// batches.
func (a *Array) ToSlice() ([]int, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if _, err := a.store.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("packarray: seek: %w", err)
	}

	w := a.width.Bytes()
	out := make([]int, 0, a.length)
	r := io.LimitReader(a.store, int64(a.length)*int64(w))
	buf := make([]byte, min(a.batchSize, max(a.length, 1))*w)
	for {
		n, err := io.ReadFull(r, buf)
		whole := n - n%w
		for off := 0; off < whole; off += w {
			out = append(out, int(common.Int(buf[off:], w)))
		}
		if n%w != 0 {
			return nil, fmt.Errorf("%w: partial element %d", ErrEndOfData, len(out))
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("packarray: read: %w", err)
		}
	}
	if len(out) != a.length {
		return nil, fmt.Errorf("%w: store holds %d of %d elements", ErrEndOfData, len(out), a.length)
	}
	return out, nil
}

// WriteTo writes the packed elements to w, width bytes per element with no
// framing.
func (a *Array) WriteTo(w io.Writer) (int64, error) {
	if a.closed {
		return 0, ErrClosed
	}
	if _, err := a.store.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("packarray: seek: %w", err)
	}
	size := int64(a.length) * int64(a.width)
	n, err := io.CopyN(w, a.store, size)
	if errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: store holds %d of %d bytes", ErrEndOfData, n, size)
	}
	return n, err
}

// ReadFrom appends packed elements read from r until EOF. If r ends inside an
// element the partial element is discarded and ErrEndOfData is returned;
// the whole elements before it are kept.
func (a *Array) ReadFrom(r io.Reader) (int64, error) {
	if a.closed {
		return 0, ErrClosed
	}
	w := int64(a.width)
	if _, err := a.store.Seek(int64(a.length)*w, io.SeekStart); err != nil {
		return 0, fmt.Errorf("packarray: seek: %w", err)
	}
	n, err := io.Copy(a.store, r)
	a.length += int(n / w)
	if n%w != 0 {
		return n, errors.Join(
			fmt.Errorf("%w: %d trailing bytes", ErrEndOfData, n%w),
			err,
			a.truncate(a.length))
	}
	if err != nil {
		return n, errors.Join(err, a.truncate(a.length))
	}
	return n, nil
}

// Close releases the backing store. Further calls return nil and every
// other method fails with ErrClosed.
func (a *Array) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.logger.Debug("packarray closed", "width", a.width.String(), "length", a.length)
	return a.store.Close()
}

func (a *Array) checkIndex(i int) error {
	if a.closed {
		return ErrClosed
	}
	if i < 0 || i >= a.length {
		return indexError(i, a.length)
	}
	return nil
}

func (a *Array) checkValue(v int) error {
	if a.closed {
		return ErrClosed
	}
	if !common.Fits(int64(v), a.width.Bytes()) {
		return fmt.Errorf("%w: %d does not fit in %s", ErrValueRange, v, a.width)
	}
	return nil
}

func (a *Array) readAt(i int) (int, error) {
	w := a.width.Bytes()
	if _, err := a.store.Seek(int64(i)*int64(w), io.SeekStart); err != nil {
		return 0, fmt.Errorf("packarray: seek element %d: %w", i, err)
	}
	b := a.scratch[:w]
	if _, err := io.ReadFull(a.store, b); err != nil {
		return 0, readError(err, i)
	}
	return int(common.Int(b, w)), nil
}

func (a *Array) writeAt(i, v int) error {
	w := a.width.Bytes()
	if _, err := a.store.Seek(int64(i)*int64(w), io.SeekStart); err != nil {
		return fmt.Errorf("packarray: seek element %d: %w", i, err)
	}
	b := a.scratch[:w]
	common.PutInt(b, int64(v), w)
	n, err := a.store.Write(b)
	if err == nil && n != w {
		err = io.ErrShortWrite
	}
	if err != nil {
		return fmt.Errorf("packarray: write element %d: %w", i, err)
	}
	return nil
}

func (a *Array) truncate(length int) error {
	if err := a.store.Truncate(int64(length) * int64(a.width)); err != nil {
		return fmt.Errorf("packarray: truncate: %w", err)
	}
	return nil
}
