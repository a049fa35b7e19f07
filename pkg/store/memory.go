package store

import (
	"io"
)

// Memory is an anonymous, growable in-memory Store.
type Memory struct {
	buf    []byte
	pos    int64
	closed bool
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

// Write writes p at the current position, growing the buffer as needed.
// Writing after a Seek past the end zero-fills the gap.
func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, ErrClosed
	}
	end := m.pos + int64(len(p))
	m.grow(end)
	n := copy(m.buf[m.pos:end], p)
	m.pos = end
	return n, nil
}

func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return m.pos, ErrBadWhence
	}
	if abs < 0 {
		return m.pos, ErrNegativeSeek
	}
	m.pos = abs
	return abs, nil
}

func (m *Memory) Truncate(size int64) error {
	if m.closed {
		return ErrClosed
	}
	if size < 0 {
		return ErrNegativeSize
	}
	if size <= int64(len(m.buf)) {
		m.buf = m.buf[:size]
		return nil
	}
	m.grow(size)
	return nil
}

func (m *Memory) Size() (int64, error) {
	if m.closed {
		return 0, ErrClosed
	}
	return int64(len(m.buf)), nil
}

// Bytes returns the stored bytes. The slice aliases the buffer and is only
// valid until the next mutation.
func (m *Memory) Bytes() []byte {
	return m.buf
}

// Close drops the buffer. Closing twice is a no-op.
func (m *Memory) Close() error {
	m.closed = true
	m.buf = nil
	m.pos = 0
	return nil
}

// grow extends buf to n bytes. Bytes past the old length are always zero,
// including capacity left over from an earlier Truncate.
func (m *Memory) grow(n int64) {
	size := int64(len(m.buf))
	if n <= size {
		return
	}
	if n <= int64(cap(m.buf)) {
		m.buf = m.buf[:n]
		clear(m.buf[size:])
		return
	}
	m.buf = append(m.buf, make([]byte, n-size)...)
}
