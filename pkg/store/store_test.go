package store

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemory() },
		"file": func(t *testing.T) Store {
			s, err := OpenFile(filepath.Join(t.TempDir(), "store.bin"))
			require.NoError(t, err)
			return s
		},
		"temp": func(t *testing.T) Store {
			s, err := TempFile(t.TempDir())
			require.NoError(t, err)
			return s
		},
	}
}

func TestStoreReadWriteSeek(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			n, err := s.Write([]byte{1, 2, 3, 4})
			require.NoError(t, err)
			require.Equal(t, 4, n)

			size, err := s.Size()
			require.NoError(t, err)
			assert.Equal(t, int64(4), size)

			_, err = s.Seek(1, io.SeekStart)
			require.NoError(t, err)
			buf := make([]byte, 2)
			_, err = io.ReadFull(s, buf)
			require.NoError(t, err)
			assert.Equal(t, []byte{2, 3}, buf)

			_, err = s.Seek(-1, io.SeekEnd)
			require.NoError(t, err)
			_, err = s.Write([]byte{9, 10})
			require.NoError(t, err)

			_, err = s.Seek(0, io.SeekStart)
			require.NoError(t, err)
			all, err := io.ReadAll(s)
			require.NoError(t, err)
			assert.Equal(t, []byte{1, 2, 3, 9, 10}, all)
		})
	}
}

func TestStoreReadAtEnd(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, err := s.Write([]byte{1, 2})
			require.NoError(t, err)
			_, err = s.Seek(1, io.SeekStart)
			require.NoError(t, err)

			buf := make([]byte, 2)
			_, err = io.ReadFull(s, buf)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

			_, err = s.Seek(2, io.SeekStart)
			require.NoError(t, err)
			_, err = io.ReadFull(s, buf)
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestStoreTruncate(t *testing.T) {
	for name, open := range stores() {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			_, err := s.Write([]byte{1, 2, 3, 4, 5, 6})
			require.NoError(t, err)
			require.NoError(t, s.Truncate(2))

			size, err := s.Size()
			require.NoError(t, err)
			assert.Equal(t, int64(2), size)

			// Growing again must not resurrect the truncated bytes.
			require.NoError(t, s.Truncate(4))
			_, err = s.Seek(0, io.SeekStart)
			require.NoError(t, err)
			all, err := io.ReadAll(s)
			require.NoError(t, err)
			assert.Equal(t, []byte{1, 2, 0, 0}, all)

			assert.ErrorIs(t, s.Truncate(-1), ErrNegativeSize)
		})
	}
}

func TestMemoryWritePastEndZeroFills(t *testing.T) {
	m := NewMemory()
	_, err := m.Write([]byte{7, 7, 7, 7})
	require.NoError(t, err)
	require.NoError(t, m.Truncate(1))

	_, err = m.Seek(3, io.SeekStart)
	require.NoError(t, err)
	_, err = m.Write([]byte{5})
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 0, 5}, m.Bytes())
}

func TestMemorySeekErrors(t *testing.T) {
	m := NewMemory()
	_, err := m.Seek(-1, io.SeekStart)
	assert.ErrorIs(t, err, ErrNegativeSeek)
	_, err = m.Seek(0, 42)
	assert.ErrorIs(t, err, ErrBadWhence)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	_, err := m.Write([]byte{1})
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = m.Size()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestTempFileRemovedOnClose(t *testing.T) {
	s, err := TempFile(t.TempDir())
	require.NoError(t, err)
	name := s.Name()
	_, err = os.Stat(name)
	require.NoError(t, err)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err))

	_, err = s.Write([]byte{1})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOpenFileKeepsContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keep.bin")
	s, err := OpenFile(path)
	require.NoError(t, err)
	_, err = s.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = OpenFile(path)
	require.NoError(t, err)
	defer s.Close()
	size, err := s.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(3), size)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
