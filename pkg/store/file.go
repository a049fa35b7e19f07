package store

import (
	"errors"
	"os"
)

// File is a Store backed by an *os.File.
type File struct {
	f      *os.File
	remove bool
	closed bool
}

// OpenFile opens path read-write, creating it if needed. Existing contents
// are kept; the caller decides whether to truncate.
func OpenFile(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

// TempFile creates an ephemeral file in dir (os.TempDir when empty) that is
// removed on Close.
func TempFile(dir string) (*File, error) {
	f, err := os.CreateTemp(dir, "packarray-*")
	if err != nil {
		return nil, err
	}
	return &File{f: f, remove: true}, nil
}

// Name returns the path of the underlying file.
func (s *File) Name() string {
	return s.f.Name()
}

func (s *File) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.f.Read(p)
}

func (s *File) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.f.Write(p)
}

func (s *File) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	return s.f.Seek(offset, whence)
}

func (s *File) Truncate(size int64) error {
	if s.closed {
		return ErrClosed
	}
	if size < 0 {
		return ErrNegativeSize
	}
	return s.f.Truncate(size)
}

func (s *File) Size() (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	fi, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}

// Close closes the file, removing it if it was created by TempFile.
// Closing twice is a no-op.
func (s *File) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.f.Close()
	if s.remove {
		err = errors.Join(err, os.Remove(s.f.Name()))
	}
	return err
}
