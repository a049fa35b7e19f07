package packarray

import (
	"io"
	"log/slog"

	"github.com/rawbytedev/packarray/pkg/store"
)

const defaultBatchSize = 1000

// Option configures New.
type Option func(*options)

type options struct {
	supplied  store.Store
	open      func() (store.Store, error)
	batchSize int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		open:      func() (store.Store, error) { return store.NewMemory(), nil },
		batchSize: defaultBatchSize,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithStore uses s as the backing store. The array owns s from the moment
// New is called: s is closed if New fails, and by Array.Close otherwise.
func WithStore(s store.Store) Option {
	return func(o *options) {
		if s != nil {
			o.supplied = s
			o.open = nil
		}
	}
}

// WithFile keeps the elements in the file at path. Existing contents are
// discarded.
func WithFile(path string) Option {
	return func(o *options) {
		o.supplied = nil
		o.open = func() (store.Store, error) { return store.OpenFile(path) }
	}
}

// WithTempFile keeps the elements in a temporary file in dir that is removed
// when the array is closed.
func WithTempFile(dir string) Option {
	return func(o *options) {
		o.supplied = nil
		o.open = func() (store.Store, error) { return store.TempFile(dir) }
	}
}

// WithBatchSize sets how many elements ToSlice reads per store read.
// Values below 1 keep the default.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
