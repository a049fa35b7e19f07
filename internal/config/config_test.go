package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/rawbytedev/packarray"
	"github.com/rawbytedev/packarray/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
width: 16
store:
  kind: temp
  path: /tmp
batch_size: 50
snapshot:
  compression: zstd
log_level: debug
`))
	require.NoError(t, err)

	w, err := c.ElementWidth()
	require.NoError(t, err)
	assert.Equal(t, packarray.Width16, w)
	assert.Equal(t, StoreTemp, c.Store.Kind)
	assert.Equal(t, 50, c.BatchSize)

	comp, err := c.Compression()
	require.NoError(t, err)
	assert.Equal(t, snapshot.Zstd, comp)

	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
	assert.Len(t, c.Options(), 2)
}

func TestParseKeepsDefaults(t *testing.T) {
	c, err := Parse([]byte("width: 32\n"))
	require.NoError(t, err)
	assert.Equal(t, 32, c.Width)
	assert.Equal(t, StoreMemory, c.Store.Kind)
	assert.Equal(t, 1000, c.BatchSize)
	assert.Len(t, c.Options(), 1)
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"width":       "width: 12",
		"store kind":  "store: {kind: tape}",
		"file path":   "store: {kind: file}",
		"batch size":  "batch_size: 0",
		"compression": "snapshot: {compression: gzip}",
		"log level":   "log_level: loud",
		"yaml":        "width: [",
	} {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packarray.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  kind: file\n  path: data.bin\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data.bin", c.Store.Path)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
