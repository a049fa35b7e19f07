// Package config loads the YAML configuration of the packarray command.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rawbytedev/packarray"
	"github.com/rawbytedev/packarray/pkg/snapshot"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreTemp   = "temp"
)

type Config struct {
	// Width is the element width in bits.
	Width     int         `yaml:"width"`
	Store     StoreConfig `yaml:"store"`
	BatchSize int         `yaml:"batch_size"`
	Snapshot  struct {
		Compression string `yaml:"compression"`
	} `yaml:"snapshot"`
	LogLevel string `yaml:"log_level"`
}

type StoreConfig struct {
	Kind string `yaml:"kind"`
	// Path is the backing file for "file" and the directory for "temp".
	Path string `yaml:"path"`
}

func Default() Config {
	c := Config{
		Width:     64,
		Store:     StoreConfig{Kind: StoreMemory},
		BatchSize: 1000,
		LogLevel:  "info",
	}
	c.Snapshot.Compression = "none"
	return c
}

// Load reads and validates the file at path, filling unset fields from
// Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	c, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if _, err := c.ElementWidth(); err != nil {
		return err
	}
	switch c.Store.Kind {
	case StoreMemory, StoreTemp:
	case StoreFile:
		if c.Store.Path == "" {
			return fmt.Errorf("store kind %q needs a path", c.Store.Kind)
		}
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if _, err := c.Compression(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ElementWidth converts Width from bits to a packarray.Width.
func (c Config) ElementWidth() (packarray.Width, error) {
	switch c.Width {
	case 16:
		return packarray.Width16, nil
	case 32:
		return packarray.Width32, nil
	case 64:
		return packarray.Width64, nil
	}
	return 0, fmt.Errorf("width must be 16, 32 or 64, got %d", c.Width)
}

func (c Config) Compression() (snapshot.Compression, error) {
	return snapshot.ParseCompression(c.Snapshot.Compression)
}

func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Options returns the packarray options selecting the configured store.
func (c Config) Options() []packarray.Option {
	opts := []packarray.Option{packarray.WithBatchSize(c.BatchSize)}
	switch c.Store.Kind {
	case StoreFile:
		opts = append(opts, packarray.WithFile(c.Store.Path))
	case StoreTemp:
		opts = append(opts, packarray.WithTempFile(c.Store.Path))
	}
	return opts
}
