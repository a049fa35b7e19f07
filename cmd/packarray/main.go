// Command packarray builds a packed integer array, applies sequence
// operations to it and prints the result.
//
//	packarray [flags] [op ...]
//
// Operations are applied in order:
//
//	N, push:N       append N
//	unshift:N       insert N at the front
//	pop, shift      remove the last/first element and print it
//	set:I:N         overwrite element I with N
//	remove:I        delete element I
//	-               read whitespace separated operations from stdin
//
// Negative bare integers look like flags; write them as push:-N or place
// them after "--".
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/rawbytedev/packarray"
	"github.com/rawbytedev/packarray/internal/config"
	"github.com/rawbytedev/packarray/pkg/snapshot"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "packarray: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet("packarray", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "YAML configuration file")
	width := flags.Int("width", 0, "element width in bits: 16, 32 or 64")
	storeKind := flags.String("store", "", "backing store: memory, file or temp")
	storePath := flags.String("path", "", "store file (file) or directory (temp)")
	loadPath := flags.String("load", "", "snapshot to start from")
	savePath := flags.String("save", "", "write a snapshot here when done")
	compression := flags.String("compression", "", "snapshot compression: none, lz4 or zstd")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if flags.Changed("width") {
		cfg.Width = *width
	}
	if flags.Changed("store") {
		cfg.Store.Kind = *storeKind
	}
	if flags.Changed("path") {
		cfg.Store.Path = *storePath
	}
	if flags.Changed("compression") {
		cfg.Snapshot.Compression = *compression
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	opts := append(cfg.Options(), packarray.WithLogger(logger))

	a, err := open(cfg, *loadPath, opts, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, op := range flags.Args() {
		if op == "-" {
			err = applyAll(a, stdin, stdout)
		} else {
			err = apply(a, op, stdout)
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(stdout, a.String())
	fmt.Fprintf(stdout, "len=%d bytes=%d\n", a.Len(), a.Len()*a.Width().Bytes())

	if *savePath != "" {
		comp, _ := cfg.Compression()
		if err := save(a, *savePath, comp); err != nil {
			return err
		}
		logger.Info("snapshot saved", "path", *savePath, "compression", comp.String(), "length", a.Len())
	}
	return a.Close()
}

func open(cfg config.Config, loadPath string, opts []packarray.Option, logger *slog.Logger) (*packarray.Array, error) {
	width, _ := cfg.ElementWidth()
	if loadPath == "" {
		return packarray.New(width, nil, opts...)
	}

	f, err := os.Open(loadPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	a, err := snapshot.Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", loadPath, err)
	}
	if a.Width() != width {
		logger.Warn("snapshot width differs from configured width", "snapshot", a.Width().String(), "configured", width.String())
	}
	logger.Debug("snapshot loaded", "path", loadPath, "length", a.Len())
	return a, nil
}

func save(a *packarray.Array, path string, c snapshot.Compression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Write(f, a, c); err != nil {
		return errors.Join(err, f.Close())
	}
	return f.Close()
}

func applyAll(a *packarray.Array, r io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		if err := apply(a, sc.Text(), out); err != nil {
			return err
		}
	}
	return sc.Err()
}

func apply(a *packarray.Array, op string, out io.Writer) error {
	name, arg, _ := strings.Cut(op, ":")
	var err error
	switch name {
	case "push":
		var v int
		if v, err = strconv.Atoi(arg); err == nil {
			err = a.Push(v)
		}
	case "unshift":
		var v int
		if v, err = strconv.Atoi(arg); err == nil {
			err = a.Unshift(v)
		}
	case "pop", "shift":
		var v int
		if name == "pop" {
			v, err = a.Pop()
		} else {
			v, err = a.Shift()
		}
		if err == nil {
			fmt.Fprintln(out, v)
		}
	case "set":
		is, vs, _ := strings.Cut(arg, ":")
		var i, v int
		if i, err = strconv.Atoi(is); err == nil {
			if v, err = strconv.Atoi(vs); err == nil {
				err = a.Set(i, v)
			}
		}
	case "remove":
		var i int
		if i, err = strconv.Atoi(arg); err == nil {
			err = a.Remove(i)
		}
	default:
		v, perr := strconv.Atoi(op)
		if perr != nil {
			return fmt.Errorf("unknown operation %q", op)
		}
		err = a.Push(v)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
