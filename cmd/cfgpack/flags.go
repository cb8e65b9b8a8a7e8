package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/arloliu/cfgpack"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/schema"
	"github.com/arloliu/cfgpack/table"
)

// errHelp reports that --help was handled and the command should stop.
var errHelp = errors.New("help requested")

func newFlagSet(name, usage string, env *environment) (*pflag.FlagSet, *bool) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(env.stdout)
	fs.Usage = func() {
		fmt.Fprintf(env.stdout, "Usage: cfgpack %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")

	return fs, verbose
}

// parseFlags parses args and applies the verbose flag. A --help request returns errHelp.
func parseFlags(fs *pflag.FlagSet, verbose *bool, args []string, env *environment) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return errHelp
		}

		return err
	}

	if *verbose {
		env.level.Set(slog.LevelDebug)
	}

	return nil
}

// codecFlags are the flags that select schema, table and buffer layout.
type codecFlags struct {
	schemaPath string
	tablePath  string
	wide       bool
	bigEndian  bool
	maxLength  int
	maxDepth   int
}

func (f *codecFlags) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.schemaPath, "schema", "", "path to the YAML schema (required)")
	fs.StringVar(&f.tablePath, "table", "", "path to a trained string table (default: built-in common table)")
	fs.BoolVar(&f.wide, "wide", false, "use uint32 pool lengths in the header")
	fs.BoolVar(&f.bigEndian, "big-endian", false, "write the header big-endian")
	fs.IntVar(&f.maxLength, "max-length", cfgpack.DefaultMaxLength, "largest string or array length accepted when decoding")
	fs.IntVar(&f.maxDepth, "max-depth", cfgpack.DefaultMaxDepth, "deepest array nesting accepted")
}

func (f *codecFlags) loadSchema() (*schema.Schema, error) {
	if f.schemaPath == "" {
		return nil, errors.New("--schema is required")
	}

	data, err := os.ReadFile(f.schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}

	return schema.ParseYAML(data)
}

func (f *codecFlags) loadTable() (*table.Table, error) {
	if f.tablePath == "" {
		return table.Common(), nil
	}

	data, err := os.ReadFile(f.tablePath)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	return table.Parse(data)
}

func (f *codecFlags) options() ([]cfgpack.Option, error) {
	tbl, err := f.loadTable()
	if err != nil {
		return nil, err
	}

	opts := []cfgpack.Option{
		cfgpack.WithTable(tbl),
		cfgpack.WithMaxLength(f.maxLength),
		cfgpack.WithMaxDepth(f.maxDepth),
	}
	if f.wide {
		opts = append(opts, cfgpack.WithWideHeader())
	}
	if f.bigEndian {
		opts = append(opts, cfgpack.WithBigEndian())
	}

	return opts, nil
}

func (f *codecFlags) codec() (*cfgpack.Codec, error) {
	s, err := f.loadSchema()
	if err != nil {
		return nil, err
	}

	opts, err := f.options()
	if err != nil {
		return nil, err
	}

	return cfgpack.NewCodec(s, opts...)
}

func parseCompression(name string) (format.CompressionType, error) {
	ct, ok := format.ParseCompression(name)
	if !ok {
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2 or lz4)", name)
	}

	return ct, nil
}

// readInput reads the single positional argument, "-" meaning stdin.
func readInput(fs *pflag.FlagSet, env *environment) ([]byte, error) {
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	path := fs.Arg(0)
	if path == "-" {
		return io.ReadAll(env.stdin)
	}

	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
func writeOutput(path string, data []byte, env *environment) error {
	if path == "" || path == "-" {
		_, err := env.stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}
