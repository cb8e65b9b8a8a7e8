package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/arloliu/cfgpack/table"
)

func trainCmd(args []string, env *environment) error {
	fs, verbose := newFlagSet("train", "train [flags] <corpus files...>", env)
	output := fs.StringP("output", "o", "", "write the table to this file (default: stdout)")
	if err := parseFlags(fs, verbose, args, env); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		return errors.New("train needs at least one corpus file")
	}

	samples := make([][]byte, 0, fs.NArg())
	total := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read corpus: %w", err)
		}
		samples = append(samples, data)
		total += len(data)
		env.logger.Debug("corpus file loaded", "path", path, "bytes", len(data))
	}

	tbl := table.Train(samples...)

	bits := 0
	for _, s := range samples {
		bits += tbl.EncodedBits(s)
	}
	attrs := []any{
		"files", len(samples),
		"bytes", total,
		"fingerprint", fmt.Sprintf("%016x", tbl.Fingerprint()),
		"max_code_len", tbl.MaxLen(),
	}
	if total > 0 {
		attrs = append(attrs, "bits_per_byte", fmt.Sprintf("%.3f", float64(bits)/float64(total)))
	}
	env.logger.Info("table trained", attrs...)

	data, err := tbl.MarshalBinary()
	if err != nil {
		return err
	}

	return writeOutput(*output, data, env)
}
