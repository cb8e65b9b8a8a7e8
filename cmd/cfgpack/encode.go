package main

import (
	"errors"
	"fmt"

	"github.com/arloliu/cfgpack/envelope"
	"github.com/arloliu/cfgpack/format"
)

func encodeCmd(args []string, env *environment) error {
	var cf codecFlags

	fs, verbose := newFlagSet("encode", "encode [flags] <record.yaml|->", env)
	cf.AddFlags(fs)
	output := fs.StringP("output", "o", "", "write the buffer to this file (default: stdout)")
	wrap := fs.Bool("envelope", false, "wrap the record in an envelope pinning schema and table")
	compression := fs.String("compression", "none", "envelope payload compression: none, zstd, s2 or lz4")
	index := fs.Bool("index", false, "attach a slot index to the envelope")
	if err := parseFlags(fs, verbose, args, env); err != nil {
		return err
	}

	ct, err := parseCompression(*compression)
	if err != nil {
		return err
	}
	if !*wrap && (fs.Changed("compression") || *index) {
		return errors.New("--compression and --index need --envelope")
	}

	codec, err := cf.codec()
	if err != nil {
		return err
	}

	input, err := readInput(fs, env)
	if err != nil {
		return err
	}

	rec, err := parseRecord(codec.Schema(), input)
	if err != nil {
		return err
	}

	data, stats, err := codec.EncodeWithStats(rec)
	if err != nil {
		return err
	}
	env.logger.Debug("record encoded",
		"schema", codec.Schema().String(),
		"bytes", stats.TotalBytes,
		"int_bits", stats.PoolBits[format.PoolInt],
		"bool_bits", stats.PoolBits[format.PoolBool],
		"string_bits", stats.PoolBits[format.PoolString],
		"tag_bits", stats.PoolBits[format.PoolTag],
		"padding_bits", stats.PaddingBits(),
		"values", stats.Values,
	)

	if *wrap {
		opts := []envelope.Option{envelope.WithCompression(ct)}
		if *index {
			opts = append(opts, envelope.WithSlotIndex())
		}
		if data, err = envelope.Seal(codec, rec, opts...); err != nil {
			return fmt.Errorf("seal envelope: %w", err)
		}
		env.logger.Debug("envelope sealed", "compression", ct.String(), "bytes", len(data))
	}

	return writeOutput(*output, data, env)
}
