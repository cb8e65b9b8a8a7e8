package main

import (
	"errors"

	"github.com/arloliu/cfgpack/envelope"
	"github.com/arloliu/cfgpack/record"
)

func decodeCmd(args []string, env *environment) error {
	var cf codecFlags

	fs, verbose := newFlagSet("decode", "decode [flags] <buffer|->", env)
	cf.AddFlags(fs)
	output := fs.StringP("output", "o", "", "write the YAML record to this file (default: stdout)")
	wrapped := fs.Bool("envelope", false, "the input is an envelope")
	slot := fs.String("slot", "", "decode only this slot through the envelope's slot index")
	if err := parseFlags(fs, verbose, args, env); err != nil {
		return err
	}

	if *slot != "" && !*wrapped {
		return errors.New("--slot needs --envelope")
	}

	codec, err := cf.codec()
	if err != nil {
		return err
	}

	data, err := readInput(fs, env)
	if err != nil {
		return err
	}

	if *slot != "" {
		v, err := envelope.OpenSlot(codec, data, *slot)
		if err != nil {
			return err
		}

		out, err := formatValue(v)
		if err != nil {
			return err
		}

		return writeOutput(*output, out, env)
	}

	var rec record.Record
	if *wrapped {
		rec, err = envelope.Open(codec, data)
	} else {
		rec, err = codec.Decode(data)
	}
	if err != nil {
		return err
	}
	env.logger.Debug("record decoded", "schema", codec.Schema().String(), "bytes", len(data))

	out, err := formatRecord(codec.Schema(), rec)
	if err != nil {
		return err
	}

	return writeOutput(*output, out, env)
}
