package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgpack"
	"github.com/arloliu/cfgpack/endian"
	"github.com/arloliu/cfgpack/envelope"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/section"
)

type envelopeReport struct {
	Compression       string `yaml:"compression"`
	SchemaFingerprint string `yaml:"schema_fingerprint"`
	TableFingerprint  string `yaml:"table_fingerprint"`
	PayloadBytes      uint32 `yaml:"payload_bytes"`
	RawBytes          uint32 `yaml:"raw_bytes"`
	IndexBytes        uint32 `yaml:"index_bytes,omitempty"`
}

type recordReport struct {
	Schema      string         `yaml:"schema,omitempty"`
	Values      int            `yaml:"values,omitempty"`
	Kinds       map[string]int `yaml:"kinds,omitempty"`
	StringModes map[string]int `yaml:"string_modes,omitempty"`
	MaxDepth    int            `yaml:"max_depth,omitempty"`
	PaddingBits int            `yaml:"padding_bits,omitempty"`
}

type inspectReport struct {
	Envelope    *envelopeReport `yaml:"envelope,omitempty"`
	HeaderWidth string          `yaml:"header_width"`
	ByteOrder   string          `yaml:"byte_order"`
	HeaderBytes int             `yaml:"header_bytes"`
	Pools       map[string]int  `yaml:"pools"`
	TotalBytes  int             `yaml:"total_bytes"`
	Record      *recordReport   `yaml:"record,omitempty"`
}

func inspectCmd(args []string, env *environment) error {
	var cf codecFlags

	fs, verbose := newFlagSet("inspect", "inspect [flags] <buffer|->", env)
	cf.AddFlags(fs)
	if err := parseFlags(fs, verbose, args, env); err != nil {
		return err
	}

	data, err := readInput(fs, env)
	if err != nil {
		return err
	}

	report := &inspectReport{}

	// Envelopes describe their own layout; bare buffers rely on the flags.
	if header, err := envelope.Peek(data); err == nil {
		report.Envelope = &envelopeReport{
			Compression:       header.Flag.CompressionType().String(),
			SchemaFingerprint: fmt.Sprintf("%016x", header.SchemaFingerprint),
			TableFingerprint:  fmt.Sprintf("%016x", header.TableFingerprint),
			PayloadBytes:      header.PayloadLength,
			RawBytes:          header.RawLength,
			IndexBytes:        header.IndexLength,
		}
		cf.wide = header.Flag.IsWideHeader()
		cf.bigEndian = header.Flag.IsBigEndian()

		if _, data, err = envelope.Payload(data); err != nil {
			return fmt.Errorf("decompress payload: %w", err)
		}
	} else {
		env.logger.Debug("input is not an envelope", "reason", err)
	}

	width := format.HeaderCompact
	if cf.wide {
		width = format.HeaderWide
	}
	report.HeaderWidth = width.String()
	report.ByteOrder = endian.Name(endian.ForOrder(cf.bigEndian))
	layout := []cfgpack.Option{}
	if cf.wide {
		layout = append(layout, cfgpack.WithWideHeader())
	}
	if cf.bigEndian {
		layout = append(layout, cfgpack.WithBigEndian())
	}

	poolHeader, err := cfgpack.ParseHeader(data, layout...)
	if err != nil {
		return err
	}
	report.HeaderBytes = section.PoolHeaderSize(width)
	report.TotalBytes = report.HeaderBytes + int(poolHeader.Total()) //nolint:gosec
	report.Pools = make(map[string]int, format.NumPools)
	for p := range format.NumPools {
		report.Pools[format.Pool(p).String()] = int(poolHeader.Lengths[p])
	}

	if cf.schemaPath != "" {
		if report.Record, err = inspectRecord(&cf, data); err != nil {
			return err
		}
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	_, err = env.stdout.Write(out)

	return err
}

// inspectRecord decodes data and re-encodes it to report where the bits go.
func inspectRecord(cf *codecFlags, data []byte) (*recordReport, error) {
	codec, err := cf.codec()
	if err != nil {
		return nil, err
	}

	rec, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}

	_, stats, err := codec.EncodeWithStats(rec)
	if err != nil {
		return nil, err
	}

	report := &recordReport{
		Schema:      codec.Schema().String(),
		Values:      stats.Values,
		Kinds:       make(map[string]int, format.NumKinds),
		StringModes: make(map[string]int, 2),
		MaxDepth:    stats.MaxDepth,
		PaddingBits: stats.PaddingBits(),
	}
	for k, n := range stats.Kinds {
		report.Kinds[format.Kind(k).String()] = n
	}
	for m, n := range stats.StringModes {
		report.StringModes[format.StringMode(m).String()] = n
	}

	return report, nil
}
