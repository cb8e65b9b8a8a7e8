package cfgpack

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/encoding"
	"github.com/arloliu/cfgpack/internal/options"
	"github.com/arloliu/cfgpack/internal/walk"
	"github.com/arloliu/cfgpack/record"
	"github.com/arloliu/cfgpack/schema"
	"github.com/arloliu/cfgpack/section"
	"github.com/arloliu/cfgpack/table"
)

// Codec encodes and decodes records of one schema.
//
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	schema *schema.Schema
	cfg    *Config
	walk   *walk.Config
}

// NewCodec creates a codec for s.
//
// Available options:
//   - WithTable(t)
//   - WithIntegerBuckets(widths...)
//   - WithWideHeader()
//   - WithLittleEndian() / WithBigEndian()
//   - WithMaxLength(n), WithMaxDepth(n)
//
// Returns an error wrapping errs.ErrInvalidOption if an option is invalid.
func NewCodec(s *schema.Schema, opts ...Option) (*Codec, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: schema is nil", errs.ErrInvalidSchema)
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	ints, err := encoding.NewIntCodec(cfg.buckets...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}

	return &Codec{
		schema: s,
		cfg:    cfg,
		walk: &walk.Config{
			Ints:      ints,
			Strings:   encoding.NewStringCodec(cfg.table, ints),
			MaxLength: cfg.maxLength,
			MaxDepth:  cfg.maxDepth,
		},
	}, nil
}

// Schema returns the codec's schema.
func (c *Codec) Schema() *schema.Schema { return c.schema }

// Table returns the codec's string table.
func (c *Codec) Table() *table.Table { return c.cfg.table }

// Config returns the codec's configuration.
func (c *Codec) Config() *Config { return c.cfg }

// Encode encodes rec.
//
// rec must hold one value per schema slot, each of the slot's kind; otherwise the returned
// error wraps errs.ErrSchemaMismatch. Encoding never fails on string content.
func (c *Codec) Encode(rec record.Record) ([]byte, error) {
	out, _, err := c.encode(rec, nil, nil)
	return out, err
}

// EncodeWithStats encodes rec and reports how the bits were spent.
func (c *Codec) EncodeWithStats(rec record.Record) ([]byte, Stats, error) {
	var ws walk.Stats
	out, bits, err := c.encode(rec, nil, &ws)
	if err != nil {
		return nil, Stats{}, err
	}

	return out, newStats(c.cfg.width, bits, &ws), nil
}

// encode runs the walk and assembles header and pools. It returns the pool bit lengths.
func (c *Codec) encode(rec record.Record, hook func(i int, pools *encoding.Pools), ws *walk.Stats) ([]byte, [format.NumPools]int, error) {
	pools := encoding.NewPools()
	defer pools.Release()

	var slotHook walk.SlotHook
	if hook != nil {
		slotHook = func(i int) { hook(i, pools) }
	}

	if err := walk.Encode(c.walk, pools, c.schema.Kinds(), rec, slotHook, ws); err != nil {
		return nil, [format.NumPools]int{}, err
	}

	bits := pools.Positions()

	var lengths [format.NumPools]int
	total := section.PoolHeaderSize(c.cfg.width)
	for i := range format.NumPools {
		lengths[i] = pools.Writer(format.Pool(i)).ByteLen()
		total += lengths[i]
	}

	header, err := section.NewPoolHeader(c.cfg.width, lengths)
	if err != nil {
		return nil, bits, err
	}

	out := header.AppendTo(make([]byte, 0, total), c.cfg.width, c.cfg.engine())
	for i := range format.NumPools {
		out = append(out, pools.Writer(format.Pool(i)).Bytes()...)
	}

	return out, bits, nil
}

// Decode decodes a record produced by Encode with the same schema and options.
//
// Decode fails with errs.ErrInvalidHeaderSize if data is shorter than the header,
// errs.ErrTruncatedInput if a pool runs out of bits or the header declares more bytes than
// data holds, and errs.ErrInvalidEncoding for structurally impossible content, including
// trailing bytes and unread pool bits. No partial record is returned.
func (c *Codec) Decode(data []byte) (record.Record, error) {
	readers, err := c.readers(data)
	if err != nil {
		return nil, err
	}

	rec, err := walk.Decode(c.walk, readers, c.schema.Kinds(), nil)
	if err != nil {
		return nil, err
	}

	if err := readers.CheckExhausted(); err != nil {
		return nil, err
	}

	return rec, nil
}

// ParseHeader parses the pool-length header of an encoded record.
func (c *Codec) ParseHeader(data []byte) (section.PoolHeader, error) {
	return section.ParsePoolHeader(data, c.cfg.width, c.cfg.engine())
}

func (c *Codec) readers(data []byte) (*encoding.PoolReaders, error) {
	header, err := c.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	pools, err := header.Split(data[section.PoolHeaderSize(c.cfg.width):])
	if err != nil {
		return nil, err
	}

	return encoding.NewPoolReaders(pools), nil
}

// Encode encodes rec with a codec built from s and opts.
func Encode(s *schema.Schema, rec record.Record, opts ...Option) ([]byte, error) {
	c, err := NewCodec(s, opts...)
	if err != nil {
		return nil, err
	}

	return c.Encode(rec)
}

// Decode decodes data with a codec built from s and opts.
func Decode(s *schema.Schema, data []byte, opts ...Option) (record.Record, error) {
	c, err := NewCodec(s, opts...)
	if err != nil {
		return nil, err
	}

	return c.Decode(data)
}

// ParseHeader parses the pool-length header of an encoded record. Only the header options
// (WithWideHeader, WithLittleEndian, WithBigEndian) matter.
func ParseHeader(data []byte, opts ...Option) (section.PoolHeader, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return section.PoolHeader{}, err
	}

	return section.ParsePoolHeader(data, cfg.width, cfg.engine())
}
