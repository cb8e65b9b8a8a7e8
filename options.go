package cfgpack

import (
	"errors"
	"fmt"
	"slices"

	"github.com/arloliu/cfgpack/endian"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/encoding"
	"github.com/arloliu/cfgpack/internal/options"
	"github.com/arloliu/cfgpack/table"
)

const (
	// DefaultMaxLength is the default limit on string and array lengths accepted by Decode.
	DefaultMaxLength = 1 << 20
	// DefaultMaxDepth is the default limit on array nesting.
	DefaultMaxDepth = 64
)

// Config holds the format configuration of a Codec.
//
// Everything in Config except the decode limits changes the wire format, so the encoder and
// the decoder of a record must use the same options.
type Config struct {
	table     *table.Table
	buckets   []int
	width     format.HeaderWidth
	bigEndian bool
	maxLength int
	maxDepth  int
}

func defaultConfig() *Config {
	return &Config{
		table:     table.Common(),
		buckets:   encoding.DefaultBuckets(),
		width:     format.HeaderCompact,
		maxLength: DefaultMaxLength,
		maxDepth:  DefaultMaxDepth,
	}
}

// Table returns the string table used by table mode.
func (c *Config) Table() *table.Table { return c.table }

// IntegerBuckets returns a copy of the integer bucket widths.
func (c *Config) IntegerBuckets() []int { return slices.Clone(c.buckets) }

// HeaderWidth returns the pool header field width.
func (c *Config) HeaderWidth() format.HeaderWidth { return c.width }

// IsBigEndian reports whether the pool header is big-endian.
func (c *Config) IsBigEndian() bool { return c.bigEndian }

func (c *Config) engine() endian.EndianEngine {
	return endian.ForOrder(c.bigEndian)
}

// Option configures a Codec.
type Option = options.Option[*Config]

// WithTable sets the string table used by table mode. The default is table.Common().
func WithTable(t *table.Table) Option {
	return options.New(func(c *Config) error {
		if t == nil {
			return errors.New("string table is nil")
		}
		c.table = t

		return nil
	})
}

// WithIntegerBuckets sets the integer bucket widths.
//
// Widths must be 1 to 8 strictly ascending values in [1, 64], the last one 64.
// The default is 4, 8, 16, 32, 64.
func WithIntegerBuckets(widths ...int) Option {
	return options.New(func(c *Config) error {
		if err := encoding.ValidateBuckets(widths); err != nil {
			return err
		}
		c.buckets = slices.Clone(widths)

		return nil
	})
}

// WithWideHeader stores pool lengths as uint32 instead of uint16, for records with a pool
// larger than 64 KiB.
func WithWideHeader() Option {
	return options.NoError(func(c *Config) {
		c.width = format.HeaderWide
	})
}

// WithLittleEndian sets the pool header to little-endian byte order.
// It is the default option.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = false
	})
}

// WithBigEndian sets the pool header to big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.bigEndian = true
	})
}

// WithMaxLength limits the string and array lengths Decode accepts.
func WithMaxLength(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("max length must be positive, got %d", n)
		}
		c.maxLength = n

		return nil
	})
}

// WithMaxDepth limits array nesting on both encode and decode.
func WithMaxDepth(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		c.maxDepth = n

		return nil
	})
}
