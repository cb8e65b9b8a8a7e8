package envelope

import (
	"fmt"

	"github.com/arloliu/cfgpack/compress"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/options"
	"github.com/arloliu/cfgpack/section"
)

// DefaultMaxRecordSize is the default limit on the uncompressed record size of an envelope.
const DefaultMaxRecordSize = 64 << 20

// Config holds the options of Seal and the unsealing functions.
type Config struct {
	compression   format.CompressionType
	index         bool
	maxRecordSize int
}

func newConfig(opts []Option) (*Config, error) {
	cfg := &Config{compression: format.CompressionNone, maxRecordSize: DefaultMaxRecordSize}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// recordLimit returns the largest record an envelope may carry: the configured maximum, capped
// by what a pool header of the given width can describe.
func (c *Config) recordLimit(width format.HeaderWidth) uint64 {
	limit := uint64(section.PoolHeaderSize(width)) + format.NumPools*width.MaxPoolBytes()

	return min(limit, uint64(c.maxRecordSize)) //nolint:gosec
}

// Option configures Seal, Unseal, Open, OpenSlot and Payload.
type Option = options.Option[*Config]

// WithCompression compresses the record payload. The default is format.CompressionNone.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return fmt.Errorf("compression: %w", err)
		}
		c.compression = ct

		return nil
	})
}

// WithSlotIndex attaches a slot index so OpenSlot can decode single slots.
func WithSlotIndex() Option {
	return options.NoError(func(c *Config) {
		c.index = true
	})
}

// WithMaxRecordSize limits the uncompressed record size. Seal refuses larger records and the
// unsealing functions reject headers declaring one before anything is decompressed.
// The default is DefaultMaxRecordSize.
func WithMaxRecordSize(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("max record size must be positive, got %d", n)
		}
		c.maxRecordSize = n

		return nil
	})
}
