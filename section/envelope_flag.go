package section

import (
	"fmt"

	"github.com/arloliu/cfgpack/endian"
	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
)

// EnvelopeFlag represents the packed flag field at the start of an envelope header.
type EnvelopeFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the pool header width flag, 0 means uint16 lengths, 1 means uint32 lengths.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2 is the slot index flag, 1 means a slot index follows the record.
	// Bit 3 is reserved for future use, must be set to 0.
	// Bit 4-15 are magic number to identify the envelope format:
	//   - 0xCF10 (0b1100_1111_0001_0000): envelope format v1
	Options uint16

	// Compression is the format.CompressionType applied to the record payload.
	Compression uint8

	// Reserved must be 0.
	Reserved uint8
}

var validCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// NewEnvelopeFlag creates a new EnvelopeFlag with default settings: little-endian, compact
// pool header, no slot index, no compression.
func NewEnvelopeFlag() EnvelopeFlag {
	flag := EnvelopeFlag{
		Options:     MagicEnvelopeV1,
		Compression: uint8(format.CompressionNone),
	}
	flag.WithLittleEndian()

	return flag
}

// IsWideHeader returns whether the record uses uint32 pool lengths.
func (f EnvelopeFlag) IsWideHeader() bool {
	return (f.Options & WideHeaderMask) != 0
}

// HeaderWidth returns the pool header width of the enclosed record.
func (f EnvelopeFlag) HeaderWidth() format.HeaderWidth {
	if f.IsWideHeader() {
		return format.HeaderWide
	}

	return format.HeaderCompact
}

// SetHeaderWidth records the pool header width of the enclosed record.
func (f *EnvelopeFlag) SetHeaderWidth(width format.HeaderWidth) {
	if width == format.HeaderWide {
		f.Options |= WideHeaderMask
	} else {
		f.Options &^= WideHeaderMask
	}
}

// HasSlotIndex returns whether a slot index follows the record.
func (f EnvelopeFlag) HasSlotIndex() bool {
	return (f.Options & SlotIndexMask) != 0
}

// SetHasSlotIndex enables or disables the slot index payload.
func (f *EnvelopeFlag) SetHasSlotIndex(enabled bool) {
	if enabled {
		f.Options |= SlotIndexMask
	} else {
		f.Options &^= SlotIndexMask
	}
}

// IsLittleEndian returns whether the data is little-endian.
func (f EnvelopeFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the data is big-endian.
func (f EnvelopeFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *EnvelopeFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *EnvelopeFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f EnvelopeFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// CompressionType returns the payload compression.
func (f EnvelopeFlag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompressionType sets the payload compression.
func (f *EnvelopeFlag) SetCompressionType(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// IsValidMagicNumber checks if the magic number is valid.
func (f EnvelopeFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicEnvelopeV1
}

// Validate checks if the flag contains valid values.
func (f EnvelopeFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: magic 0x%04x", errs.ErrInvalidEnvelope, f.GetMagicNumber())
	}

	if f.Options&ReservedBitsMask != 0 || f.Reserved != 0 {
		return fmt.Errorf("%w: reserved bits set", errs.ErrInvalidEnvelope)
	}

	if _, ok := validCompressions[f.Compression]; !ok {
		return fmt.Errorf("%w: compression type %d", errs.ErrInvalidEnvelope, f.Compression)
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f EnvelopeFlag) GetEndianEngine() endian.EndianEngine {
	return endian.ForOrder(f.IsBigEndian())
}
