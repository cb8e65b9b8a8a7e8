package section

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
)

// EnvelopeHeader represents the fixed-size header in front of an enveloped record.
type EnvelopeHeader struct {
	// SchemaFingerprint pins the schema the record was encoded with.
	SchemaFingerprint uint64 // byte offset 4-11
	// TableFingerprint pins the string table the record was encoded with.
	TableFingerprint uint64 // byte offset 12-19
	// PayloadLength is the byte length of the (possibly compressed) record payload.
	PayloadLength uint32 // byte offset 20-23
	// RawLength is the byte length of the record before compression.
	RawLength uint32 // byte offset 24-27
	// IndexLength is the byte length of the slot index following the payload, 0 if absent.
	IndexLength uint32 // byte offset 28-31

	Flag EnvelopeFlag // byte offset 0-3
}

// NewEnvelopeHeader creates a header pinned to the given fingerprints.
// Lengths are set once the payload is known.
func NewEnvelopeHeader(schemaFingerprint, tableFingerprint uint64) *EnvelopeHeader {
	return &EnvelopeHeader{
		SchemaFingerprint: schemaFingerprint,
		TableFingerprint:  tableFingerprint,
		Flag:              NewEnvelopeFlag(),
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 32 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *EnvelopeHeader) Parse(data []byte) error {
	if len(data) != EnvelopeHeaderSize {
		return fmt.Errorf("%w: envelope header is %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), EnvelopeHeaderSize)
	}

	// Options is always little-endian; it carries the endianness of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Compression = data[2]
	h.Flag.Reserved = data[3]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	engine := h.Flag.GetEndianEngine()
	h.SchemaFingerprint = engine.Uint64(data[4:12])
	h.TableFingerprint = engine.Uint64(data[12:20])
	h.PayloadLength = engine.Uint32(data[20:24])
	h.RawLength = engine.Uint32(data[24:28])
	h.IndexLength = engine.Uint32(data[28:32])

	return nil
}

// Bytes serializes the header into a byte slice.
func (h *EnvelopeHeader) Bytes() []byte {
	b := make([]byte, EnvelopeHeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	b[3] = h.Flag.Reserved
	engine.PutUint64(b[4:12], h.SchemaFingerprint)
	engine.PutUint64(b[12:20], h.TableFingerprint)
	engine.PutUint32(b[20:24], h.PayloadLength)
	engine.PutUint32(b[24:28], h.RawLength)
	engine.PutUint32(b[28:32], h.IndexLength)

	return b
}

// ParseEnvelopeHeader parses an EnvelopeHeader from the start of data.
//
// Returns:
//   - EnvelopeHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseEnvelopeHeader(data []byte) (EnvelopeHeader, error) {
	if len(data) < EnvelopeHeaderSize {
		return EnvelopeHeader{}, fmt.Errorf("%w: %d bytes, envelope header needs %d", errs.ErrInvalidHeaderSize, len(data), EnvelopeHeaderSize)
	}

	h := EnvelopeHeader{}
	if err := h.Parse(data[:EnvelopeHeaderSize]); err != nil {
		return EnvelopeHeader{}, err
	}

	return h, nil
}
