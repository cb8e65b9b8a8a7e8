// Package errs defines the sentinel errors returned by cfgpack.
//
// Errors are wrapped with context using fmt.Errorf and the %w verb, so callers
// should match them with errors.Is:
//
//	rec, err := codec.Decode(data)
//	if errors.Is(err, errs.ErrTruncatedInput) {
//	    // buffer was cut short
//	}
package errs

import "errors"

// Decode-time errors.
var (
	// ErrTruncatedInput indicates a codec or cursor needed more bits than remain in its pool.
	// It is always detected before any value is returned.
	ErrTruncatedInput = errors.New("cfgpack: truncated input")

	// ErrInvalidEncoding indicates a structurally impossible state: a bit pattern with no table codeword,
	// a packed value out of range, a pool with unread trailing bits after a complete walk, or bytes
	// following the last pool.
	ErrInvalidEncoding = errors.New("cfgpack: invalid encoding")

	// ErrInvalidHeaderSize indicates the buffer is shorter than the fixed pool-length header.
	ErrInvalidHeaderSize = errors.New("cfgpack: invalid header size")
)

// Encode-time and configuration errors.
var (
	// ErrSchemaMismatch indicates the provided record does not conform to the schema, or that an
	// envelope was sealed for a different schema.
	ErrSchemaMismatch = errors.New("cfgpack: schema mismatch")

	// ErrTableMismatch indicates an envelope was sealed with a different string table.
	ErrTableMismatch = errors.New("cfgpack: table mismatch")

	// ErrPoolTooLarge indicates a pool's byte length does not fit the configured header field width.
	ErrPoolTooLarge = errors.New("cfgpack: pool too large for header")

	// ErrInvalidOption indicates an invalid configuration option value.
	ErrInvalidOption = errors.New("cfgpack: invalid option")

	// ErrUnknownKind indicates a kind value outside Integer, Boolean, String and Array.
	ErrUnknownKind = errors.New("cfgpack: unknown kind")
)

// Schema and table errors.
var (
	// ErrInvalidSchema indicates a malformed schema description.
	ErrInvalidSchema = errors.New("cfgpack: invalid schema")

	// ErrDuplicateSlotName indicates two schema slots share the same non-empty name.
	ErrDuplicateSlotName = errors.New("cfgpack: duplicate slot name")

	// ErrInvalidTable indicates a string table that is incomplete or not prefix-free.
	ErrInvalidTable = errors.New("cfgpack: invalid string table")
)

// Envelope and index errors.
var (
	// ErrInvalidEnvelope indicates a malformed envelope header or unsupported envelope version.
	ErrInvalidEnvelope = errors.New("cfgpack: invalid envelope")

	// ErrInvalidIndex indicates a slot index that does not match the schema or buffer.
	ErrInvalidIndex = errors.New("cfgpack: invalid slot index")

	// ErrSlotOutOfRange indicates a slot position outside the schema.
	ErrSlotOutOfRange = errors.New("cfgpack: slot out of range")
)
