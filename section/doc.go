// Package section defines the fixed-size binary structures of the cfgpack format.
//
// # Overview
//
// The section package defines two structures:
//
//  1. PoolHeader: the pool-length header at the start of every encoded record
//  2. EnvelopeHeader and EnvelopeFlag: the optional framing used by the envelope package
//
// # Record Structure
//
// An encoded record is a fixed-size header followed by the four pools:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ PoolHeader (8 bytes compact, 16 bytes wide)             │
//	│  - IntPool, BoolPool, StringPool, TagPool byte lengths  │
//	├─────────────────────────────────────────────────────────┤
//	│ IntPool     integers, string lengths, array lengths     │
//	├─────────────────────────────────────────────────────────┤
//	│ BoolPool    one bit per boolean                         │
//	├─────────────────────────────────────────────────────────┤
//	│ StringPool  mode selector and payload per string        │
//	├─────────────────────────────────────────────────────────┤
//	│ TagPool     2-bit kind tag per array element            │
//	└─────────────────────────────────────────────────────────┘
//
// Every pool is zero-padded to a byte boundary. The sum of the declared lengths must equal the
// bytes following the header exactly.
//
// # Envelope Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ EnvelopeHeader (32 bytes, fixed)                        │
//	│  - Flag (4 bytes): magic, endianness, options           │
//	│  - SchemaFingerprint (8 bytes)                          │
//	│  - TableFingerprint (8 bytes)                           │
//	│  - PayloadLength, RawLength, IndexLength (12 bytes)     │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (record, optionally compressed)                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Slot index (optional)                                   │
//	└─────────────────────────────────────────────────────────┘
//
// The first two bytes of the flag are always little-endian; they carry the endianness bit
// that governs every other multi-byte field.
package section
