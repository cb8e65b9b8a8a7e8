// Package encoding provides the bit-level value codecs of the cfgpack wire format.
//
// These implementations are internal to cfgpack and are not part of the public API.
// Use the root cfgpack package to encode and decode whole records.
//
// # Implementation Overview
//
// Integer codec (IntCodec):
//   - A value is written as a unary bucket prefix followed by the value bits.
//   - Bucket k is selected by k one-bits and a zero stop bit; the last bucket has no stop bit.
//   - The smallest bucket that holds the value is always chosen, so output is canonical.
//   - Signed values are zig-zag mapped first (ZigZagEncode).
//
// Boolean codec (BoolCodec):
//   - One bit per value, no entropy coding.
//
// String codec (StringCodec):
//   - The byte length goes to the integer pool.
//   - One selector bit and the payload go to the string pool.
//   - Mode 0 (table) writes one canonical codeword per byte.
//   - Mode 1 (radix) writes the maximum byte M in 8 bits, then the bytes as one
//     base-(M+1) integer in a fixed-width field.
//   - The cheaper mode wins; ties go to mode 0.
//
// Array tags (WriteTag, ReadTag):
//   - Each array element carries a 2-bit kind tag in the tag pool.
//
// # Architecture Notes
//
// Codecs are stateless after construction and safe for concurrent use. All state lives in the
// bitstream writers and readers of the record being processed (see Pools and PoolReaders).
package encoding
