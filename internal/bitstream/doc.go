// Package bitstream implements the bit-granular cursors every cfgpack pool is built on.
//
// Bits are packed most significant first within each byte:
//
//	WriteBits(0b101, 3); WriteBits(0b1, 1)
//	byte 0: [1 0 1 1 0 0 0 0]  (4 bits used, 4 zero padding bits)
//
// A Writer accumulates bits in a 64-bit buffer and flushes whole words to a pooled byte
// buffer; Bytes finalizes the stream by zero-padding to the next byte boundary. The
// number of padding bits is never stored: it is implied by the pool's byte length.
//
// A Reader is a cursor over an immutable byte slice. Every read checks the remaining
// bit count first and fails with errs.ErrTruncatedInput before returning anything, so
// a short pool can never yield a partially-read value.
//
// Neither type is safe for concurrent use. Readers over the same byte slice may be used
// concurrently by different goroutines since they never write to it.
package bitstream
