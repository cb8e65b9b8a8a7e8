package bitstream

import (
	"encoding/binary"

	"github.com/arloliu/cfgpack/internal/pool"
)

// Writer appends bits to a growable, pooled byte buffer.
type Writer struct {
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
	bitLen   int    // total bits written
	finished bool

	buf *pool.ByteBuffer
}

// NewWriter creates a Writer backed by a buffer from the pool.
//
// Call Release once the bytes returned by Bytes are no longer referenced.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetPoolBuffer()}
}

// WriteBit appends a single bit (only the lowest bit of bit is used).
func (w *Writer) WriteBit(bit uint64) {
	w.mustWritable()

	w.bitBuf = (w.bitBuf << 1) | (bit & 1)
	w.bitCount++
	w.bitLen++

	if w.bitCount == 64 {
		w.flushWord()
	}
}

// WriteBool appends one bit: 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) {
	var bit uint64
	if v {
		bit = 1
	}
	w.WriteBit(bit)
}

// WriteBits appends the numBits low-order bits of value, most significant first.
//
// numBits must be in [0, 64]; zero writes nothing.
func (w *Writer) WriteBits(value uint64, numBits int) {
	w.mustWritable()

	if numBits == 0 {
		return
	}
	if numBits < 0 || numBits > 64 {
		panic("bitstream: WriteBits width out of range")
	}

	if numBits < 64 {
		value &= (1 << numBits) - 1
	}
	w.bitLen += numBits

	available := 64 - w.bitCount
	if numBits < available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits

		return
	}

	// Fill the current word with the high bits, flush, keep the low bits.
	rest := numBits - available
	if available == 64 {
		w.bitBuf = value
	} else {
		w.bitBuf = (w.bitBuf << available) | (value >> rest)
	}
	w.bitCount = 64
	w.flushWord()

	if rest > 0 {
		w.bitBuf = value & ((1 << rest) - 1)
		w.bitCount = rest
	}
}

// WriteBytesBits appends the numBits low-order bits of the big-endian number held in data.
//
// data must be exactly (numBits+7)/8 bytes long; the unused high bits of data[0] are ignored.
func (w *Writer) WriteBytesBits(data []byte, numBits int) {
	if numBits == 0 {
		return
	}
	if len(data) != (numBits+7)/8 {
		panic("bitstream: WriteBytesBits length does not match width")
	}

	lead := numBits - 8*(len(data)-1)
	w.WriteBits(uint64(data[0]), lead)
	for _, b := range data[1:] {
		w.WriteBits(uint64(b), 8)
	}
}

// BitLen returns the number of bits written so far, excluding padding.
func (w *Writer) BitLen() int {
	return w.bitLen
}

// ByteLen returns the finalized length in bytes: BitLen rounded up to a byte boundary.
func (w *Writer) ByteLen() int {
	return (w.bitLen + 7) / 8
}

// Bytes finalizes the stream, zero-padding to a byte boundary, and returns the encoded bytes.
//
// The returned slice references the internal buffer and is valid until Release.
// Writing after Bytes panics.
func (w *Writer) Bytes() []byte {
	if w.buf == nil {
		panic("bitstream: writer already released")
	}

	if !w.finished {
		w.flushTail()
		w.finished = true
	}

	return w.buf.Bytes()
}

// Release returns the internal buffer to the pool. The Writer is unusable afterwards.
func (w *Writer) Release() {
	if w.buf == nil {
		return
	}

	pool.PutPoolBuffer(w.buf)
	w.buf = nil
}

func (w *Writer) mustWritable() {
	if w.buf == nil {
		panic("bitstream: writer already released")
	}
	if w.finished {
		panic("bitstream: write after Bytes")
	}
}

// flushWord appends the full 64-bit buffer.
func (w *Writer) flushWord() {
	w.buf.Grow(8)
	w.buf.B = binary.BigEndian.AppendUint64(w.buf.B, w.bitBuf)
	w.bitBuf = 0
	w.bitCount = 0
}

// flushTail appends the pending bits left-aligned, padding the last byte with zeros.
func (w *Writer) flushTail() {
	if w.bitCount == 0 {
		return
	}

	numBytes := (w.bitCount + 7) / 8
	aligned := w.bitBuf << (64 - w.bitCount)

	w.buf.Grow(numBytes)
	for i := range numBytes {
		w.buf.B = append(w.buf.B, byte(aligned>>(56-8*i)))
	}

	w.bitBuf = 0
	w.bitCount = 0
}
