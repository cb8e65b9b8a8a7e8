package pool

import (
	"sync"
)

// Buffer sizes tuned for small configuration records: most pools hold a few dozen bytes,
// and the assembled record rarely exceeds a kilobyte.
const (
	PoolBufferDefaultSize    = 64        // 64B per pool writer
	PoolBufferMaxThreshold   = 1024 * 16 // 16KiB
	RecordBufferDefaultSize  = 512       // 512B for the assembled record
	RecordBufferMaxThreshold = 1024 * 64 // 64KiB
)

// ByteBuffer is a growable byte slice handed out by a ByteBufferPool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers double (at least PoolBufferDefaultSize), larger ones grow by 25%,
// always by at least requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := max(cap(bb.B), PoolBufferDefaultSize)
	if cap(bb.B) > 4*PoolBufferMaxThreshold {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, requiredBytes)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity grew beyond maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	poolBufferPool   = NewByteBufferPool(PoolBufferDefaultSize, PoolBufferMaxThreshold)
	recordBufferPool = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
)

// GetPoolBuffer retrieves a ByteBuffer sized for a single bit-stream pool.
func GetPoolBuffer() *ByteBuffer {
	return poolBufferPool.Get()
}

// PutPoolBuffer returns a bit-stream pool buffer.
func PutPoolBuffer(bb *ByteBuffer) {
	poolBufferPool.Put(bb)
}

// GetRecordBuffer retrieves a ByteBuffer sized for an assembled record.
func GetRecordBuffer() *ByteBuffer {
	return recordBufferPool.Get()
}

// PutRecordBuffer returns an assembled-record buffer.
func PutRecordBuffer(bb *ByteBuffer) {
	recordBufferPool.Put(bb)
}
