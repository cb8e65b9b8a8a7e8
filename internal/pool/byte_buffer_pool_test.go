package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)

	require.NotNil(t, bb)
	assert.Empty(t, bb.B, "new buffer should have zero length")
	assert.Equal(t, 128, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(PoolBufferDefaultSize)

	bb.MustWrite([]byte("hello"))
	bb.MustWrite([]byte("!"))
	require.Equal(t, []byte("hello!"), bb.Bytes())

	originalCap := cap(bb.B)
	bb.Reset()

	assert.Empty(t, bb.B, "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no-op when capacity suffices", func(t *testing.T) {
		bb := NewByteBuffer(16)
		bb.Grow(8)
		require.Equal(t, 16, cap(bb.B))
	})

	t.Run("grows at least by the requested amount", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte{1, 2, 3})
		bb.Grow(1000)

		require.GreaterOrEqual(t, cap(bb.B)-len(bb.B), 1000)
		require.Equal(t, []byte{1, 2, 3}, bb.Bytes(), "Grow must preserve contents")
	})

	t.Run("small buffers grow by at least the default size", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(1)
		require.GreaterOrEqual(t, cap(bb.B), PoolBufferDefaultSize)
	})
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(8, 32)

	bb := p.Get()
	require.NotNil(t, bb)
	bb.Grow(1024)
	bb.MustWrite([]byte("data"))
	p.Put(bb)

	// A fresh Get never returns a buffer with stale contents.
	again := p.Get()
	require.Empty(t, again.B)
	require.LessOrEqual(t, cap(again.B), 32)
}

func TestByteBufferPool_PutNil(t *testing.T) {
	p := NewByteBufferPool(8, 0)
	require.NotPanics(t, func() { p.Put(nil) })
}

func TestDefaultPools_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				bb := GetPoolBuffer()
				bb.MustWrite([]byte{byte(i)})
				PutPoolBuffer(bb)

				rb := GetRecordBuffer()
				rb.MustWrite([]byte{byte(i), byte(i)})
				PutRecordBuffer(rb)
			}
		}()
	}
	wg.Wait()
}
