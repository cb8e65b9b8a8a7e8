package bitstream

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
)

func TestWriter_MSBFirstLayout(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteBits(0b101, 3)
	w.WriteBit(1)

	require.Equal(t, 4, w.BitLen())
	require.Equal(t, 1, w.ByteLen())
	require.Equal(t, []byte{0b1011_0000}, w.Bytes())
}

func TestWriter_Empty(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	require.Equal(t, 0, w.BitLen())
	require.Equal(t, 0, w.ByteLen())
	require.Empty(t, w.Bytes())
}

func TestWriter_WordBoundary(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteBits(0x7, 3)
	w.WriteBits(0xFFFF_FFFF_FFFF_FFFF, 64) // straddles the 64-bit flush
	w.WriteBits(0, 5)

	require.Equal(t, 72, w.BitLen())
	data := w.Bytes()
	require.Len(t, data, 9)

	r := NewReader(data)
	v, err := r.ReadBits(3)
	require.NoError(t, err)
	require.Equal(t, uint64(0x7), v)
	v, err = r.ReadBits(64)
	require.NoError(t, err)
	require.Equal(t, uint64(0xFFFF_FFFF_FFFF_FFFF), v)
	v, err = r.ReadBits(5)
	require.NoError(t, err)
	require.Zero(t, v)
	require.NoError(t, r.CheckExhausted())
}

func TestWriter_MasksHighBits(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteBits(0xFF, 4)
	require.Equal(t, []byte{0xF0}, w.Bytes())
}

func TestWriter_PanicsAfterFinalize(t *testing.T) {
	w := NewWriter()
	w.WriteBit(1)
	_ = w.Bytes()

	require.Panics(t, func() { w.WriteBit(0) })

	w.Release()
	require.Panics(t, func() { w.Bytes() })
	require.NotPanics(t, func() { w.Release() })
}

func TestRoundTrip_RandomWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	type item struct {
		value uint64
		width int
	}
	items := make([]item, 2000)

	w := NewWriter()
	defer w.Release()
	for i := range items {
		width := rng.Intn(65)
		value := rng.Uint64()
		if width < 64 {
			value &= (1 << width) - 1
		}
		items[i] = item{value: value, width: width}
		w.WriteBits(value, width)
	}

	r := NewReader(w.Bytes())
	for i, it := range items {
		got, err := r.ReadBits(it.width)
		require.NoError(t, err, "item %d", i)
		require.Equal(t, it.value, got, "item %d width %d", i, it.width)
	}
	require.NoError(t, r.CheckExhausted())
}

func TestBytesBits_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		width int
	}{
		{"single partial byte", []byte{0x05}, 3},
		{"exact bytes", []byte{0xAB, 0xCD}, 16},
		{"partial lead byte", []byte{0x01, 0xFF, 0x00}, 17},
		{"zero width", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter()
			defer w.Release()

			w.WriteBit(1) // misalign on purpose
			w.WriteBytesBits(tt.data, tt.width)
			require.Equal(t, 1+tt.width, w.BitLen())

			r := NewReader(w.Bytes())
			_, err := r.ReadBit()
			require.NoError(t, err)

			got, err := r.ReadBytesBits(tt.width)
			require.NoError(t, err)
			if tt.width == 0 {
				require.Empty(t, got)
				return
			}
			require.Equal(t, tt.data, got)
		})
	}
}

func TestReader_Truncation(t *testing.T) {
	r := NewReader([]byte{0xAA})

	_, err := r.ReadBits(9)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
	require.Equal(t, 0, r.Consumed(), "failed read must not consume")

	v, err := r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0xAA), v)

	_, err = r.ReadBit()
	require.ErrorIs(t, err, errs.ErrTruncatedInput)

	_, err = r.ReadBytesBits(3)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestReader_InvalidWidth(t *testing.T) {
	r := NewReader(make([]byte, 16))
	_, err := r.ReadBits(65)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestReader_Seek(t *testing.T) {
	r := NewReader([]byte{0b0000_0001, 0b1000_0000})

	require.NoError(t, r.Seek(7))
	v, err := r.ReadBits(2)
	require.NoError(t, err)
	require.Equal(t, uint64(0b11), v)
	require.Equal(t, 9, r.Consumed())
	require.Equal(t, 7, r.Remaining())

	require.ErrorIs(t, r.Seek(17), errs.ErrTruncatedInput)
	require.ErrorIs(t, r.Seek(-1), errs.ErrTruncatedInput)
	require.NoError(t, r.Seek(16))
	require.Zero(t, r.Remaining())
}

func TestReader_CheckExhausted(t *testing.T) {
	t.Run("only zero padding left", func(t *testing.T) {
		r := NewReader([]byte{0b1100_0000})
		_, err := r.ReadBits(2)
		require.NoError(t, err)
		require.NoError(t, r.CheckExhausted())
	})

	t.Run("whole unread byte", func(t *testing.T) {
		r := NewReader([]byte{0x00, 0x00})
		_, err := r.ReadBits(3)
		require.NoError(t, err)
		require.ErrorIs(t, r.CheckExhausted(), errs.ErrInvalidEncoding)
	})

	t.Run("non-zero padding", func(t *testing.T) {
		r := NewReader([]byte{0b1000_0001})
		_, err := r.ReadBit()
		require.NoError(t, err)
		require.ErrorIs(t, r.CheckExhausted(), errs.ErrInvalidEncoding)
	})

	t.Run("empty pool", func(t *testing.T) {
		require.NoError(t, NewReader(nil).CheckExhausted())
	})
}

func BenchmarkWriter_WriteBits(b *testing.B) {
	for b.Loop() {
		w := NewWriter()
		for i := range 256 {
			w.WriteBits(uint64(i), 13)
		}
		_ = w.Bytes()
		w.Release()
	}
}

func BenchmarkReader_ReadBits(b *testing.B) {
	w := NewWriter()
	for i := range 256 {
		w.WriteBits(uint64(i), 13)
	}
	data := w.Bytes()

	b.ResetTimer()
	for b.Loop() {
		r := NewReader(data)
		for range 256 {
			_, _ = r.ReadBits(13)
		}
	}
}
