package encoding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/bitstream"
)

func defaultIntCodec(t testing.TB) *IntCodec {
	t.Helper()
	c, err := NewIntCodec(DefaultBuckets()...)
	require.NoError(t, err)

	return c
}

func TestZigZag(t *testing.T) {
	cases := []struct {
		in   int64
		want uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4},
		{math.MaxInt64, math.MaxUint64 - 1},
		{math.MinInt64, math.MaxUint64},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ZigZagEncode(tc.in), "encode %d", tc.in)
		require.Equal(t, tc.in, ZigZagDecode[int64](tc.want), "decode %d", tc.want)
	}

	require.Equal(t, uint64(5), ZigZagEncode(int8(-3)))
	require.Equal(t, int8(-3), ZigZagDecode[int8](5))
}

func TestValidateBuckets(t *testing.T) {
	require.NoError(t, ValidateBuckets(DefaultBuckets()))
	require.NoError(t, ValidateBuckets([]int{64}))
	require.NoError(t, ValidateBuckets([]int{1, 2, 3, 5, 8, 13, 21, 64}))

	invalid := map[string][]int{
		"empty":          nil,
		"too many":       {1, 2, 3, 4, 5, 6, 7, 8, 64},
		"zero width":     {0, 64},
		"too wide":       {8, 65},
		"not ascending":  {8, 8, 64},
		"descending":     {16, 8, 64},
		"last not 64":    {4, 8, 32},
		"negative width": {-4, 64},
	}
	for name, widths := range invalid {
		t.Run(name, func(t *testing.T) {
			require.Error(t, ValidateBuckets(widths))
			_, err := NewIntCodec(widths...)
			require.Error(t, err)
		})
	}
}

func TestIntCodec_CanonicalBucket(t *testing.T) {
	c := defaultIntCodec(t)

	cases := []struct {
		value  uint64
		bucket int
		bits   int
	}{
		{0, 0, 1 + 4},
		{15, 0, 1 + 4},
		{16, 1, 2 + 8},
		{255, 1, 2 + 8},
		{256, 2, 3 + 16},
		{1<<16 - 1, 2, 3 + 16},
		{1 << 16, 3, 4 + 32},
		{1<<32 - 1, 3, 4 + 32},
		{1 << 32, 4, 4 + 64},
		{math.MaxUint64, 4, 4 + 64},
	}
	for _, tc := range cases {
		require.Equal(t, tc.bucket, c.Bucket(tc.value), "value %d", tc.value)
		require.Equal(t, tc.bits, c.EncodedBits(tc.value), "value %d", tc.value)

		w := bitstream.NewWriter()
		c.WriteUint(w, tc.value)
		require.Equal(t, tc.bits, w.BitLen(), "value %d", tc.value)
		w.Release()
	}
}

func TestIntCodec_PrefixBits(t *testing.T) {
	c := defaultIntCodec(t)

	t.Run("zero uses stop bit and 4 value bits", func(t *testing.T) {
		w := bitstream.NewWriter()
		defer w.Release()
		c.WriteUint(w, 0)
		require.Equal(t, []byte{0x00}, w.Bytes())
	})

	t.Run("16 selects bucket 1", func(t *testing.T) {
		w := bitstream.NewWriter()
		defer w.Release()
		c.WriteUint(w, 16)
		// 10 | 00010000 -> 1000 0100 00(00 0000)
		require.Equal(t, []byte{0x84, 0x00}, w.Bytes())
	})

	t.Run("final bucket has no stop bit", func(t *testing.T) {
		w := bitstream.NewWriter()
		defer w.Release()
		c.WriteUint(w, math.MaxUint64)
		out := w.Bytes()
		require.Len(t, out, 9)
		// 1111 then sixty-four ones.
		require.Equal(t, byte(0xFF), out[0])
		require.Equal(t, byte(0xF0), out[8])
	})
}

func TestIntCodec_RoundTrip(t *testing.T) {
	codecs := map[string][]int{
		"default": DefaultBuckets(),
		"single":  {64},
		"fine":    {1, 2, 3, 5, 8, 13, 21, 64},
	}
	signed := []int64{0, 1, -1, 7, -8, 8, 127, -128, 1 << 20, -(1 << 40), math.MaxInt64, math.MinInt64}

	for name, widths := range codecs {
		t.Run(name, func(t *testing.T) {
			c, err := NewIntCodec(widths...)
			require.NoError(t, err)

			w := bitstream.NewWriter()
			defer w.Release()
			for _, v := range signed {
				c.WriteInt(w, v)
				c.WriteUint(w, uint64(v)) //nolint:gosec
			}

			r := bitstream.NewReader(w.Bytes())
			for _, want := range signed {
				got, err := c.ReadInt(r)
				require.NoError(t, err)
				require.Equal(t, want, got)

				u, err := c.ReadUint(r)
				require.NoError(t, err)
				require.Equal(t, uint64(want), u) //nolint:gosec
			}
			require.NoError(t, r.CheckExhausted())
		})
	}
}

func TestIntCodec_Truncated(t *testing.T) {
	c := defaultIntCodec(t)

	t.Run("empty pool", func(t *testing.T) {
		_, err := c.ReadUint(bitstream.NewReader(nil))
		require.ErrorIs(t, err, errs.ErrTruncatedInput)
	})

	t.Run("payload cut short", func(t *testing.T) {
		// Prefix 1110 selects the 32-bit bucket, only 4 payload bits follow.
		_, err := c.ReadUint(bitstream.NewReader([]byte{0xE0}))
		require.ErrorIs(t, err, errs.ErrTruncatedInput)
	})
}

func TestIntCodec_ReadLength(t *testing.T) {
	c := defaultIntCodec(t)
	w := bitstream.NewWriter()
	defer w.Release()
	c.WriteUint(w, 300)
	data := w.Bytes()

	n, err := c.ReadLength(bitstream.NewReader(data), 300)
	require.NoError(t, err)
	require.Equal(t, 300, n)

	_, err = c.ReadLength(bitstream.NewReader(data), 299)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestBoolCodec(t *testing.T) {
	var c BoolCodec
	values := []bool{true, false, false, true, true, true, false, true, false}

	w := bitstream.NewWriter()
	defer w.Release()
	for _, v := range values {
		c.Write(w, v)
	}
	require.Equal(t, len(values), w.BitLen())

	r := bitstream.NewReader(w.Bytes())
	for _, want := range values {
		got, err := c.Read(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.NoError(t, r.CheckExhausted())

	_, err := c.Read(r)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}
