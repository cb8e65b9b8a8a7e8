package encoding

import (
	"fmt"
	"slices"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/bitstream"
)

// MaxBuckets is the largest number of buckets an integer bucket table may have.
const MaxBuckets = 8

// DefaultBuckets returns the default integer bucket widths.
func DefaultBuckets() []int {
	return []int{4, 8, 16, 32, 64}
}

// IntCodec encodes integers with a unary-selected bit-width bucket.
//
// Bucket k (0-based) is selected by k one-bits followed by a zero stop bit. The final bucket
// is selected by len(widths)-1 one-bits and has no stop bit. Value bits follow the prefix,
// most significant first.
type IntCodec struct {
	widths []int
	last   int
}

// NewIntCodec creates an integer codec for the given bucket widths.
//
// Widths must be strictly ascending values in [1, 64], between 1 and MaxBuckets of them,
// and the last must be 64 so every value has a bucket.
func NewIntCodec(widths ...int) (*IntCodec, error) {
	if err := ValidateBuckets(widths); err != nil {
		return nil, err
	}

	return &IntCodec{widths: slices.Clone(widths), last: len(widths) - 1}, nil
}

// ValidateBuckets checks an integer bucket table.
func ValidateBuckets(widths []int) error {
	if len(widths) == 0 || len(widths) > MaxBuckets {
		return fmt.Errorf("integer buckets: need 1 to %d widths, got %d", MaxBuckets, len(widths))
	}

	prev := 0
	for i, w := range widths {
		if w < 1 || w > 64 {
			return fmt.Errorf("integer buckets: width %d at index %d out of range [1, 64]", w, i)
		}
		if w <= prev {
			return fmt.Errorf("integer buckets: widths must be strictly ascending, %d follows %d", w, prev)
		}
		prev = w
	}

	if prev != 64 {
		return fmt.Errorf("integer buckets: last width must be 64, got %d", prev)
	}

	return nil
}

// Widths returns a copy of the bucket widths.
func (c *IntCodec) Widths() []int {
	return slices.Clone(c.widths)
}

// Bucket returns the index of the smallest bucket that can hold v.
func (c *IntCodec) Bucket(v uint64) int {
	for k, w := range c.widths[:c.last] {
		if v < 1<<uint(w) { //nolint:gosec
			return k
		}
	}

	return c.last
}

// EncodedBits returns the number of bits WriteUint emits for v.
func (c *IntCodec) EncodedBits(v uint64) int {
	k := c.Bucket(v)

	return c.prefixBits(k) + c.widths[k]
}

func (c *IntCodec) prefixBits(k int) int {
	if k == c.last {
		return k
	}

	return k + 1
}

// WriteUint writes an unsigned value.
func (c *IntCodec) WriteUint(w *bitstream.Writer, v uint64) {
	k := c.Bucket(v)

	// k ones, then the stop bit unless k is the final bucket.
	if k == c.last {
		w.WriteBits(1<<uint(k)-1, k) //nolint:gosec
	} else {
		w.WriteBits((1<<uint(k)-1)<<1, k+1) //nolint:gosec
	}
	w.WriteBits(v, c.widths[k])
}

// WriteInt writes a signed value through its zig-zag mapping.
func (c *IntCodec) WriteInt(w *bitstream.Writer, v int64) {
	c.WriteUint(w, ZigZagEncode(v))
}

// ReadUint reads an unsigned value.
func (c *IntCodec) ReadUint(r *bitstream.Reader) (uint64, error) {
	k := 0
	for k < c.last {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, fmt.Errorf("integer prefix: %w", err)
		}
		if bit == 0 {
			break
		}
		k++
	}

	v, err := r.ReadBits(c.widths[k])
	if err != nil {
		return 0, fmt.Errorf("integer payload: %w", err)
	}

	return v, nil
}

// ReadInt reads a signed value written by WriteInt.
func (c *IntCodec) ReadInt(r *bitstream.Reader) (int64, error) {
	u, err := c.ReadUint(r)
	if err != nil {
		return 0, err
	}

	return ZigZagDecode[int64](u), nil
}

// ReadLength reads an unsigned length and rejects values above limit.
func (c *IntCodec) ReadLength(r *bitstream.Reader, limit int) (int, error) {
	n, err := c.ReadUint(r)
	if err != nil {
		return 0, err
	}
	if n > uint64(limit) { //nolint:gosec
		return 0, fmt.Errorf("%w: length %d exceeds limit %d", errs.ErrInvalidEncoding, n, limit)
	}

	return int(n), nil //nolint:gosec
}
