package section

import (
	"fmt"
	"math"

	"github.com/arloliu/cfgpack/endian"
	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
)

// PoolHeader is the fixed-size header at the start of every encoded record: the byte length
// of IntPool, BoolPool, StringPool and TagPool, in that order.
type PoolHeader struct {
	Lengths [format.NumPools]uint32
}

// PoolHeaderSize returns the header size in bytes for the given field width.
func PoolHeaderSize(width format.HeaderWidth) int {
	if width == format.HeaderWide {
		return WidePoolHeaderSize
	}

	return CompactPoolHeaderSize
}

// NewPoolHeader creates a header from pool byte lengths, checking that each fits the field width.
func NewPoolHeader(width format.HeaderWidth, lengths [format.NumPools]int) (PoolHeader, error) {
	var h PoolHeader
	limit := width.MaxPoolBytes()
	for i, n := range lengths {
		if n < 0 || uint64(n) > limit {
			return PoolHeader{}, fmt.Errorf("%w: %s is %d bytes, %s header holds at most %d",
				errs.ErrPoolTooLarge, format.Pool(i), n, width, limit) //nolint:gosec
		}
		h.Lengths[i] = uint32(n) //nolint:gosec
	}

	return h, nil
}

// Total returns the sum of the pool lengths.
func (h PoolHeader) Total() uint64 {
	var total uint64
	for _, n := range h.Lengths {
		total += uint64(n)
	}

	return total
}

// AppendTo appends the serialized header to dst.
func (h PoolHeader) AppendTo(dst []byte, width format.HeaderWidth, engine endian.EndianEngine) []byte {
	for _, n := range h.Lengths {
		if width == format.HeaderWide {
			dst = engine.AppendUint32(dst, n)
		} else {
			dst = engine.AppendUint16(dst, uint16(min(n, math.MaxUint16))) //nolint:gosec
		}
	}

	return dst
}

// Bytes serializes the header.
func (h PoolHeader) Bytes(width format.HeaderWidth, engine endian.EndianEngine) []byte {
	return h.AppendTo(make([]byte, 0, PoolHeaderSize(width)), width, engine)
}

// ParsePoolHeader parses the header at the start of data.
//
// Returns errs.ErrInvalidHeaderSize if data is shorter than the header.
func ParsePoolHeader(data []byte, width format.HeaderWidth, engine endian.EndianEngine) (PoolHeader, error) {
	size := PoolHeaderSize(width)
	if len(data) < size {
		return PoolHeader{}, fmt.Errorf("%w: %d bytes, %s pool header needs %d", errs.ErrInvalidHeaderSize, len(data), width, size)
	}

	var h PoolHeader
	for i := range h.Lengths {
		if width == format.HeaderWide {
			h.Lengths[i] = engine.Uint32(data[4*i:])
		} else {
			h.Lengths[i] = uint32(engine.Uint16(data[2*i:]))
		}
	}

	return h, nil
}

// Split slices body, the bytes following the header, into the four pools.
//
// Declared lengths that add up to more than body fail with errs.ErrTruncatedInput; bytes left
// after the last pool fail with errs.ErrInvalidEncoding.
func (h PoolHeader) Split(body []byte) ([format.NumPools][]byte, error) {
	var pools [format.NumPools][]byte

	total := h.Total()
	if total > uint64(len(body)) {
		return pools, fmt.Errorf("%w: pools declare %d bytes, buffer holds %d", errs.ErrTruncatedInput, total, len(body))
	}
	if total < uint64(len(body)) {
		return pools, fmt.Errorf("%w: %d trailing bytes after the last pool", errs.ErrInvalidEncoding, uint64(len(body))-total)
	}

	off := 0
	for i, n := range h.Lengths {
		end := off + int(n)
		pools[i] = body[off:end:end]
		off = end
	}

	return pools, nil
}
