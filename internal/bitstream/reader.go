package bitstream

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
)

// Reader is a bit cursor over an immutable byte slice.
type Reader struct {
	data []byte
	pos  int // current bit position
	size int // total bits in data
}

// NewReader creates a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
		size: len(data) * 8,
	}
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (uint64, error) {
	if r.pos >= r.size {
		return 0, fmt.Errorf("%w: need 1 bit at offset %d, pool holds %d", errs.ErrTruncatedInput, r.pos, r.size)
	}

	bit := uint64(r.data[r.pos>>3]>>(7-uint(r.pos&7))) & 1 //nolint:gosec
	r.pos++

	return bit, nil
}

// ReadBool reads one bit as a boolean.
func (r *Reader) ReadBool() (bool, error) {
	bit, err := r.ReadBit()
	return bit == 1, err
}

// ReadBits reads numBits bits, most significant first, and returns them right-aligned.
//
// numBits must be in [0, 64]. The remaining bit count is checked before anything is consumed.
func (r *Reader) ReadBits(numBits int) (uint64, error) {
	if numBits == 0 {
		return 0, nil
	}
	if numBits < 0 || numBits > 64 {
		return 0, fmt.Errorf("%w: read width %d out of range", errs.ErrInvalidEncoding, numBits)
	}
	if r.size-r.pos < numBits {
		return 0, fmt.Errorf("%w: need %d bits at offset %d, pool holds %d",
			errs.ErrTruncatedInput, numBits, r.pos, r.size)
	}

	var result uint64
	for numBits > 0 {
		bitOff := r.pos & 7
		avail := 8 - bitOff
		take := min(avail, numBits)

		chunk := uint64(r.data[r.pos>>3]) >> uint(avail-take) & (1<<uint(take) - 1) //nolint:gosec
		result = result<<uint(take) | chunk                                           //nolint:gosec

		r.pos += take
		numBits -= take
	}

	return result, nil
}

// ReadBytesBits reads numBits bits and returns them as a big-endian number of (numBits+7)/8 bytes,
// the inverse of Writer.WriteBytesBits.
func (r *Reader) ReadBytesBits(numBits int) ([]byte, error) {
	if numBits == 0 {
		return nil, nil
	}
	if r.size-r.pos < numBits {
		return nil, fmt.Errorf("%w: need %d bits at offset %d, pool holds %d",
			errs.ErrTruncatedInput, numBits, r.pos, r.size)
	}

	out := make([]byte, (numBits+7)/8)
	lead := numBits - 8*(len(out)-1)

	v, err := r.ReadBits(lead)
	if err != nil {
		return nil, err
	}
	out[0] = byte(v)

	for i := 1; i < len(out); i++ {
		v, err = r.ReadBits(8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}

	return out, nil
}

// Consumed returns the number of bits read so far.
func (r *Reader) Consumed() int {
	return r.pos
}

// Remaining returns the number of unread bits, padding included.
func (r *Reader) Remaining() int {
	return r.size - r.pos
}

// Seek moves the cursor to an absolute bit offset.
func (r *Reader) Seek(bit int) error {
	if bit < 0 || bit > r.size {
		return fmt.Errorf("%w: seek to bit %d, pool holds %d", errs.ErrTruncatedInput, bit, r.size)
	}
	r.pos = bit

	return nil
}

// CheckExhausted verifies that only the zero padding of the final byte is left unread.
//
// A pool with a whole unread byte, or with non-zero padding bits, means the walk consumed
// fewer bits than the encoder produced.
func (r *Reader) CheckExhausted() error {
	remaining := r.Remaining()
	if remaining >= 8 {
		return fmt.Errorf("%w: %d unread bits left in pool", errs.ErrInvalidEncoding, remaining)
	}

	pad, err := r.ReadBits(remaining)
	if err != nil {
		return err
	}
	if pad != 0 {
		return fmt.Errorf("%w: non-zero padding bits", errs.ErrInvalidEncoding)
	}

	return nil
}
