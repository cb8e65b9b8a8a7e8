package encoding

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/bitstream"
)

// radixMaxBits is the width of the maximum-byte field that precedes a radix payload.
const radixMaxBits = 8

// maxByte returns the largest byte in data, or 0 for empty data.
func maxByte(data []byte) byte {
	var m byte
	for _, b := range data {
		m = max(m, b)
	}

	return m
}

// radixPower returns base^n if it fits in a uint64.
func radixPower(base uint64, n int) (uint64, bool) {
	p := uint64(1)
	for range n {
		hi, lo := bits.Mul64(p, base)
		if hi != 0 {
			return 0, false
		}
		p = lo
	}

	return p, true
}

// RadixBits returns the payload width for n bytes packed in base m+1: the bit length of
// (m+1)^n - 1, which equals ceil(n * log2(m+1)).
func RadixBits(n int, m byte) int {
	if n == 0 || m == 0 {
		return 0
	}

	base := uint64(m) + 1
	if base&(base-1) == 0 {
		return n * bits.TrailingZeros64(base)
	}
	if p, ok := radixPower(base, n); ok {
		return bits.Len64(p - 1)
	}

	limit := bigRadixLimit(base, n)

	return limit.Sub(limit, big.NewInt(1)).BitLen()
}

// bigRadixLimit returns base^n as a big integer.
func bigRadixLimit(base uint64, n int) *big.Int {
	return new(big.Int).Exp(new(big.Int).SetUint64(base), big.NewInt(int64(n)), nil)
}

// radixEncodedBits returns the mode-1 payload width including the maximum-byte field.
func radixEncodedBits(data []byte) int {
	return radixMaxBits + RadixBits(len(data), maxByte(data))
}

// writeRadix writes the maximum byte and the packed value of data.
func writeRadix(w *bitstream.Writer, data []byte) {
	m := maxByte(data)
	w.WriteBits(uint64(m), radixMaxBits)

	width := RadixBits(len(data), m)
	if width == 0 {
		return
	}

	base := uint64(m) + 1
	if base&(base-1) == 0 {
		// A power-of-two base packs each byte into its own digit field.
		digitBits := bits.TrailingZeros64(base)
		for _, b := range data {
			w.WriteBits(uint64(b), digitBits)
		}

		return
	}
	if width <= 64 {
		var v uint64
		for _, b := range data {
			v = v*base + uint64(b)
		}
		w.WriteBits(v, width)

		return
	}

	v := newRadixPowers(base).pack(data)
	w.WriteBytesBits(v.FillBytes(make([]byte, (width+7)/8)), width)
}

// readRadix reads a mode-1 payload of n bytes.
//
// The packed value must be below (m+1)^n and the decoded bytes must actually reach m; anything
// else cannot have been produced by writeRadix.
func readRadix(r *bitstream.Reader, n int) ([]byte, error) {
	mv, err := r.ReadBits(radixMaxBits)
	if err != nil {
		return nil, fmt.Errorf("radix max byte: %w", err)
	}
	m := byte(mv)

	out := make([]byte, n)
	if n == 0 {
		if m != 0 {
			return nil, fmt.Errorf("%w: radix max byte %d for empty string", errs.ErrInvalidEncoding, m)
		}

		return out, nil
	}
	if m == 0 {
		return out, nil
	}

	width := RadixBits(n, m)
	base := uint64(m) + 1
	if r.Remaining() < width {
		return nil, fmt.Errorf("%w: radix payload needs %d bits, pool has %d left", errs.ErrTruncatedInput, width, r.Remaining())
	}

	switch {
	case base&(base-1) == 0:
		digitBits := bits.TrailingZeros64(base)
		for i := range out {
			v, err := r.ReadBits(digitBits)
			if err != nil {
				return nil, fmt.Errorf("radix payload: %w", err)
			}
			out[i] = byte(v)
		}
	case width <= 64:
		v, err := r.ReadBits(width)
		if err != nil {
			return nil, fmt.Errorf("radix payload: %w", err)
		}
		if limit, ok := radixPower(base, n); ok && v >= limit {
			return nil, fmt.Errorf("%w: radix value out of range for %d bytes in base %d", errs.ErrInvalidEncoding, n, base)
		}
		for i := n - 1; i >= 0; i-- {
			out[i] = byte(v % base)
			v /= base
		}
	default:
		raw, err := r.ReadBytesBits(width)
		if err != nil {
			return nil, fmt.Errorf("radix payload: %w", err)
		}
		v := new(big.Int).SetBytes(raw)
		if v.Cmp(bigRadixLimit(base, n)) >= 0 {
			return nil, fmt.Errorf("%w: radix value out of range for %d bytes in base %d", errs.ErrInvalidEncoding, n, base)
		}

		newRadixPowers(base).unpack(v, out)
	}

	if maxByte(out) != m {
		return nil, fmt.Errorf("%w: radix max byte %d not present in payload", errs.ErrInvalidEncoding, m)
	}

	return out, nil
}

// radixLeafDigits is the digit count packed directly in a uint64. 255^8 < 2^64, and bases of
// 256 take the power-of-two path.
const radixLeafDigits = 8

// radixPowers packs and unpacks big radix values by splitting the digits in halves, so the
// cost is dominated by a few large multiplications instead of one per digit.
type radixPowers struct {
	base   uint64
	powers map[int]*big.Int
}

func newRadixPowers(base uint64) *radixPowers {
	return &radixPowers{base: base, powers: make(map[int]*big.Int)}
}

// pow returns base^n. Halving splits only ever ask for two lengths per level.
func (p *radixPowers) pow(n int) *big.Int {
	if v, ok := p.powers[n]; ok {
		return v
	}

	var v *big.Int
	if n <= radixLeafDigits {
		pw, _ := radixPower(p.base, n)
		v = new(big.Int).SetUint64(pw)
	} else {
		h := n / 2
		v = new(big.Int).Mul(p.pow(h), p.pow(n-h))
	}
	p.powers[n] = v

	return v
}

// pack returns the value of data read as base-p.base digits, most significant first.
func (p *radixPowers) pack(data []byte) *big.Int {
	if len(data) <= radixLeafDigits {
		var v uint64
		for _, b := range data {
			v = v*p.base + uint64(b)
		}

		return new(big.Int).SetUint64(v)
	}

	h := len(data) / 2
	v := p.pack(data[:len(data)-h])
	v.Mul(v, p.pow(h))

	return v.Add(v, p.pack(data[len(data)-h:]))
}

// unpack writes the len(out) digits of v into out. v must be below base^len(out).
func (p *radixPowers) unpack(v *big.Int, out []byte) {
	n := len(out)
	if n <= radixLeafDigits {
		u := v.Uint64()
		for i := n - 1; i >= 0; i-- {
			out[i] = byte(u % p.base)
			u /= p.base
		}

		return
	}

	h := n / 2
	hi, lo := new(big.Int).QuoRem(v, p.pow(h), new(big.Int))
	p.unpack(hi, out[:n-h])
	p.unpack(lo, out[n-h:])
}
