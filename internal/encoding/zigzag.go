package encoding

import "golang.org/x/exp/constraints"

// ZigZagEncode maps a signed integer to an unsigned one so that small magnitudes stay small:
// 0, -1, 1, -2, 2 become 0, 1, 2, 3, 4.
func ZigZagEncode[T constraints.Signed](v T) uint64 {
	x := int64(v)
	return uint64((x << 1) ^ (x >> 63)) //nolint:gosec
}

// ZigZagDecode reverses ZigZagEncode.
func ZigZagDecode[T constraints.Signed](u uint64) T {
	return T(int64(u>>1) ^ -int64(u&1)) //nolint:gosec
}
