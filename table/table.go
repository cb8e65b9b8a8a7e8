package table

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/internal/hash"
)

const (
	// NumSymbols is the number of byte values every table must cover.
	NumSymbols = 256
	// MaxCodeLen is the longest codeword a table may assign.
	MaxCodeLen = 15

	fingerprintLabel = "cfgpack.table.v1"
)

// BitWriter is the sink a Table encodes into.
type BitWriter interface {
	WriteBits(value uint64, numBits int)
}

// BitReader is the source a Table decodes from.
type BitReader interface {
	ReadBit() (uint64, error)
}

// Table is a complete canonical prefix-code table over byte values.
type Table struct {
	lengths [NumSymbols]uint8
	codes   [NumSymbols]uint16

	// canonical decoding state
	counts  [MaxCodeLen + 1]int
	symbols [NumSymbols]byte
	maxLen  int

	fingerprint uint64
}

// FromLengths builds a table from per-symbol code lengths.
//
// Every length must be in [1, MaxCodeLen] and the lengths must satisfy the Kraft inequality,
// otherwise the returned error wraps errs.ErrInvalidTable.
func FromLengths(lengths [NumSymbols]uint8) (*Table, error) {
	var kraft uint64
	for sym, l := range lengths {
		if l == 0 {
			return nil, fmt.Errorf("%w: byte 0x%02x has no codeword", errs.ErrInvalidTable, sym)
		}
		if l > MaxCodeLen {
			return nil, fmt.Errorf("%w: byte 0x%02x code length %d exceeds %d", errs.ErrInvalidTable, sym, l, MaxCodeLen)
		}
		kraft += 1 << (MaxCodeLen - l)
	}
	if kraft > 1<<MaxCodeLen {
		return nil, fmt.Errorf("%w: code lengths are not prefix-free", errs.ErrInvalidTable)
	}

	t := &Table{lengths: lengths}
	t.build()

	return t, nil
}

// build assigns canonical codes and prepares the decoding tables.
func (t *Table) build() {
	for _, l := range t.lengths {
		t.counts[l]++
		t.maxLen = max(t.maxLen, int(l))
	}

	// Symbols ordered by (length, byte value).
	var offsets [MaxCodeLen + 2]int
	for l := 1; l <= MaxCodeLen; l++ {
		offsets[l+1] = offsets[l] + t.counts[l]
	}
	for sym, l := range t.lengths {
		t.symbols[offsets[l]] = byte(sym)
		offsets[l]++
	}

	var nextCode [MaxCodeLen + 1]int
	code := 0
	for l := 1; l <= MaxCodeLen; l++ {
		code = (code + t.counts[l-1]) << 1
		nextCode[l] = code
	}
	for sym, l := range t.lengths {
		t.codes[sym] = uint16(nextCode[l]) //nolint:gosec
		nextCode[l]++
	}

	t.fingerprint = hash.Fingerprint(fingerprintLabel, t.lengths[:])
}

// CodeLen returns the codeword length of b in bits.
func (t *Table) CodeLen(b byte) int {
	return int(t.lengths[b])
}

// Code returns the codeword of b and its length in bits.
func (t *Table) Code(b byte) (code uint16, length int) {
	return t.codes[b], int(t.lengths[b])
}

// Lengths returns a copy of the per-symbol code lengths.
func (t *Table) Lengths() [NumSymbols]uint8 {
	return t.lengths
}

// MaxLen returns the longest codeword length used by the table.
func (t *Table) MaxLen() int {
	return t.maxLen
}

// Fingerprint returns the 64-bit identity of the table, derived from its code lengths.
func (t *Table) Fingerprint() uint64 {
	return t.fingerprint
}

// EncodedBits returns the number of bits Encode would write for data.
func (t *Table) EncodedBits(data []byte) int {
	n := 0
	for _, b := range data {
		n += int(t.lengths[b])
	}

	return n
}

// Encode writes the codeword of each byte of data to w.
func (t *Table) Encode(w BitWriter, data []byte) {
	for _, b := range data {
		w.WriteBits(uint64(t.codes[b]), int(t.lengths[b]))
	}
}

// Decode reads one codeword from r and returns its byte value.
//
// Bits are consumed one at a time and matched against the canonical code ranges of each
// length. A bit pattern longer than MaxLen without a match wraps errs.ErrInvalidEncoding;
// running out of bits returns the reader's error.
func (t *Table) Decode(r BitReader) (byte, error) {
	code, first, index := 0, 0, 0
	for l := 1; l <= t.maxLen; l++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		code |= int(bit)

		count := t.counts[l]
		if code-count < first {
			return t.symbols[index+(code-first)], nil
		}
		index += count
		first += count
		first <<= 1
		code <<= 1
	}

	return 0, fmt.Errorf("%w: no codeword matches within %d bits", errs.ErrInvalidEncoding, t.maxLen)
}

// Equal reports whether two tables assign identical codes.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.lengths == other.lengths
}
