package encoding

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/bitstream"
	"github.com/arloliu/cfgpack/table"
)

// StringCodec encodes byte strings with a per-string choice between the table coder
// (format.ModeTable) and the radix packer (format.ModeRadix).
type StringCodec struct {
	table *table.Table
	ints  *IntCodec
}

// NewStringCodec creates a string codec. Lengths are written with ints; tbl drives mode 0.
func NewStringCodec(tbl *table.Table, ints *IntCodec) *StringCodec {
	return &StringCodec{table: tbl, ints: ints}
}

// Costs returns the payload sizes in bits of both modes for data, excluding the length and
// the selector bit. The radix cost includes its 8-bit maximum-byte field.
func (c *StringCodec) Costs(data []byte) (tableBits, radixBits int) {
	return c.table.EncodedBits(data), radixEncodedBits(data)
}

// Mode returns the mode Encode selects for data: the smaller payload, mode 0 on a tie.
func (c *StringCodec) Mode(data []byte) format.StringMode {
	tableBits, radixBits := c.Costs(data)
	if radixBits < tableBits {
		return format.ModeRadix
	}

	return format.ModeTable
}

// Encode writes the length of data to lengths, then the selector bit and payload to payload.
// It returns the selected mode.
func (c *StringCodec) Encode(lengths, payload *bitstream.Writer, data []byte) format.StringMode {
	c.ints.WriteUint(lengths, uint64(len(data)))

	mode := c.Mode(data)
	payload.WriteBit(uint64(mode))

	switch mode {
	case format.ModeRadix:
		writeRadix(payload, data)
	default:
		c.table.Encode(payload, data)
	}

	return mode
}

// Decode reads one string. Lengths above maxLen fail with errs.ErrInvalidEncoding.
func (c *StringCodec) Decode(lengths, payload *bitstream.Reader, maxLen int) ([]byte, error) {
	n, err := c.ints.ReadLength(lengths, maxLen)
	if err != nil {
		return nil, fmt.Errorf("string length: %w", err)
	}

	sel, err := payload.ReadBit()
	if err != nil {
		return nil, fmt.Errorf("string selector: %w", err)
	}

	if format.StringMode(sel) == format.ModeRadix {
		return readRadix(payload, n)
	}

	// Every codeword is at least one bit long.
	if payload.Remaining() < n {
		return nil, fmt.Errorf("%w: %d table codewords need at least %d bits, pool has %d left",
			errs.ErrTruncatedInput, n, n, payload.Remaining())
	}

	out := make([]byte, n)
	for i := range out {
		b, err := c.table.Decode(payload)
		if err != nil {
			return nil, fmt.Errorf("string byte %d: %w", i, err)
		}
		out[i] = b
	}

	return out, nil
}
