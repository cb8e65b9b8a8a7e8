package table

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
)

const (
	marshalVersion = 1
	// MarshaledSize is the size of a serialized table: one version byte plus 256 4-bit code lengths.
	MarshaledSize = 1 + NumSymbols/2
)

// MarshalBinary serializes the table as a version byte followed by the code lengths packed two
// per byte, high nibble first.
func (t *Table) MarshalBinary() ([]byte, error) {
	out := make([]byte, MarshaledSize)
	out[0] = marshalVersion
	for i := 0; i < NumSymbols; i += 2 {
		out[1+i/2] = t.lengths[i]<<4 | t.lengths[i+1]
	}

	return out, nil
}

// UnmarshalBinary restores a table serialized by MarshalBinary, validating it like FromLengths.
func (t *Table) UnmarshalBinary(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*t = *parsed

	return nil
}

// Parse decodes a table serialized by MarshalBinary.
func Parse(data []byte) (*Table, error) {
	if len(data) != MarshaledSize {
		return nil, fmt.Errorf("%w: serialized table is %d bytes, want %d", errs.ErrInvalidTable, len(data), MarshaledSize)
	}
	if data[0] != marshalVersion {
		return nil, fmt.Errorf("%w: unsupported table version %d", errs.ErrInvalidTable, data[0])
	}

	var lengths [NumSymbols]uint8
	for i, b := range data[1:] {
		lengths[2*i] = b >> 4
		lengths[2*i+1] = b & 0x0F
	}

	return FromLengths(lengths)
}
