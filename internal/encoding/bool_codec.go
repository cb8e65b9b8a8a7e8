package encoding

import (
	"fmt"

	"github.com/arloliu/cfgpack/internal/bitstream"
)

// BoolCodec writes one bit per boolean value.
type BoolCodec struct{}

// Write appends v as a single bit.
func (BoolCodec) Write(w *bitstream.Writer, v bool) {
	w.WriteBool(v)
}

// Read reads a single bit as a boolean.
func (BoolCodec) Read(r *bitstream.Reader) (bool, error) {
	v, err := r.ReadBool()
	if err != nil {
		return false, fmt.Errorf("boolean: %w", err)
	}

	return v, nil
}
