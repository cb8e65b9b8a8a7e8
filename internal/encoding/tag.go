package encoding

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/bitstream"
)

// WriteTag appends the 2-bit tag of an array element kind.
func WriteTag(w *bitstream.Writer, k format.Kind) {
	if !k.Valid() {
		panic(fmt.Sprintf("encoding: invalid kind %d", k))
	}
	w.WriteBits(uint64(k), format.TagBits)
}

// ReadTag reads one array element tag.
func ReadTag(r *bitstream.Reader) (format.Kind, error) {
	v, err := r.ReadBits(format.TagBits)
	if err != nil {
		return 0, fmt.Errorf("array tag: %w", err)
	}

	k := format.Kind(v)
	if !k.Valid() {
		return 0, fmt.Errorf("%w: array tag %d", errs.ErrUnknownKind, v)
	}

	return k, nil
}
