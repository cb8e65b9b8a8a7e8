package cfgpack

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/encoding"
	"github.com/arloliu/cfgpack/internal/walk"
	"github.com/arloliu/cfgpack/record"
)

const slotIndexVersion = 1

// SlotIndex records where every top-level slot of an encoded record starts: one bit offset
// per pool, per slot. It lets DecodeSlot read a single slot without walking the others.
//
// The index is a sibling of the encoded record, never part of it.
type SlotIndex struct {
	offsets [][format.NumPools]int
}

// Len returns the number of slots in the index.
func (idx *SlotIndex) Len() int {
	return len(idx.offsets)
}

// Offsets returns the starting bit offset of slot i in every pool.
func (idx *SlotIndex) Offsets(i int) [format.NumPools]int {
	return idx.offsets[i]
}

// MarshalBinary serializes the index: a version byte, the slot count, then for each pool the
// slot offsets as delta-encoded uvarints. Offsets within a pool never decrease.
func (idx *SlotIndex) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, 2+len(idx.offsets)*format.NumPools)
	out = append(out, slotIndexVersion)
	out = binary.AppendUvarint(out, uint64(len(idx.offsets)))

	for p := range format.NumPools {
		prev := 0
		for _, off := range idx.offsets {
			out = binary.AppendUvarint(out, uint64(off[p]-prev)) //nolint:gosec
			prev = off[p]
		}
	}

	return out, nil
}

// UnmarshalBinary restores an index serialized by MarshalBinary.
func (idx *SlotIndex) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != slotIndexVersion {
		return fmt.Errorf("%w: missing or unsupported version", errs.ErrInvalidIndex)
	}
	data = data[1:]

	count, n := binary.Uvarint(data)
	if n <= 0 {
		return fmt.Errorf("%w: bad slot count", errs.ErrInvalidIndex)
	}
	data = data[n:]

	// Every offset takes at least one byte.
	if count > uint64(len(data)/format.NumPools) {
		return fmt.Errorf("%w: %d slots do not fit in %d bytes", errs.ErrInvalidIndex, count, len(data))
	}

	offsets := make([][format.NumPools]int, count)
	for p := range format.NumPools {
		prev := uint64(0)
		for i := range offsets {
			delta, n := binary.Uvarint(data)
			if n <= 0 {
				return fmt.Errorf("%w: bad offset for slot %d in %s", errs.ErrInvalidIndex, i, format.Pool(p))
			}
			data = data[n:]

			prev += delta
			if prev > 1<<40 {
				return fmt.Errorf("%w: offset overflow in %s", errs.ErrInvalidIndex, format.Pool(p))
			}
			offsets[i][p] = int(prev)
		}
	}
	if len(data) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidIndex, len(data))
	}

	idx.offsets = offsets

	return nil
}

// EncodeIndexed encodes rec like Encode and also returns its slot index.
func (c *Codec) EncodeIndexed(rec record.Record) ([]byte, *SlotIndex, error) {
	idx := &SlotIndex{offsets: make([][format.NumPools]int, 0, len(rec))}
	hook := func(_ int, pools *encoding.Pools) {
		idx.offsets = append(idx.offsets, pools.Positions())
	}

	out, _, err := c.encode(rec, hook, nil)
	if err != nil {
		return nil, nil, err
	}

	return out, idx, nil
}

// DecodeSlot decodes top-level slot i of data using idx.
//
// The index must have been built for data: its slot count must match the schema, and the
// decoded slot must end exactly where the next slot starts (or, for the last slot, where the
// pools end), otherwise the error wraps errs.ErrInvalidIndex. A slot outside the schema wraps errs.ErrSlotOutOfRange.
func (c *Codec) DecodeSlot(data []byte, idx *SlotIndex, i int) (record.Value, error) {
	if i < 0 || i >= c.schema.Len() {
		return record.Value{}, fmt.Errorf("%w: slot %d, schema has %d", errs.ErrSlotOutOfRange, i, c.schema.Len())
	}
	if idx == nil || idx.Len() != c.schema.Len() {
		return record.Value{}, fmt.Errorf("%w: index does not match schema", errs.ErrInvalidIndex)
	}

	readers, err := c.readers(data)
	if err != nil {
		return record.Value{}, err
	}
	if err := readers.Seek(idx.offsets[i]); err != nil {
		return record.Value{}, fmt.Errorf("%w: %w", errs.ErrInvalidIndex, err)
	}

	v, err := walk.DecodeValue(c.walk, readers, c.schema.Slot(i).Kind)
	if err != nil {
		return record.Value{}, err
	}

	if i+1 < idx.Len() {
		next := idx.offsets[i+1]
		for p := range format.NumPools {
			if got := readers.Reader(format.Pool(p)).Consumed(); got != next[p] {
				return record.Value{}, fmt.Errorf("%w: slot %d ends at bit %d of %s, next slot starts at %d",
					errs.ErrInvalidIndex, i, got, format.Pool(p), next[p])
			}
		}
	} else if err := readers.CheckExhausted(); err != nil {
		return record.Value{}, fmt.Errorf("%w: last slot does not end the record: %w", errs.ErrInvalidIndex, err)
	}

	return v, nil
}

// DecodeSlotByName decodes the top-level slot with the given schema name.
func (c *Codec) DecodeSlotByName(data []byte, idx *SlotIndex, name string) (record.Value, error) {
	i, ok := c.schema.Index(name)
	if !ok {
		return record.Value{}, fmt.Errorf("%w: no slot named %q", errs.ErrSlotOutOfRange, name)
	}

	return c.DecodeSlot(data, idx, i)
}
