package cfgpack

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/record"
	"github.com/arloliu/cfgpack/schema"
)

func TestCodec_DecodeSlot(t *testing.T) {
	s := serviceSchema(t)
	c := newCodec(t, s)
	rec := serviceRecord()

	data, idx, err := c.EncodeIndexed(rec)
	require.NoError(t, err)
	require.Equal(t, s.Len(), idx.Len())
	require.Equal(t, [format.NumPools]int{}, idx.Offsets(0))

	plain, err := c.Encode(rec)
	require.NoError(t, err)
	require.Equal(t, plain, data, "indexing must not change the encoding")

	for i := range s.Len() {
		v, err := c.DecodeSlot(data, idx, i)
		require.NoError(t, err)
		require.True(t, rec[i].Equal(v), "slot %d: got %s", i, v)
	}

	v, err := c.DecodeSlotByName(data, idx, "upstreams")
	require.NoError(t, err)
	require.True(t, rec[3].Equal(v))

	_, err = c.DecodeSlotByName(data, idx, "missing")
	require.ErrorIs(t, err, errs.ErrSlotOutOfRange)

	_, err = c.DecodeSlot(data, idx, s.Len())
	require.ErrorIs(t, err, errs.ErrSlotOutOfRange)

	_, err = c.DecodeSlot(data, idx, -1)
	require.ErrorIs(t, err, errs.ErrSlotOutOfRange)

	_, err = c.DecodeSlot(data, nil, 0)
	require.ErrorIs(t, err, errs.ErrInvalidIndex)
}

func TestSlotIndex_MarshalBinary(t *testing.T) {
	c := newCodec(t, serviceSchema(t))
	data, idx, err := c.EncodeIndexed(serviceRecord())
	require.NoError(t, err)

	raw, err := idx.MarshalBinary()
	require.NoError(t, err)

	var parsed SlotIndex
	require.NoError(t, parsed.UnmarshalBinary(raw))
	require.Equal(t, idx.Len(), parsed.Len())
	for i := range idx.Len() {
		require.Equal(t, idx.Offsets(i), parsed.Offsets(i))
	}

	v, err := c.DecodeSlot(data, &parsed, 5)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xFF, 0x10, 0x80, 0x7F}, v.AsBytes())

	invalid := map[string][]byte{
		"empty":         nil,
		"bad version":   append([]byte{2}, raw[1:]...),
		"trailing byte": append(append([]byte{}, raw...), 0),
		"truncated":     raw[:len(raw)-1],
	}
	for name, b := range invalid {
		t.Run(name, func(t *testing.T) {
			var idx SlotIndex
			require.ErrorIs(t, idx.UnmarshalBinary(b), errs.ErrInvalidIndex)
		})
	}
}

func TestCodec_DecodeSlotForeignIndex(t *testing.T) {
	s := schema.MustNew("pair", 1,
		schema.Slot{Name: "n", Kind: format.KindInteger},
		schema.Slot{Name: "s", Kind: format.KindString},
	)
	c := newCodec(t, s)

	_, idx, err := c.EncodeIndexed(record.Record{record.Int(1), record.String("a")})
	require.NoError(t, err)

	other, err := c.Encode(record.Record{record.Int(1 << 40), record.String("a")})
	require.NoError(t, err)

	_, err = c.DecodeSlot(other, idx, 0)
	require.ErrorIs(t, err, errs.ErrInvalidIndex)
}

func TestCodec_DecodeSlotLastSlotLeavesBits(t *testing.T) {
	s := schema.MustNew("flagged", 1,
		schema.Slot{Name: "enabled", Kind: format.KindBoolean},
		schema.Slot{Name: "limit", Kind: format.KindInteger},
	)
	c := newCodec(t, s)

	data, idx, err := c.EncodeIndexed(record.Record{record.Bool(true), record.Int(7)})
	require.NoError(t, err)

	v, err := c.DecodeSlot(data, idx, 1)
	require.NoError(t, err)
	require.True(t, record.Int(7).Equal(v))

	// An index that places the last slot before the boolean leaves the Bool pool unread.
	shifted := &SlotIndex{offsets: append([][format.NumPools]int(nil), idx.offsets...)}
	shifted.offsets[1][format.PoolBool] = 0

	_, err = c.DecodeSlot(data, shifted, 1)
	require.ErrorIs(t, err, errs.ErrInvalidIndex)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}
