package walk

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/encoding"
	"github.com/arloliu/cfgpack/record"
	"github.com/arloliu/cfgpack/table"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	ints, err := encoding.NewIntCodec(encoding.DefaultBuckets()...)
	require.NoError(t, err)

	return &Config{
		Ints:      ints,
		Strings:   encoding.NewStringCodec(table.Common(), ints),
		MaxLength: 1 << 20,
		MaxDepth:  64,
	}
}

type encoded struct {
	pools     [format.NumPools][]byte
	positions [format.NumPools]int
}

func encodeRecord(t *testing.T, cfg *Config, kinds []format.Kind, rec record.Record, stats *Stats) encoded {
	t.Helper()

	pools := encoding.NewPools()
	defer pools.Release()

	require.NoError(t, Encode(cfg, pools, kinds, rec, nil, stats))

	var out encoded
	out.positions = pools.Positions()
	for i := range format.NumPools {
		out.pools[i] = append([]byte(nil), pools.Writer(format.Pool(i)).Bytes()...)
	}

	return out
}

func decodeRecord(t *testing.T, cfg *Config, kinds []format.Kind, enc encoded) record.Record {
	t.Helper()

	readers := encoding.NewPoolReaders(enc.pools)
	rec, err := Decode(cfg, readers, kinds, nil)
	require.NoError(t, err)
	require.NoError(t, readers.CheckExhausted())

	return rec
}

func TestWalk_Heterogeneous(t *testing.T) {
	cfg := testConfig(t)
	kinds := []format.Kind{format.KindArray}
	rec := record.Record{
		record.Array(record.Int(5), record.String("x"), record.Bool(false), record.Array(record.Int(-3))),
	}

	var stats Stats
	enc := encodeRecord(t, cfg, kinds, rec, &stats)

	// Tags: outer {Int, String, Bool, Array}, inner {Int}.
	require.Equal(t, 5*format.TagBits, enc.positions[format.PoolTag])
	require.Equal(t, []byte{0x27, 0x00}, enc.pools[format.PoolTag])
	require.Equal(t, 1, enc.positions[format.PoolBool])

	require.Equal(t, 6, stats.Values)
	require.Equal(t, 2, stats.MaxDepth)
	require.Equal(t, 2, stats.Kinds[format.KindInteger])
	require.Equal(t, 2, stats.Kinds[format.KindArray])

	got := decodeRecord(t, cfg, kinds, enc)
	require.True(t, rec.Equal(got), "got %s", got)

	// The nested integer belongs to the nested array, not to the parent.
	inner := got[0].Elems()[3]
	require.Equal(t, format.KindArray, inner.Kind())
	require.Equal(t, int64(-3), inner.Elems()[0].AsInt())
	require.Len(t, got[0].Elems(), 4)
}

func TestWalk_RoundTripShapes(t *testing.T) {
	cfg := testConfig(t)

	deep := record.Int(1)
	for range 40 {
		deep = record.Array(deep, record.Bool(true))
	}

	cases := map[string]struct {
		kinds []format.Kind
		rec   record.Record
	}{
		"empty schema": {nil, record.Record{}},
		"scalars": {
			[]format.Kind{format.KindInteger, format.KindBoolean, format.KindString},
			record.Record{record.Int(-1), record.Bool(true), record.String("")},
		},
		"empty arrays": {
			[]format.Kind{format.KindArray, format.KindArray},
			record.Record{record.Array(), record.Array(record.Array(), record.Array())},
		},
		"deep nesting": {
			[]format.Kind{format.KindArray, format.KindInteger},
			record.Record{deep, record.Int(99)},
		},
		"binary strings": {
			[]format.Kind{format.KindString, format.KindArray},
			record.Record{
				record.Bytes([]byte{0x00, 0xFF, 0x80}),
				record.Array(record.Bytes([]byte{1, 2, 3}), record.String("config.yaml")),
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			enc := encodeRecord(t, cfg, tc.kinds, tc.rec, nil)
			got := decodeRecord(t, cfg, tc.kinds, enc)
			require.True(t, tc.rec.Equal(got), "got %s", got)
		})
	}
}

func TestWalk_BoolDensity(t *testing.T) {
	cfg := testConfig(t)

	t.Run("no booleans", func(t *testing.T) {
		enc := encodeRecord(t, cfg, []format.Kind{format.KindInteger, format.KindString},
			record.Record{record.Int(3), record.String("abc")}, nil)
		require.Zero(t, enc.positions[format.PoolBool])
		require.Empty(t, enc.pools[format.PoolBool])
	})

	t.Run("nested booleans count once each", func(t *testing.T) {
		rec := record.Record{
			record.Bool(true),
			record.Array(record.Bool(false), record.Array(record.Bool(true), record.Array(record.Bool(true)))),
		}
		enc := encodeRecord(t, cfg, []format.Kind{format.KindBoolean, format.KindArray}, rec, nil)
		require.Equal(t, 4, enc.positions[format.PoolBool])
		require.Equal(t, []byte{0xB0}, enc.pools[format.PoolBool])
	})
}

func TestWalk_SlotHook(t *testing.T) {
	cfg := testConfig(t)
	kinds := []format.Kind{format.KindInteger, format.KindArray, format.KindString}
	rec := record.Record{record.Int(1), record.Array(record.Int(2), record.Int(3)), record.String("s")}

	pools := encoding.NewPools()
	defer pools.Release()

	var offsets [][format.NumPools]int
	hook := func(i int) {
		require.Equal(t, len(offsets), i)
		offsets = append(offsets, pools.Positions())
	}
	require.NoError(t, Encode(cfg, pools, kinds, rec, hook, nil))
	require.Len(t, offsets, 3)
	require.Equal(t, [format.NumPools]int{0, 0, 0, 0}, offsets[0])
	require.Equal(t, cfg.Ints.EncodedBits(encoding.ZigZagEncode(int64(1))), offsets[1][format.PoolInt])

	// Decode slot 2 alone from its recorded offsets.
	var bufs [format.NumPools][]byte
	for i := range format.NumPools {
		bufs[i] = pools.Writer(format.Pool(i)).Bytes()
	}
	readers := encoding.NewPoolReaders(bufs)
	require.NoError(t, readers.Seek(offsets[2]))

	v, err := DecodeValue(cfg, readers, format.KindString)
	require.NoError(t, err)
	require.Equal(t, "s", v.AsString())

	require.NoError(t, readers.Seek(offsets[1]))
	v, err = DecodeValue(cfg, readers, format.KindArray)
	require.NoError(t, err)
	require.True(t, rec[1].Equal(v))
}

func TestEncode_SchemaMismatch(t *testing.T) {
	cfg := testConfig(t)
	pools := encoding.NewPools()
	defer pools.Release()

	err := Encode(cfg, pools, []format.Kind{format.KindInteger}, record.Record{record.Bool(true)}, nil, nil)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	err = Encode(cfg, pools, []format.Kind{format.KindInteger}, record.Record{}, nil, nil)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)

	shallow := *cfg
	shallow.MaxDepth = 2
	deep := record.Array(record.Array(record.Array()))
	err = Encode(&shallow, pools, []format.Kind{format.KindArray}, record.Record{deep}, nil, nil)
	require.ErrorIs(t, err, errs.ErrSchemaMismatch)
}

func TestDecode_Limits(t *testing.T) {
	cfg := testConfig(t)
	kinds := []format.Kind{format.KindArray}

	deep := record.Array(record.Array(record.Array(record.Int(1))))
	enc := encodeRecord(t, cfg, kinds, record.Record{deep}, nil)

	shallow := *cfg
	shallow.MaxDepth = 2
	_, err := Decode(&shallow, encoding.NewPoolReaders(enc.pools), kinds, nil)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)

	long := record.Array(record.Int(1), record.Int(2), record.Int(3))
	enc = encodeRecord(t, cfg, kinds, record.Record{long}, nil)
	short := *cfg
	short.MaxLength = 2
	_, err = Decode(&short, encoding.NewPoolReaders(enc.pools), kinds, nil)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestDecode_ArrayLengthBoundedByTags(t *testing.T) {
	cfg := testConfig(t)

	// IntPool claims a 200-element array but TagPool holds a single byte.
	pools := encoding.NewPools()
	defer pools.Release()
	cfg.Ints.WriteUint(pools.Int, 200)
	pools.Tag.WriteBits(0, 8)

	var bufs [format.NumPools][]byte
	for i := range format.NumPools {
		bufs[i] = pools.Writer(format.Pool(i)).Bytes()
	}

	_, err := Decode(cfg, encoding.NewPoolReaders(bufs), []format.Kind{format.KindArray}, nil)
	require.ErrorIs(t, err, errs.ErrInvalidEncoding)
}

func TestDecode_Truncated(t *testing.T) {
	cfg := testConfig(t)
	kinds := []format.Kind{format.KindInteger, format.KindString}
	enc := encodeRecord(t, cfg, kinds, record.Record{record.Int(1 << 40), record.String("truncate me")}, nil)

	enc.pools[format.PoolString] = enc.pools[format.PoolString][:2]
	_, err := Decode(cfg, encoding.NewPoolReaders(enc.pools), kinds, nil)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}
