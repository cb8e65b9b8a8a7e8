package walk

import (
	"fmt"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
	"github.com/arloliu/cfgpack/internal/encoding"
	"github.com/arloliu/cfgpack/internal/pool"
	"github.com/arloliu/cfgpack/record"
)

const defaultStackCapacity = 16

// Config holds the codecs and limits of a walk.
type Config struct {
	Ints      *encoding.IntCodec
	Strings   *encoding.StringCodec
	MaxLength int // Largest string or array length accepted on decode
	MaxDepth  int // Deepest array nesting accepted; top-level arrays have depth 1
}

// SlotHook is called right before top-level slot i is visited.
type SlotHook func(i int)

// Stats counts what an encode walk produced.
type Stats struct {
	Values      int                  // Values visited, array elements included
	Kinds       [format.NumKinds]int // Values per kind
	StringModes [2]int               // Strings encoded per format.StringMode
	MaxDepth    int                  // Deepest array nesting seen
}

type encodeFrame struct {
	values []record.Value
	next   int
}

type decodeFrame struct {
	kinds []format.Kind
	out   []record.Value
	next  int
	slot  int // index of this array in the parent frame
}

var (
	encodeStacks = pool.NewSlicePool[encodeFrame](defaultStackCapacity)
	decodeStacks = pool.NewSlicePool[decodeFrame](defaultStackCapacity)
)

// Encode walks rec against kinds and appends every value to its pool.
//
// A top-level value whose kind differs from the schema, or nesting deeper than MaxDepth,
// fails with errs.ErrSchemaMismatch. stats and hook may be nil.
func Encode(cfg *Config, pools *encoding.Pools, kinds []format.Kind, rec record.Record, hook SlotHook, stats *Stats) error {
	if len(rec) != len(kinds) {
		return fmt.Errorf("%w: record has %d values, schema has %d slots", errs.ErrSchemaMismatch, len(rec), len(kinds))
	}
	for i, v := range rec {
		if v.Kind() != kinds[i] {
			return fmt.Errorf("%w: slot %d expects %s, got %s", errs.ErrSchemaMismatch, i, kinds[i], v.Kind())
		}
	}

	stack, release := encodeStacks.Get()
	defer func() { release(stack) }()

	stack = append(stack, encodeFrame{values: rec})
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.values) {
			stack = stack[:len(stack)-1]
			continue
		}

		if len(stack) == 1 && hook != nil {
			hook(top.next)
		}
		v := top.values[top.next]
		top.next++

		if stats != nil {
			stats.Values++
			stats.Kinds[v.Kind()]++
		}

		switch v.Kind() {
		case format.KindInteger:
			cfg.Ints.WriteInt(pools.Int, v.AsInt())
		case format.KindBoolean:
			encoding.BoolCodec{}.Write(pools.Bool, v.AsBool())
		case format.KindString:
			mode := cfg.Strings.Encode(pools.Int, pools.String, v.AsBytes())
			if stats != nil {
				stats.StringModes[mode]++
			}
		case format.KindArray:
			depth := len(stack)
			if depth > cfg.MaxDepth {
				return fmt.Errorf("%w: array nesting exceeds %d levels", errs.ErrSchemaMismatch, cfg.MaxDepth)
			}
			if stats != nil {
				stats.MaxDepth = max(stats.MaxDepth, depth)
			}

			elems := v.Elems()
			cfg.Ints.WriteUint(pools.Int, uint64(len(elems)))
			for _, e := range elems {
				if !e.Kind().Valid() {
					return fmt.Errorf("%w: array element kind %d", errs.ErrUnknownKind, e.Kind())
				}
				encoding.WriteTag(pools.Tag, e.Kind())
			}
			stack = append(stack, encodeFrame{values: elems})
		default:
			return fmt.Errorf("%w: value kind %d", errs.ErrUnknownKind, v.Kind())
		}
	}

	return nil
}

// Decode replays the walk over kinds, pulling every value from its pool.
//
// It does not check that the pools are exhausted; the caller does that once the walk is
// complete. hook may be nil.
func Decode(cfg *Config, readers *encoding.PoolReaders, kinds []format.Kind, hook SlotHook) (record.Record, error) {
	out := make([]record.Value, len(kinds))
	if err := decode(cfg, readers, kinds, out, hook); err != nil {
		return nil, err
	}

	return out, nil
}

// DecodeValue decodes a single value of the given kind, including any nested array content.
// The readers must be positioned at the value's first bits in every pool.
func DecodeValue(cfg *Config, readers *encoding.PoolReaders, kind format.Kind) (record.Value, error) {
	out := make([]record.Value, 1)
	if err := decode(cfg, readers, []format.Kind{kind}, out, nil); err != nil {
		return record.Value{}, err
	}

	return out[0], nil
}

func decode(cfg *Config, readers *encoding.PoolReaders, kinds []format.Kind, out []record.Value, hook SlotHook) error {
	stack, release := decodeStacks.Get()
	defer func() { release(stack) }()

	stack = append(stack, decodeFrame{kinds: kinds, out: out})
	for {
		top := &stack[len(stack)-1]
		if top.next == len(top.kinds) {
			if len(stack) == 1 {
				return nil
			}
			done := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parent := &stack[len(stack)-1]
			parent.out[done.slot] = record.Array(done.out...)

			continue
		}

		if len(stack) == 1 && hook != nil {
			hook(top.next)
		}
		i := top.next
		top.next++

		switch top.kinds[i] {
		case format.KindInteger:
			v, err := cfg.Ints.ReadInt(readers.Int)
			if err != nil {
				return err
			}
			top.out[i] = record.Int(v)
		case format.KindBoolean:
			v, err := encoding.BoolCodec{}.Read(readers.Bool)
			if err != nil {
				return err
			}
			top.out[i] = record.Bool(v)
		case format.KindString:
			v, err := cfg.Strings.Decode(readers.Int, readers.String, cfg.MaxLength)
			if err != nil {
				return err
			}
			top.out[i] = record.Bytes(v)
		case format.KindArray:
			if len(stack) > cfg.MaxDepth {
				return fmt.Errorf("%w: array nesting exceeds %d levels", errs.ErrInvalidEncoding, cfg.MaxDepth)
			}

			// Each element needs a tag, which bounds the length before allocating.
			limit := min(cfg.MaxLength, readers.Tag.Remaining()/format.TagBits)
			n, err := cfg.Ints.ReadLength(readers.Int, limit)
			if err != nil {
				return fmt.Errorf("array length: %w", err)
			}

			elemKinds := make([]format.Kind, n)
			for j := range elemKinds {
				k, err := encoding.ReadTag(readers.Tag)
				if err != nil {
					return err
				}
				elemKinds[j] = k
			}
			stack = append(stack, decodeFrame{kinds: elemKinds, out: make([]record.Value, n), slot: i})
		default:
			return fmt.Errorf("%w: schema kind %d", errs.ErrUnknownKind, top.kinds[i])
		}
	}
}
