package record

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/format"
)

// FromNative converts a Go value to a Value.
//
// Supported inputs are the signed and unsigned integer types (unsigned values above
// math.MaxInt64 are rejected), bool, string, []byte, Value, []Value and []any. This covers
// everything yaml.v3 produces for sequences of scalars.
func FromNative(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint64:
		return fromUint(v)
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case []byte:
		return Bytes(v), nil
	case []Value:
		return Array(v...), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			ev, err := FromNative(e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = ev
		}

		return Array(elems...), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported Go type %T", errs.ErrSchemaMismatch, x)
	}
}

func fromUint(v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return Value{}, fmt.Errorf("%w: integer %d overflows int64", errs.ErrSchemaMismatch, v)
	}

	return Int(int64(v)), nil //nolint:gosec
}

// Native converts v to plain Go values: int64, bool, string (holding arbitrary bytes) and []any.
func (v Value) Native() any {
	switch v.Kind() {
	case format.KindInteger:
		return v.num
	case format.KindBoolean:
		return v.flag
	case format.KindString:
		return string(v.str)
	default:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e.Native()
		}

		return out
	}
}

// FromNatives converts a list of Go values to a Record.
func FromNatives(xs []any) (Record, error) {
	rec := make(Record, len(xs))
	for i, x := range xs {
		v, err := FromNative(x)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		rec[i] = v
	}

	return rec, nil
}

// Natives converts every value of r with Value.Native.
func (r Record) Natives() []any {
	out := make([]any, len(r))
	for i, v := range r {
		out[i] = v.Native()
	}

	return out
}

// MarshalYAML implements yaml.Marshaler; a record is written as a sequence of plain values.
// Strings that are not valid UTF-8 come out as !!binary scalars.
func (r Record) MarshalYAML() (any, error) {
	return r.Natives(), nil
}

// ParseYAML reads a record written as a YAML sequence.
func ParseYAML(data []byte) (Record, error) {
	var xs []any
	if err := yaml.Unmarshal(data, &xs); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrSchemaMismatch, err)
	}

	return FromNatives(xs)
}
