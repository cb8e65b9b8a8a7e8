// Package record holds the values cfgpack encodes: a Record is the ordered list of top-level
// values of one schema instance, and a Value is a tagged variant of the four kinds.
package record

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/cfgpack/format"
)

// Value is one Integer, Boolean, String or Array value. The zero Value is Integer 0.
type Value struct {
	kind  format.Kind
	num   int64
	flag  bool
	str   []byte
	elems []Value
}

// Int returns an Integer value.
func Int(v int64) Value {
	return Value{kind: format.KindInteger, num: v}
}

// Bool returns a Boolean value.
func Bool(v bool) Value {
	return Value{kind: format.KindBoolean, flag: v}
}

// String returns a String value holding the bytes of s.
func String(s string) Value {
	return Value{kind: format.KindString, str: []byte(s)}
}

// Bytes returns a String value holding b. The slice is not copied.
func Bytes(b []byte) Value {
	return Value{kind: format.KindString, str: b}
}

// Array returns an Array value with the given elements. The slice is not copied.
func Array(elems ...Value) Value {
	return Value{kind: format.KindArray, elems: elems}
}

// Kind returns the kind of v.
func (v Value) Kind() format.Kind { return v.kind }

// AsInt returns the integer held by v, or 0 if v is not an Integer.
func (v Value) AsInt() int64 { return v.num }

// AsBool returns the boolean held by v, or false if v is not a Boolean.
func (v Value) AsBool() bool { return v.flag }

// AsBytes returns the bytes held by v, or nil if v is not a String.
func (v Value) AsBytes() []byte { return v.str }

// AsString returns the bytes held by v as a Go string.
func (v Value) AsString() string { return string(v.str) }

// Elems returns the elements of an Array value, or nil for any other kind.
func (v Value) Elems() []Value { return v.elems }

// Len returns the byte length of a String or the element count of an Array.
func (v Value) Len() int {
	switch v.kind {
	case format.KindString:
		return len(v.str)
	case format.KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Equal reports whether v and o have the same kind and content. Nil and empty strings or
// arrays are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case format.KindInteger:
		return v.num == o.num
	case format.KindBoolean:
		return v.flag == o.flag
	case format.KindString:
		return bytes.Equal(v.str, o.str)
	case format.KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)

	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case format.KindInteger:
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case format.KindBoolean:
		sb.WriteString(strconv.FormatBool(v.flag))
	case format.KindString:
		sb.WriteString(strconv.Quote(string(v.str)))
	case format.KindArray:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.format(sb)
		}
		sb.WriteByte(']')
	default:
		fmt.Fprintf(sb, "<kind %d>", v.kind)
	}
}

// Record is the ordered list of top-level values of one schema instance.
type Record []Value

// Equal reports whether two records hold equal values in the same order.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}

	return true
}

// Kinds returns the kind of every top-level value.
func (r Record) Kinds() []format.Kind {
	kinds := make([]format.Kind, len(r))
	for i, v := range r {
		kinds[i] = v.kind
	}

	return kinds
}

func (r Record) String() string {
	return Array(r...).String()
}
