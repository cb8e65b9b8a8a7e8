// Package format defines the enumerations shared by the cfgpack wire format.
package format

type (
	Kind            uint8
	StringMode      uint8
	HeaderWidth     uint8
	CompressionType uint8
	Pool            uint8
)

// Kind values double as the 2-bit array element tags, so there can be at most four of them.
const (
	KindInteger Kind = 0x0 // KindInteger is a signed 64-bit integer slot.
	KindBoolean Kind = 0x1 // KindBoolean is a single-bit slot.
	KindString  Kind = 0x2 // KindString is an arbitrary byte string slot.
	KindArray   Kind = 0x3 // KindArray is a heterogeneous, possibly nested list slot.

	// NumKinds is the number of kinds a tag can express.
	NumKinds = 4
	// TagBits is the width of one array element tag.
	TagBits = 2
)

const (
	ModeTable StringMode = 0x0 // ModeTable encodes each byte with the canonical prefix-code table.
	ModeRadix StringMode = 0x1 // ModeRadix packs the bytes as one integer in base max+1.
)

// Pools appear in the buffer in this order.
const (
	PoolInt    Pool = 0x0 // PoolInt holds integers, string lengths and array lengths.
	PoolBool   Pool = 0x1 // PoolBool holds one bit per boolean.
	PoolString Pool = 0x2 // PoolString holds string mode selectors and payloads.
	PoolTag    Pool = 0x3 // PoolTag holds array element tags.

	// NumPools is the number of pools in every record.
	NumPools = 4
)

const (
	HeaderCompact HeaderWidth = 2 // HeaderCompact stores each pool length as uint16.
	HeaderWide    HeaderWidth = 4 // HeaderWide stores each pool length as uint32.
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Valid reports whether k is one of the four defined kinds.
func (k Kind) Valid() bool {
	return k <= KindArray
}

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindBoolean:
		return "Boolean"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	default:
		return "Unknown"
	}
}

func (p Pool) String() string {
	switch p {
	case PoolInt:
		return "IntPool"
	case PoolBool:
		return "BoolPool"
	case PoolString:
		return "StringPool"
	case PoolTag:
		return "TagPool"
	default:
		return "Unknown"
	}
}

func (m StringMode) String() string {
	switch m {
	case ModeTable:
		return "Table"
	case ModeRadix:
		return "Radix"
	default:
		return "Unknown"
	}
}

// Valid reports whether w is a supported header field width.
func (w HeaderWidth) Valid() bool {
	return w == HeaderCompact || w == HeaderWide
}

// MaxPoolBytes returns the largest pool byte length representable with width w.
func (w HeaderWidth) MaxPoolBytes() uint64 {
	if w == HeaderWide {
		return 1<<32 - 1
	}

	return 1<<16 - 1
}

func (w HeaderWidth) String() string {
	switch w {
	case HeaderCompact:
		return "Compact"
	case HeaderWide:
		return "Wide"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseKind converts a lower-case kind name, as used in schema files, to a Kind.
func ParseKind(name string) (Kind, bool) {
	switch name {
	case "integer", "int":
		return KindInteger, true
	case "boolean", "bool":
		return KindBoolean, true
	case "string", "str":
		return KindString, true
	case "array", "list":
		return KindArray, true
	default:
		return 0, false
	}
}

// ParseCompression converts a compression name, as used on the command line, to a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
