// Package endian selects the byte order of the fixed-width header fields.
//
// Only the pool-length header and the envelope header have byte order; the pool contents
// are MSB-first bitstreams and do not depend on it. Little-endian is the default:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint16(buf, uint16(n))
//
// All functions in this package are safe for concurrent use. The returned engines are
// immutable and stateless.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForOrder returns the big-endian engine if bigEndian is set, the little-endian engine otherwise.
func ForOrder(bigEndian bool) EndianEngine {
	if bigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// Name returns "big-endian" or "little-endian".
func Name(engine EndianEngine) string {
	if engine == GetBigEndianEngine() {
		return "big-endian"
	}

	return "little-endian"
}
