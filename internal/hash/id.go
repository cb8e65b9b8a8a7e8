// Package hash computes the 64-bit fingerprints that pin schemas and string tables.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Fingerprint hashes a domain label followed by the given parts.
//
// The label keeps fingerprints of different object types (schemas, tables) from colliding when
// their serialized descriptions happen to be identical.
func Fingerprint(label string, parts ...[]byte) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(label)
	_, _ = d.Write([]byte{0})
	for _, p := range parts {
		_, _ = d.Write(p)
	}

	return d.Sum64()
}
