// Package cfgpack provides a compact binary codec for small, schema-ordered configuration
// records.
//
// Property names and types are never written: they are implied by the position of each value
// in a schema known to both sides. Values are grouped by kind into four bit-packed pools
// rather than stored in declaration order, which keeps every record close to its information
// content.
//
// # Core Features
//
//   - Integer buckets selected by a unary prefix, smallest bucket first (4, 8, 16, 32, 64 bits)
//   - One bit per boolean
//   - Per-string choice between a canonical prefix-code table and a radix packer
//   - Heterogeneous, arbitrarily nested arrays with 2-bit element tags
//   - Optional slot index for decoding a single slot without walking the record
//
// # Basic Usage
//
//	s, _ := schema.NewBuilder("service").
//	    Int("listen_port").
//	    Bool("tls").
//	    String("host").
//	    Array("upstreams").
//	    Build()
//
//	codec, _ := cfgpack.NewCodec(s)
//
//	data, _ := codec.Encode(record.Record{
//	    record.Int(8443),
//	    record.Bool(true),
//	    record.String("api.example.org"),
//	    record.Array(record.String("10.0.0.1"), record.Int(8080)),
//	})
//
//	rec, err := codec.Decode(data)
//
// # Buffer Layout
//
//	[header: 4 pool byte lengths][IntPool][BoolPool][StringPool][TagPool]
//
// The header holds four uint16 lengths by default (WithWideHeader switches to uint32).
// Integers, string lengths and array lengths share IntPool; TagPool holds the kind tag of
// every array element. See the section package for the exact layout.
//
// # Versioning
//
// The schema and the string table are not stored in the record. Both sides must agree on
// them, and on the integer buckets and header options. The envelope package pins schema and
// table fingerprints next to the record for callers that persist or transmit records.
//
// # Package Structure
//
//   - schema: slot layout, fingerprint, YAML loading
//   - record: values and records
//   - table: canonical prefix-code tables, training, registry
//   - envelope: optional framing with version pinning and compression
//   - section, format: wire-level structures and enumerations
package cfgpack
