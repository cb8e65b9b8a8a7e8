// Package schema describes the ordered slot layout that cfgpack records follow.
//
// A Schema is an immutable, ordered list of slots. Each slot has a kind (Integer, Boolean,
// String or Array) and an optional name. Names are never written to encoded records; the
// position of a slot is the only thing identifying it on the wire, so reordering slots is a
// breaking format change.
//
// Schemas can be built in code:
//
//	s, err := schema.NewBuilder("service").
//	    Version(3).
//	    Int("listen_port").
//	    Bool("tls").
//	    String("host").
//	    Array("upstreams").
//	    Build()
//
// or loaded from YAML:
//
//	name: service
//	version: 3
//	slots:
//	  - {name: listen_port, kind: integer}
//	  - {name: tls, kind: boolean}
//
// Fingerprint hashes a canonical CBOR description of the schema (name, version, slot kinds
// and names). Callers that persist encoded records pin this fingerprint next to the data
// (see the envelope package) to detect a schema change before decoding.
package schema
