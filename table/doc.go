// Package table provides the canonical prefix-code tables used by cfgpack's table string mode.
//
// A Table maps every one of the 256 byte values to a codeword of 1 to MaxCodeLen bits.
// Completeness is mandatory: arbitrary binary content must always be encodable, so
// every constructor either guarantees it (FromCounts, Train, Common) or verifies it
// (FromLengths, UnmarshalBinary).
//
// Tables are never embedded in encoded records. They are built out of band from a
// representative corpus, versioned next to the schema, and handed to both the encoder
// and the decoder:
//
//	tbl := table.Train(sampleConfigs...)
//	blob, _ := tbl.MarshalBinary()   // ship alongside the schema
//
//	tbl, _ = table.Parse(blob)
//	codec, _ := cfgpack.NewCodec(s, cfgpack.WithTable(tbl))
//
// Codes are canonical (ordered by length, then by byte value), so a table is fully
// described by its 256 code lengths. Fingerprint hashes those lengths; callers that
// pin records to a table version compare fingerprints (see the envelope package).
//
// Tables are immutable and safe for concurrent use.
package table
