// Package envelope frames encoded records for storage and transport.
//
// A cfgpack record carries no schema information, so a reader must already know the schema
// and string table it was written with. An envelope pins both by fingerprint and can
// compress the record and attach a slot index:
//
//	+--------------------+----------------------------+------------------------+
//	| Header (32 bytes)  | Payload (PayloadLength)    | Slot index (optional)  |
//	+--------------------+----------------------------+------------------------+
//
// Header layout (32 bytes):
//
//	Offset | Size | Field
//	-------|------|--------------------------------------------
//	0      | 2    | Options (magic, endianness, header width, index flag; always little-endian)
//	2      | 1    | Compression type
//	3      | 1    | Reserved (0)
//	4      | 8    | Schema fingerprint
//	12     | 8    | Table fingerprint
//	20     | 4    | Payload length
//	24     | 4    | Raw record length
//	28     | 4    | Slot index length
//
// The record codec never reads envelopes; they are a caller-side convenience.
package envelope
