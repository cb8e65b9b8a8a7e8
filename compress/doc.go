// Package compress provides the payload codecs of the cfgpack envelope.
//
// cfgpack records are compact by construction and are usually too small for general-purpose
// compression to pay off. The envelope package can still compress a record payload when the
// record carries long strings or large arrays; each record is compressed independently.
//
// # Available Codecs
//
//   - NoOpCompressor: no compression (format.CompressionNone)
//   - ZstdCompressor: Zstandard, best ratio (format.CompressionZstd)
//   - S2Compressor: S2, fastest (format.CompressionS2)
//   - LZ4Compressor: LZ4 block format (format.CompressionLZ4)
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(record)
//	...
//	record, err = codec.Decompress(packed, len(record))
//
// Decompress takes the original size, which the envelope header stores, and rejects any
// payload that does not decompress to exactly that many bytes.
//
// # Build Tags
//
// Zstd uses github.com/klauspost/compress/zstd by default. Build with -tags gozstd and cgo
// enabled to use github.com/valyala/gozstd (libzstd) instead.
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool encoder and decoder caches and are safe
// for concurrent use.
package compress
