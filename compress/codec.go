package compress

import (
	"fmt"

	"github.com/arloliu/cfgpack/format"
)

// Compressor compresses one enveloped record payload.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice may alias data for the no-op codec; otherwise it is newly allocated
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
type Decompressor interface {
	// Decompress decompresses data whose original size is rawSize bytes.
	//
	// rawSize comes from the envelope header, which bounds it before calling. A result of any
	// other size is an error. Codecs that can tell from data alone that rawSize is unreachable
	// fail before allocating.
	Decompress(data []byte, rawSize int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

func checkSize(algorithm string, out []byte, rawSize int) ([]byte, error) {
	if len(out) != rawSize {
		return nil, fmt.Errorf("%s decompression produced %d bytes, want %d", algorithm, len(out), rawSize)
	}

	return out, nil
}
