package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression: best ratio of the built-in codecs, suited to
// records that are stored long term or sent over constrained links.
//
// The default build uses the pure Go klauspost/compress implementation. Building with the
// gozstd tag (and cgo enabled) switches to the libzstd binding from valyala/gozstd. Both
// produce standard zstd frames and interoperate.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrame rejects a frame whose declared content size differs from rawSize, before
// the decoder sizes its output from the header.
func checkZstdFrame(data []byte, rawSize int) error {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}
	if h.HasFCS && h.FrameContentSize != uint64(rawSize) { //nolint:gosec
		return fmt.Errorf("zstd frame declares %d bytes, want %d", h.FrameContentSize, rawSize)
	}

	return nil
}
