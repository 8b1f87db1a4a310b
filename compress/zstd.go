package compress

// ZstdCompressor handles Zstandard frames.
//
// Two implementations back this type: a cgo build uses the libzstd
// binding for throughput, while cgo-free builds fall back to the pure
// Go implementation. Both produce and consume standard Zstandard
// frames, so archives are interchangeable between builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
