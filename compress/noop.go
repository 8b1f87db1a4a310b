package compress

// NoOpCompressor bypasses data without compression. It backs the
// CompressionNone path so plain and compressed inputs share one code
// path.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input data as-is.
//
// Note: the returned slice shares the same underlying memory as the
// input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns the input data as-is.
//
// Note: the returned slice shares the same underlying memory as the
// input.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
