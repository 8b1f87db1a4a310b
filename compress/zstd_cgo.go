//go:build cgo

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

// Compress compresses the input data using Zstandard compression.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses a Zstandard frame back into the original data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}

func newZstdReader(r io.Reader) (io.Reader, error) {
	return &zstdStreamReader{zr: gozstd.NewReader(r)}, nil
}

// zstdStreamReader releases the underlying C reader once the stream is
// exhausted.
type zstdStreamReader struct {
	zr       *gozstd.Reader
	released bool
}

func (r *zstdStreamReader) Read(p []byte) (int, error) {
	if r.released {
		return 0, io.EOF
	}

	n, err := r.zr.Read(p)
	if err == io.EOF {
		r.zr.Release()
		r.released = true
	}

	return n, err
}
