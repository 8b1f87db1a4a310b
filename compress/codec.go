// Package compress provides transparent decompression for COMTRADE
// input files.
//
// Disturbance recordings are routinely archived compressed (a gzipped
// .dat next to a plain .cfg is common). The decoding engine never
// requires a particular compression: every input stream is sniffed by
// magic number and decompressed on the fly when one of the supported
// framings is recognized.
//
// Supported framings:
//   - None: plain input, passed through
//   - Gzip: RFC 1952 streams
//   - Zstd: Zstandard frames
//   - S2: S2/Snappy framed streams
//   - LZ4: LZ4 frame format
//
// The Codec interface covers both directions; compression is used by
// tests and by callers producing compressed archives, decompression by
// the load path.
package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/gridsignal/comtrade/errs"
	"github.com/gridsignal/comtrade/format"
)

// Compressor compresses a whole buffer.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a whole buffer.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original
	// result. It returns an error if the data is corrupted or uses an
	// incompatible framing.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// Magic prefixes of the supported framings.
var (
	gzipMagic   = []byte{0x1f, 0x8b}
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic     = []byte{0xff, 0x06, 0x00, 0x00} // chunk header, followed by a stream identifier
	snappyIdent = []byte("sNaPpY")
	s2Ident     = []byte("S2sTwO")
)

// DetectHeaderSize is the number of leading bytes Detect needs to
// classify every supported framing.
const DetectHeaderSize = 10

// Detect classifies the compression framing of an input by its leading
// bytes. Inputs shorter than DetectHeaderSize are classified on what is
// available; unrecognized input is CompressionNone.
func Detect(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return format.CompressionGzip
	case bytes.HasPrefix(head, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, s2Magic):
		ident := head[len(s2Magic):]
		if bytes.HasPrefix(ident, snappyIdent) || bytes.HasPrefix(ident, s2Ident) {
			return format.CompressionS2
		}

		return format.CompressionNone
	default:
		return format.CompressionNone
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
}

// DecompressAll sniffs and decompresses a whole buffer in one shot.
// Plain input comes back unchanged.
//
// Returns the decompressed data and the detected compression type.
func DecompressAll(data []byte) ([]byte, format.CompressionType, error) {
	ctype := Detect(data)
	codec, err := GetCodec(ctype)
	if err != nil {
		return nil, ctype, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, ctype, fmt.Errorf("decompressing %s input: %w", ctype, err)
	}

	return out, ctype, nil
}

// NewReader sniffs the stream and wraps it in the matching decompressing
// reader. Plain streams are returned buffered but otherwise untouched.
//
// The sniff consumes nothing: the returned reader always yields the
// decompressed (or original) stream from its first byte.
func NewReader(r io.Reader) (io.Reader, format.CompressionType, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(DetectHeaderSize)
	if err != nil && err != io.EOF {
		return nil, format.CompressionNone, err
	}

	ctype := Detect(head)
	switch ctype {
	case format.CompressionGzip:
		zr, err := newGzipReader(br)
		if err != nil {
			return nil, ctype, fmt.Errorf("opening gzip stream: %w", err)
		}

		return zr, ctype, nil
	case format.CompressionZstd:
		zr, err := newZstdReader(br)
		if err != nil {
			return nil, ctype, fmt.Errorf("opening zstd stream: %w", err)
		}

		return zr, ctype, nil
	case format.CompressionS2:
		return newS2Reader(br), ctype, nil
	case format.CompressionLZ4:
		return newLZ4Reader(br), ctype, nil
	default:
		return br, format.CompressionNone, nil
	}
}
