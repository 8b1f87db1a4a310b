// Package pool provides pooled scratch buffers for row-by-row binary
// reads. Output arrays are never pooled: decoded results transfer
// ownership to the caller.
package pool

import "sync"

const (
	// RowBufferDefaultSize covers one binary data row for typical
	// channel counts (8 bytes of index/timestamp plus a few hundred
	// channel fields).
	RowBufferDefaultSize = 1024

	// RowBufferMaxThreshold is the largest buffer returned to the pool;
	// oversized buffers from pathological channel counts are dropped.
	RowBufferMaxThreshold = 64 * 1024
)

// ByteBuffer is a reusable byte slice wrapper.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// Reset resets the buffer to be empty, but retains the allocated memory
// for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Sized returns the buffer resized to exactly n bytes, growing the
// underlying slice if needed.
func (bb *ByteBuffer) Sized(n int) []byte {
	if cap(bb.B) < n {
		bb.B = make([]byte, n)
	}
	bb.B = bb.B[:n]

	return bb.B
}

var byteBufferPool = sync.Pool{
	New: func() any {
		return &ByteBuffer{B: make([]byte, 0, RowBufferDefaultSize)}
	},
}

// GetByteBuffer retrieves a ByteBuffer from the pool.
func GetByteBuffer() *ByteBuffer {
	bb, _ := byteBufferPool.Get().(*ByteBuffer)
	bb.Reset()

	return bb
}

// PutByteBuffer returns a ByteBuffer to the pool. Buffers grown past
// RowBufferMaxThreshold are discarded.
func PutByteBuffer(bb *ByteBuffer) {
	if cap(bb.B) > RowBufferMaxThreshold {
		return
	}
	byteBufferPool.Put(bb)
}
