package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_Sized(t *testing.T) {
	bb := &ByteBuffer{}

	b := bb.Sized(14)
	require.Len(t, b, 14)

	// Shrinking reuses the same allocation.
	b2 := bb.Sized(8)
	require.Len(t, b2, 8)
	require.Equal(t, &b[0], &b2[0])

	// Growing reallocates.
	b3 := bb.Sized(RowBufferDefaultSize * 2)
	require.Len(t, b3, RowBufferDefaultSize*2)
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := &ByteBuffer{B: []byte{1, 2, 3}}
	bb.Reset()
	require.Empty(t, bb.B)
	require.GreaterOrEqual(t, cap(bb.B), 3)
}

func TestGetPutByteBuffer(t *testing.T) {
	bb := GetByteBuffer()
	require.NotNil(t, bb)
	require.Empty(t, bb.B)
	require.GreaterOrEqual(t, cap(bb.B), RowBufferDefaultSize)

	row := bb.Sized(100)
	require.Len(t, row, 100)
	PutByteBuffer(bb)

	// Oversized buffers are dropped rather than pooled.
	big := &ByteBuffer{B: make([]byte, RowBufferMaxThreshold+1)}
	PutByteBuffer(big)
}
