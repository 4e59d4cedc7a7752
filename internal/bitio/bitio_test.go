package bitio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBits(0b101, 3))
	require.NoError(t, w.WriteBit(1))
	require.NoError(t, w.WriteBits(0xABCD, 16))
	require.NoError(t, w.Flush())

	r := NewReader(&buf)
	v, err := r.ReadBits(3)
	require.NoError(t, err)
	require.Equal(t, uint32(0b101), v)

	bit, err := r.ReadBit()
	require.NoError(t, err)
	require.Equal(t, uint32(1), bit)

	v, err = r.ReadBits(16)
	require.NoError(t, err)
	require.Equal(t, uint32(0xABCD), v)
}

func TestFlushPadsToByteBoundary(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBits(0b11, 2))
	require.NoError(t, w.Flush())
	require.Equal(t, 1, buf.Len())
	require.Equal(t, byte(0b11000000), buf.Bytes()[0])
}
