package rle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dlecorfec/tpcodec/internal/bitio"
	"github.com/dlecorfec/tpcodec/internal/entropy"
)

func TestRoundTripWithZeroRuns(t *testing.T) {
	data := []float32{0, 0, 5, 0, -3, 0, 0, 0, 7, 0, 0}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	require.NoError(t, Encode(bw, entropy.NewTable(), data))
	require.NoError(t, bw.Flush())

	br := bitio.NewReader(&buf)
	got, err := Decode(br, entropy.NewTable(), len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestAllZeros(t *testing.T) {
	data := make([]float32, 16)
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	require.NoError(t, Encode(bw, entropy.NewTable(), data))
	require.NoError(t, bw.Flush())

	br := bitio.NewReader(&buf)
	got, err := Decode(br, entropy.NewTable(), len(data))
	require.NoError(t, err)
	require.Equal(t, data, got)
}
