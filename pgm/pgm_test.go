package pgm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	img := &Image{Height: 2, Width: 3, Pix: []byte{1, 2, 3, 4, 5, 6}}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, img))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, img.Height, got.Height)
	require.Equal(t, img.Width, got.Width)
	require.Equal(t, img.Pix, got.Pix)
}

func TestDecodeSkipsCommentLines(t *testing.T) {
	raw := "P5\n# a comment\n2 2\n# another\n255\n\x01\x02\x03\x04"
	got, err := Decode(bytes.NewReader([]byte(raw)))
	require.NoError(t, err)
	require.Equal(t, 2, got.Height)
	require.Equal(t, 2, got.Width)
	require.Equal(t, []byte{1, 2, 3, 4}, got.Pix)
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("P2\n1 1\n255\n\x00")))
	require.Error(t, err)
}
