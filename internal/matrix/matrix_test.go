package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTranspose(t *testing.T) {
	a := New(2, 3)
	v := float32(1)
	for j := 0; j < 2; j++ {
		for i := 0; i < 3; i++ {
			a.Set(j, i, v)
			v++
		}
	}
	b := New(3, 2)
	require.NoError(t, Transpose(a, b))
	for j := 0; j < 2; j++ {
		for i := 0; i < 3; i++ {
			require.Equal(t, a.At(j, i), b.At(i, j))
		}
	}
}

func TestMatVec(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, 1)
	a.Set(0, 1, 2)
	a.Set(1, 0, 3)
	a.Set(1, 1, 4)
	x := []float32{1, 1}
	y := make([]float32, 2)
	require.NoError(t, MatVec(a, x, y))
	require.Equal(t, []float32{3, 7}, y)
}

func TestMatMulIdentity(t *testing.T) {
	a := New(2, 2)
	a.Set(0, 0, 1)
	a.Set(1, 1, 1)
	b := New(2, 2)
	b.Set(0, 0, 5)
	b.Set(0, 1, 6)
	b.Set(1, 0, 7)
	b.Set(1, 1, 8)
	c := New(2, 2)
	require.NoError(t, MatMul(a, b, c))
	require.Equal(t, b.At(0, 0), c.At(0, 0))
	require.Equal(t, b.At(1, 1), c.At(1, 1))
}

func TestShapeMismatchErrors(t *testing.T) {
	a := New(2, 3)
	b := New(2, 3) // wrong shape for transpose target
	require.Error(t, Transpose(a, b))
}
