package dct

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrthonormality(t *testing.T) {
	for _, n := range []int{2, 4, 8} {
		b := compute(n)
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				var sum float64
				for i := 0; i < n; i++ {
					sum += b.D[j][i] * b.D[k][i]
				}
				want := 0.0
				if j == k {
					want = 1.0
				}
				require.InDelta(t, want, sum, 1e-10, "N=%d j=%d k=%d", n, j, k)
			}
		}
	}
}

func TestForwardInverseRoundTrip(t *testing.T) {
	cache := NewCache()
	basis := cache.Get(8)
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := make([]float64, 8)
	require.NoError(t, Forward(basis, x, y))
	back := make([]float64, 8)
	require.NoError(t, Inverse(basis, y, back))
	for i := range x {
		require.InDelta(t, x[i], back[i], 1e-9)
	}
}

func TestCacheMemoizesSameInstance(t *testing.T) {
	cache := NewCache()
	a := cache.Get(4)
	b := cache.Get(4)
	require.Same(t, a, b)
}
