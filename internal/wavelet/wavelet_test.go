package wavelet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dlecorfec/tpcodec/internal/matrix"
)

func TestStep1DEvenPair(t *testing.T) {
	in := []float32{4, 2}
	out := make([]float32, 2)
	step1D(in, out, 2)
	require.Equal(t, []float32{3, 1}, out)

	back := make([]float32, 2)
	step1DInverse(out, back, 2)
	require.Equal(t, []float32{4, 2}, back)
}

func TestStep1DOdd(t *testing.T) {
	in := []float32{1, 2, 3}
	out := make([]float32, 3)
	step1D(in, out, 3)
	require.InDeltaSlice(t, []float64{1.5, 3, -0.5}, toF64(out), 1e-6)

	back := make([]float32, 3)
	step1DInverse(out, back, 3)
	require.InDeltaSlice(t, []float64{1, 2, 3}, toF64(back), 1e-6)
}

func toF64(xs []float32) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}

func TestForward2DInverse2DRoundTrip(t *testing.T) {
	m := matrix.New(8, 8)
	v := float32(1)
	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			m.Set(j, i, v)
			v++
		}
	}
	orig := snapshot(m)

	require.NoError(t, Forward2D(m))
	require.NoError(t, Inverse2D(m))

	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			require.InDelta(t, orig[j][i], m.At(j, i), 1e-4)
		}
	}
}

func TestLinearizeDelinearizeRoundTrip(t *testing.T) {
	m := matrix.New(4, 4)
	v := float32(0)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			m.Set(j, i, v)
			v++
		}
	}
	require.NoError(t, Forward2D(m))
	flat := Linearize(m)
	require.Len(t, flat, 16)

	m2 := matrix.New(4, 4)
	Delinearize(m2, flat)
	for j := 0; j < 4; j++ {
		for i := 0; i < 4; i++ {
			require.Equal(t, m.At(j, i), m2.At(j, i))
		}
	}
}

func TestQuantizeDequantizeRoundTrip(t *testing.T) {
	m := matrix.New(8, 8)
	v := float32(1)
	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			m.Set(j, i, v)
			v++
		}
	}
	Quantize(m, 1, false) // quality==1 is lossless: loop body never runs
	Quantize(m, 1, true)
	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			require.Equal(t, float32(j*8+i+1), m.At(j, i))
		}
	}
}

func snapshot(m *matrix.Matrix) [][]float32 {
	out := make([][]float32, m.Height)
	for j := range out {
		out[j] = make([]float32, m.Width)
		for i := range out[j] {
			out[j][i] = m.At(j, i)
		}
	}
	return out
}
