// Package matrix implements the float matrix primitives (C5): scoped
// allocation, full and partial transposition, matrix·vector, and
// matrix·matrix products, translated from dct.c/ondelette.c's Matrice
// helpers. Callers pass in scratch matrices explicitly rather than
// relying on file-scope statics, per the spec's direction away from
// the "hidden singleton" pattern in the original coursework.
package matrix

import "github.com/dlecorfec/tpcodec/internal/tpcodecerr"

// Matrix is a rectangular H×W grid of float32, indexed [row][col]. The
// wavelet path runs entirely in single precision.
type Matrix struct {
	Height, Width int
	t             [][]float32
}

// New allocates a zeroed H×W matrix.
func New(height, width int) *Matrix {
	t := make([][]float32, height)
	for j := range t {
		t[j] = make([]float32, width)
	}
	return &Matrix{Height: height, Width: width, t: t}
}

func (m *Matrix) At(j, i int) float32     { return m.t[j][i] }
func (m *Matrix) Set(j, i int, v float32) { m.t[j][i] = v }

// Row returns the underlying row slice for i/o helpers that want to
// operate on a whole row at once (e.g. the 1-D wavelet step).
func (m *Matrix) Row(j int) []float32 { return m.t[j] }

// Transpose writes A's transpose into dst; dst must already be shaped
// (A.Width, A.Height).
func Transpose(a, dst *Matrix) error {
	if dst.Height != a.Width || dst.Width != a.Height {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "matrix.Transpose", "shape mismatch")
	}
	for j := 0; j < a.Height; j++ {
		for i := 0; i < a.Width; i++ {
			dst.t[i][j] = a.t[j][i]
		}
	}
	return nil
}

// TransposePartial transposes only the top-left h×w sub-region of a
// into the top-left w×h sub-region of dst, leaving the remainder of
// dst untouched. Used by the wavelet's shrinking active region.
func TransposePartial(a, dst *Matrix, h, w int) error {
	if dst.Height < w || dst.Width < h {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "matrix.TransposePartial", "shape mismatch")
	}
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			dst.t[i][j] = a.t[j][i]
		}
	}
	return nil
}

// MatVec computes y := A·x.
func MatVec(a *Matrix, x, y []float32) error {
	if len(x) != a.Width || len(y) != a.Height {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "matrix.MatVec", "shape mismatch")
	}
	for j := 0; j < a.Height; j++ {
		var sum float32
		row := a.t[j]
		for i := 0; i < a.Width; i++ {
			sum += row[i] * x[i]
		}
		y[j] = sum
	}
	return nil
}

// MatMul computes c := a·b. c may not alias a or b.
func MatMul(a, b, c *Matrix) error {
	if a.Width != b.Height || c.Height != a.Height || c.Width != b.Width {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "matrix.MatMul", "shape mismatch")
	}
	for j := 0; j < a.Height; j++ {
		for k := 0; k < b.Width; k++ {
			var sum float32
			for i := 0; i < a.Width; i++ {
				sum += a.t[j][i] * b.t[i][k]
			}
			c.t[j][k] = sum
		}
	}
	return nil
}
