// Package dct implements the orthonormal DCT-II kernel (C6): building
// the N×N basis matrix once per size and applying it (or its
// transpose) to a vector. Basis construction runs in double precision,
// translated from dct.c's coef_dct; the application itself also
// happens in float64 so the blocked image DCT in package blockdct
// keeps full precision until the final pixel clamp/round.
package dct

import (
	"math"
	"sync"

	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

// Basis holds an N×N orthonormal DCT-II matrix D and its transpose.
// Forward transform of a vector x is D·x; inverse is Dᵀ·x.
type Basis struct {
	N  int
	D  [][]float64
	Dt [][]float64
}

// compute builds D per dct.c's coef_dct: row 0 is the constant
// 1/√N, every other row j is √(2/N)·cos((2i+1)·j·π/(2N)).
func compute(n int) *Basis {
	d := make([][]float64, n)
	dt := make([][]float64, n)
	for j := range dt {
		dt[j] = make([]float64, n)
	}
	sqrtN := math.Sqrt(float64(n))
	sqrtIJ := math.Sqrt2 / sqrtN
	for j := 0; j < n; j++ {
		d[j] = make([]float64, n)
		for i := 0; i < n; i++ {
			var v float64
			if j == 0 {
				v = 1 / sqrtN
			} else {
				v = sqrtIJ * math.Cos(float64(2*i+1)*float64(j)*math.Pi/(2*float64(n)))
			}
			d[j][i] = v
			dt[i][j] = v
		}
	}
	return &Basis{N: n, D: d, Dt: dt}
}

// Cache memoizes one Basis per distinct N for the lifetime of the
// value, satisfying "compute the basis at most once per N" without
// resorting to a package-level singleton: callers construct and pass
// around their own *Cache (e.g. one per pipeline run, or one shared
// across a process that wants amortization).
type Cache struct {
	mu    sync.Mutex
	bases map[int]*Basis
}

// NewCache returns an empty, ready-to-use cache.
func NewCache() *Cache {
	return &Cache{bases: make(map[int]*Basis)}
}

// Get returns the Basis for size n, computing and memoizing it on
// first request. Safe for concurrent use.
func (c *Cache) Get(n int) *Basis {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.bases[n]; ok {
		return b
	}
	b := compute(n)
	c.bases[n] = b
	return b
}

// Forward applies D to x, writing into y.
func Forward(basis *Basis, x, y []float64) error {
	return apply(basis.D, x, y)
}

// Inverse applies Dᵀ to x, writing into y.
func Inverse(basis *Basis, x, y []float64) error {
	return apply(basis.Dt, x, y)
}

func apply(m [][]float64, x, y []float64) error {
	n := len(m)
	if len(x) != n || len(y) != n {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "dct.apply", "vector length mismatch")
	}
	for j := 0; j < n; j++ {
		var sum float64
		row := m[j]
		for i := 0; i < n; i++ {
			sum += row[i] * x[i]
		}
		y[j] = sum
	}
	return nil
}
