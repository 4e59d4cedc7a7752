// Package blockdct implements the blocked 2-D DCT image path (C7), its
// diagonal-dependent scalar quantizer (C8), and the zig-zag scan order
// (supplemented from jpg.c's zigzag, dropped by the spec's narration but
// used here to make trailing high-frequency runs contiguous before RLE).
package blockdct

import (
	"math"

	"github.com/dlecorfec/tpcodec/internal/dct"
	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
	"github.com/dlecorfec/tpcodec/pgm"
)

// Block is an N×N tile of DCT coefficients (or, before transform,
// pixel values), stored row-major in double precision to match the
// basis computation's precision.
type Block struct {
	N int
	t [][]float64
}

// NewBlock allocates a zeroed N×N block.
func NewBlock(n int) *Block {
	t := make([][]float64, n)
	for j := range t {
		t[j] = make([]float64, n)
	}
	return &Block{N: n, t: t}
}

func (b *Block) At(j, i int) float64     { return b.t[j][i] }
func (b *Block) Set(j, i int, v float64) { b.t[j][i] = v }

// Extract copies the N×N sub-square of im with top-left (y,x) into
// dst, zero-padding any rows/cols that fall outside the image —
// translated from jpg.c's extrait_matrice.
func Extract(im *pgm.Image, y, x int, dst *Block) {
	n := dst.N
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if j+y < im.Height && i+x < im.Width {
				dst.t[j][i] = float64(im.At(j+y, i+x))
			} else {
				dst.t[j][i] = 0
			}
		}
	}
}

// Insert writes src back into im at (y,x), clamping to [0,255] and
// rounding to nearest — translated from jpg.c's insert_matrice.
// Out-of-range rows/cols are dropped.
func Insert(src *Block, y, x int, im *pgm.Image) {
	n := src.N
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if j+y >= im.Height || i+x >= im.Width {
				continue
			}
			v := src.t[j][i]
			var out byte
			switch {
			case v < 0:
				out = 0
			case v > 255:
				out = 255
			default:
				out = byte(math.Round(v))
			}
			im.Set(j+y, i+x, out)
		}
	}
}

// Transform applies the 2-D DCT (or its inverse) to block in place:
// forward is D·B·Dᵀ, inverse is Dᵀ·B'·D, translated from jpg.c's
// dct_image. tmp is caller-provided scratch of the same size, avoiding
// the original's hidden static workspace.
func Transform(basis *dct.Basis, block, tmp *Block, inverse bool) error {
	n := basis.N
	if block.N != n || tmp.N != n {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "blockdct.Transform", "size mismatch")
	}
	left, right := basis.D, basis.Dt
	if inverse {
		left, right = basis.Dt, basis.D
	}
	// tmp := left * block
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += left[j][i] * block.t[i][k]
			}
			tmp.t[j][k] = sum
		}
	}
	// block := tmp * right
	for j := 0; j < n; j++ {
		for k := 0; k < n; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += tmp.t[j][i] * right[i][k]
			}
			block.t[j][k] = sum
		}
	}
	return nil
}

// Quantize scales block by the diagonal-dependent step s(i,j) =
// 1+(i+j+1)*quality. Forward divides, inverse (dequantize) multiplies.
func Quantize(block *Block, quality int, inverse bool) {
	n := block.N
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			step := 1 + float64((i+j+1)*quality)
			if inverse {
				block.t[j][i] *= step
			} else {
				block.t[j][i] /= step
			}
		}
	}
}

// ZigZagNext advances (y,x) to the next position in the zig-zag scan
// of an N×N block, translated verbatim from jpg.c's zigzag.
func ZigZagNext(n int, y, x *int) {
	X, Y := *x, *y
	nImp := n & 1
	switch {
	case X == n-1 && (Y+nImp)&1 != 0:
		*y++
	case Y == n-1 && (X+nImp)&1 == 0:
		*x++
	case X == 0 && Y&1 != 0:
		*y++
	case Y == 0 && X&1 == 0:
		*x++
	case (X+Y)&1 != 0:
		*x--
		*y++
	default:
		*x++
		*y--
	}
}

// ZigZagOrder returns the full sequence of (row,col) coordinates for an
// N×N block in zig-zag order, starting at (0,0).
func ZigZagOrder(n int) [][2]int {
	order := make([][2]int, n*n)
	y, x := 0, 0
	for k := 0; k < n*n; k++ {
		order[k] = [2]int{y, x}
		if k < n*n-1 {
			ZigZagNext(n, &y, &x)
		}
	}
	return order
}
