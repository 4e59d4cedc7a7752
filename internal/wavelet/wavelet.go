// Package wavelet implements the separable dyadic wavelet transform
// (C9), its sub-band quantizer (C10), and the sub-band linearizer
// (C11), translated from ondelette.c.
package wavelet

import "github.com/dlecorfec/tpcodec/internal/matrix"

// step1D performs one Haar-style average/difference lift: the first
// n/2 outputs are (x[2i]+x[2i+1])/2, an odd middle element is copied
// verbatim, and the last n/2 outputs are (x[2i]-x[2i+1])/2 —
// translated from ondelette_1d.
func step1D(in, out []float32, n int) {
	half := n / 2
	for i := 0; i < half; i++ {
		out[i] = (in[2*i] + in[2*i+1]) / 2
	}
	o := half
	if n%2 == 1 {
		out[o] = in[n-1]
		o++
	}
	for i := 0; i < half; i++ {
		out[o+i] = (in[2*i] - in[2*i+1]) / 2
	}
}

// step1DInverse is the exact inverse of step1D, translated from
// ondelette_1d_inverse.
func step1DInverse(in, out []float32, n int) {
	half := n / 2
	for i := 0; i < half; i++ {
		sum := in[i]
		var diff float32
		if n%2 == 1 {
			diff = in[half+i+1]
		} else {
			diff = in[half+i]
		}
		out[2*i] = sum + diff
		out[2*i+1] = sum - diff
	}
	if n%2 == 1 {
		out[n-1] = in[half]
	}
}

// Forward2D applies the recursive separable wavelet transform in place
// over img, translated from ondelette_2d: row-wise lift, transpose,
// column-wise lift (as rows of the transposed matrix), transpose back,
// then shrink the active region until it is 1×1.
func Forward2D(img *matrix.Matrix) error {
	h, w := img.Height, img.Width
	tmp0 := matrix.New(h, w)
	tmp1 := matrix.New(w, h)
	tmp2 := matrix.New(w, h)
	for h > 1 || w > 1 {
		for i := 0; i < h; i++ {
			step1D(img.Row(i), tmp0.Row(i), w)
		}
		if err := matrix.TransposePartial(tmp0, tmp1, h, w); err != nil {
			return err
		}
		for i := 0; i < w; i++ {
			step1D(tmp1.Row(i), tmp2.Row(i), h)
		}
		if err := matrix.TransposePartial(tmp2, img, w, h); err != nil {
			return err
		}
		h = (h + 1) / 2
		w = (w + 1) / 2
	}
	return nil
}

// Inverse2D undoes Forward2D, translated from
// ondelette_2d_inverse_recursive: the inverse is applied recursively
// starting from the smallest (1×1) active region outward.
func Inverse2D(img *matrix.Matrix) error {
	return inverse2DRecursive(img, img.Height, img.Width)
}

func inverse2DRecursive(img *matrix.Matrix, h, w int) error {
	if h > 1 || w > 1 {
		if err := inverse2DRecursive(img, (h+1)/2, (w+1)/2); err != nil {
			return err
		}
	}
	tmp0 := matrix.New(img.Height, img.Width)
	tmp1 := matrix.New(img.Width, img.Height)
	tmp2 := matrix.New(img.Width, img.Height)
	for i := 0; i < h; i++ {
		step1DInverse(img.Row(i), tmp0.Row(i), w)
	}
	if err := matrix.TransposePartial(tmp0, tmp1, h, w); err != nil {
		return err
	}
	for i := 0; i < w; i++ {
		step1DInverse(tmp1.Row(i), tmp2.Row(i), h)
	}
	return matrix.TransposePartial(tmp2, img, w, h)
}

// Quantize divides every coefficient outside the low-pass top-left
// quadrant by quality at each level, shrinking the active region by
// the deliberately off-by-one recursion h:=h/2+1 (see DESIGN.md),
// until quality drops to 1 or the region is 1×1 — translated from
// quantif_ondelette.
func Quantize(img *matrix.Matrix, quality float32, inverse bool) {
	h, w := img.Height, img.Width
	for quality > 1 && (h > 1 || w > 1) {
		ceilH, ceilW := (h+1)/2, (w+1)/2
		for i := 0; i < h; i++ {
			for j := 0; j < w; j++ {
				if i > ceilH || j > ceilW {
					if inverse {
						img.Set(i, j, img.At(i, j)*quality)
					} else {
						img.Set(i, j, img.At(i, j)/quality)
					}
				}
			}
		}
		h, w = ceilH+1, ceilW+1
		quality /= 8
	}
}

// Linearize walks the same recursive shrinkage as Forward2D (without
// the +1 overlap the quantizer uses) and emits every coefficient
// outside the current low-pass quadrant, in row-major order, followed
// by the final DC coefficient — translated from codage_ondelette's
// linearization loop.
func Linearize(img *matrix.Matrix) []float32 {
	h, w := img.Height, img.Width
	out := make([]float32, 0, h*w)
	for h != 1 || w != 1 {
		halfH, halfW := (h+1)/2, (w+1)/2
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				if j >= halfH || i >= halfW {
					out = append(out, img.At(j, i))
				}
			}
		}
		h, w = halfH, halfW
	}
	out = append(out, img.At(0, 0))
	return out
}

// Delinearize is the exact inverse of Linearize: it scatters a flat
// buffer of H*W values back into img — translated from
// decodage_ondelette.
func Delinearize(img *matrix.Matrix, flat []float32) {
	h, w := img.Height, img.Width
	pos := 0
	for h != 1 || w != 1 {
		halfH, halfW := (h+1)/2, (w+1)/2
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				if j >= halfH || i >= halfW {
					img.Set(j, i, flat[pos])
					pos++
				}
			}
		}
		h, w = halfH, halfW
	}
	img.Set(0, 0, flat[pos])
}
