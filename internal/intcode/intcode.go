// Package intcode implements the variable-length PREFIX+SUFFIX integer
// code: a run of prefix bits identifying a magnitude class followed by a
// class-dependent suffix, translating the exact bit patterns of the
// original coursework's entier.c for 16-bit magnitude classes
// (0..32767), plus the signed-bias wrapper built on top of it.
package intcode

import (
	"github.com/dlecorfec/tpcodec/internal/bitio"
	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

// prefixes holds the exact bit string for each of the 16 magnitude
// classes, taken verbatim from entier.c's "prefixes" table.
var prefixes = [16]struct {
	bits uint32
	n    uint
}{
	{0b00, 2},
	{0b010, 3},
	{0b011, 3},
	{0b1000, 4},
	{0b1001, 4},
	{0b1010, 4},
	{0b1011, 4},
	{0b11000, 5},
	{0b11001, 5},
	{0b11010, 5},
	{0b11011, 5},
	{0b11100, 5},
	{0b11101, 5},
	{0b11110, 5},
	{0b111110, 6},
	{0b111111, 6},
}

// classBase[c] is the smallest value carried by class c; classSuffixBits[c]
// is the number of suffix bits a value in class c carries.
var classBase = [16]uint32{
	0, 1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384,
}
var classSuffixBits = [16]uint{
	0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14,
}

// classOf returns the magnitude class of f, matching entier.c's
// nb_bits_utile: 0 for f==0, 1 for f==1, and the binary length of f for
// every larger f (so class c>=2 covers [2^(c-1), 2^c - 1]).
func classOf(f uint32) uint {
	if f <= 1 {
		return uint(f)
	}
	c := uint(1)
	for (uint32(1) << c) <= f {
		c++
	}
	return c
}

const maxValue = 32767

// PutUint writes f, 0 <= f <= 32767, to bw.
func PutUint(bw *bitio.Writer, f uint32) error {
	if f > maxValue {
		return tpcodecerr.New(tpcodecerr.OutOfRange, "intcode.PutUint", "value exceeds 32767")
	}
	c := classOf(f)
	p := prefixes[c]
	if err := bw.WriteBits(p.bits, p.n); err != nil {
		return err
	}
	if nb := classSuffixBits[c]; nb > 0 {
		if err := bw.WriteBits(f-classBase[c], nb); err != nil {
			return err
		}
	}
	return nil
}

// GetUint reads back a value written by PutUint, walking the prefix bit
// by bit exactly as entier.c's get_entier does (translated from its
// nested-if cascade into an equivalent straight-line decode).
func GetUint(br *bitio.Reader) (uint32, error) {
	c, err := decodeClass(br)
	if err != nil {
		return 0, err
	}
	nb := classSuffixBits[c]
	if nb == 0 {
		return classBase[c], nil
	}
	suffix, err := br.ReadBits(nb)
	if err != nil {
		return 0, tpcodecerr.Wrap(tpcodecerr.IoError, "intcode.GetUint", err)
	}
	return classBase[c] + suffix, nil
}

func readBit(br *bitio.Reader) (uint32, error) {
	b, err := br.ReadBit()
	if err != nil {
		return 0, tpcodecerr.Wrap(tpcodecerr.IoError, "intcode.decodeClass", err)
	}
	return b, nil
}

// decodeClass is a direct translation of entier.c's get_entier prefix
// decode: each branch matches one row of the prefixes table above.
func decodeClass(br *bitio.Reader) (uint, error) {
	b1, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b1 == 0 {
		b2, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b2 == 0 {
			return 0, nil
		}
		b3, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b3 == 0 {
			return 1, nil
		}
		return 2, nil
	}
	b2, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b2 == 0 {
		b3, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b3 == 0 {
			b4, err := readBit(br)
			if err != nil {
				return 0, err
			}
			if b4 == 0 {
				return 3, nil
			}
			return 4, nil
		}
		b4, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b4 == 0 {
			return 5, nil
		}
		return 6, nil
	}
	b3, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b3 == 0 {
		b4, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b4 == 0 {
			b5, err := readBit(br)
			if err != nil {
				return 0, err
			}
			if b5 == 0 {
				return 7, nil
			}
			return 8, nil
		}
		b5, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b5 == 0 {
			return 9, nil
		}
		return 10, nil
	}
	b4, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b4 == 0 {
		b5, err := readBit(br)
		if err != nil {
			return 0, err
		}
		if b5 == 0 {
			return 11, nil
		}
		return 12, nil
	}
	b5, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b5 == 0 {
		return 13, nil
	}
	b6, err := readBit(br)
	if err != nil {
		return 0, err
	}
	if b6 == 0 {
		return 14, nil
	}
	return 15, nil
}

// PutInt writes a signed value using the sign-then-biased-magnitude
// convention of put_entier_signe: negative i is rebiased to -i-1 so
// there's a single representation of zero, preceded by a sign bit.
func PutInt(bw *bitio.Writer, i int32) error {
	if i < 0 {
		if err := bw.WriteBit(1); err != nil {
			return err
		}
		return PutUint(bw, uint32(-i-1))
	}
	if err := bw.WriteBit(0); err != nil {
		return err
	}
	return PutUint(bw, uint32(i))
}

// GetInt reads back a value written by PutInt.
func GetInt(br *bitio.Reader) (int32, error) {
	sign, err := br.ReadBit()
	if err != nil {
		return 0, tpcodecerr.Wrap(tpcodecerr.IoError, "intcode.GetInt", err)
	}
	u, err := GetUint(br)
	if err != nil {
		return 0, err
	}
	if sign == 1 {
		return -int32(u) - 1, nil
	}
	return int32(u), nil
}
