// Package rle implements the RLE+symbol wrapper (C4): it groups runs of
// consecutive zero coefficients with the non-zero value that follows
// them, and feeds both the run length and the value through a single
// shared adaptive Shannon-Fano table — mirroring ondelette.c's
// codage_ondelette/decodage_ondelette, which open exactly one
// shannon_fano table and bind both the unsigned (run) and signed
// (value) intstream adapters to it.
package rle

import (
	"math"

	"github.com/dlecorfec/tpcodec/internal/bitio"
	"github.com/dlecorfec/tpcodec/internal/entropy"
	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

// Encode writes data as alternating (zero_run, value) events through tbl.
// Trailing zeros at the end of data are never explicitly coded; the
// leading 32-bit count of non-zero values tells Decode when to stop
// reading events and zero-fill the rest. This count field is a framing
// detail of this package, not part of the entropy-coded payload
// (original_source's rle.c was not retrieved, so its exact framing is
// unknown; this is the simplest scheme consistent with spec.md §6's
// "alternating (zero_run, signed_value) events").
func Encode(bw *bitio.Writer, tbl *entropy.Table, data []float32) error {
	nonZero := uint32(0)
	for _, f := range data {
		if roundToInt(f) != 0 {
			nonZero++
		}
	}
	if err := bw.WriteBits(nonZero, 32); err != nil {
		return err
	}
	run := int32(0)
	for _, f := range data {
		v := roundToInt(f)
		if v == 0 {
			run++
			continue
		}
		if err := tbl.PutInt(bw, run); err != nil {
			return err
		}
		if err := tbl.PutInt(bw, v); err != nil {
			return err
		}
		run = 0
	}
	return nil
}

// Decode reads back a buffer of exactly n elements written by Encode.
func Decode(br *bitio.Reader, tbl *entropy.Table, n int) ([]float32, error) {
	nonZero, err := br.ReadBits(32)
	if err != nil {
		return nil, tpcodecerr.Wrap(tpcodecerr.IoError, "rle.Decode", err)
	}
	out := make([]float32, n)
	pos := 0
	for k := uint32(0); k < nonZero; k++ {
		run, err := tbl.GetInt(br)
		if err != nil {
			return nil, err
		}
		value, err := tbl.GetInt(br)
		if err != nil {
			return nil, err
		}
		pos += int(run)
		if pos >= n {
			return nil, tpcodecerr.New(tpcodecerr.MalformedInput, "rle.Decode", "run overruns buffer")
		}
		out[pos] = float32(value)
		pos++
	}
	return out, nil
}

func roundToInt(f float32) int32 {
	return int32(math.Round(float64(f)))
}
