// Package entropy implements the adaptive (dynamic) Shannon-Fano coder:
// no occurrence table is ever transmitted, because an ESCAPE event lets
// the decoder learn new symbols from their raw value the first time it
// sees them. This generalizes the original coursework's sf.c from a
// fixed 200000-entry array to a growable slice, capped at MaxEvents.
package entropy

import (
	"github.com/dlecorfec/tpcodec/internal/bitio"
	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

// Escape is the sentinel value standing in for "a new symbol follows",
// frozen at 32 bits per the container's fixed ESCAPE payload width.
const Escape int32 = 0x7fffffff

// MaxEvents bounds how many distinct symbols a table may learn, mirroring
// sf.c's fixed 200000-entry occurrence array. Past this bound PutInt and
// GetInt fail with AlphabetExhausted rather than growing without limit.
const MaxEvents = 200000

type event struct {
	value int32
	count int32
}

// Table is the adaptive frequency table shared between an encoder and
// decoder walking the same stream in lock-step. It always starts with
// exactly one event: ESCAPE, with count 1.
type Table struct {
	events []event
}

// NewTable returns a freshly initialized table, matching
// open_shannon_fano's single ESCAPE entry.
func NewTable() *Table {
	return &Table{events: []event{{value: Escape, count: 1}}}
}

// findPosition returns the index of evt in the table, or the index of
// ESCAPE if evt hasn't been seen yet (translated from trouve_position).
func (t *Table) findPosition(evt int32) int {
	for i, e := range t.events {
		if e.value == evt {
			return i
		}
	}
	for i, e := range t.events {
		if e.value == Escape {
			return i
		}
	}
	return -1
}

// findSplit returns the smallest index i in [lo, hi) such that the
// cumulative occurrence count of events[lo..i] is at least half the
// occurrence count across events[lo..hi] — i.e. the first i for which
// 2*left >= total, translated from trouve_separation. Unlike sf.c's
// trouve_separation, which sums tot_occ over every event regardless of
// lo/hi, total here is scoped to [lo, hi] per spec.md §4.2. See
// DESIGN.md for the boundary disagreement with the original C's strict
// "min_tot > max_tot" test; this follows the >= rule.
func (t *Table) findSplit(lo, hi int) int {
	total := int32(0)
	for i := lo; i <= hi; i++ {
		total += t.events[i].count
	}
	left := int32(0)
	for i := lo; i < hi; i++ {
		left += t.events[i].count
		if 2*left >= total {
			return i
		}
	}
	return lo
}

// encodePosition emits the bit path from the root of the implicit
// binary split tree down to position, translated from encode_position.
func (t *Table) encodePosition(bw *bitio.Writer, position int) error {
	lo, hi := 0, len(t.events)-1
	for lo != hi {
		sep := t.findSplit(lo, hi)
		if position <= sep {
			if err := bw.WriteBit(0); err != nil {
				return err
			}
			hi = sep
		} else {
			if err := bw.WriteBit(1); err != nil {
				return err
			}
			lo = sep + 1
		}
	}
	return nil
}

// decodePosition is the exact inverse of encodePosition.
func (t *Table) decodePosition(br *bitio.Reader) (int, error) {
	lo, hi := 0, len(t.events)-1
	for lo != hi {
		sep := t.findSplit(lo, hi)
		bit, err := br.ReadBit()
		if err != nil {
			return 0, tpcodecerr.Wrap(tpcodecerr.IoError, "entropy.decodePosition", err)
		}
		if bit == 1 {
			lo = sep + 1
		} else {
			hi = sep
		}
	}
	return lo, nil
}

// bumpAndReorder increments the occurrence count at position and moves
// that event forward past any events with the same (pre-increment)
// count, keeping the table sorted by descending occurrence count —
// translated from incremente_et_ordonne.
func (t *Table) bumpAndReorder(position int) {
	count := t.events[position].count
	i := position - 1
	for i >= 0 && count == t.events[i].count {
		i--
	}
	t.events[position].count++
	t.events[i+1], t.events[position] = t.events[position], t.events[i+1]
}

// PutInt encodes evt against t, extending the table with a new entry
// the first time evt is seen.
func (t *Table) PutInt(bw *bitio.Writer, evt int32) error {
	pos := t.findPosition(evt)
	if pos < 0 {
		return tpcodecerr.New(tpcodecerr.InvariantViolation, "entropy.PutInt", "position not found")
	}
	if err := t.encodePosition(bw, pos); err != nil {
		return err
	}
	if t.events[pos].value == Escape {
		if len(t.events) >= MaxEvents {
			return tpcodecerr.New(tpcodecerr.AlphabetExhausted, "entropy.PutInt", "table full")
		}
		if err := bw.WriteBits(uint32(evt), 32); err != nil {
			return err
		}
		t.events = append(t.events, event{value: evt, count: 1})
	}
	t.bumpAndReorder(pos)
	return nil
}

// GetInt decodes the next event encoded by PutInt against the same
// sequence of table states.
func (t *Table) GetInt(br *bitio.Reader) (int32, error) {
	pos, err := t.decodePosition(br)
	if err != nil {
		return 0, err
	}
	evt := t.events[pos].value
	if evt == Escape {
		if len(t.events) >= MaxEvents {
			return 0, tpcodecerr.New(tpcodecerr.AlphabetExhausted, "entropy.GetInt", "table full")
		}
		raw, err := br.ReadBits(32)
		if err != nil {
			return 0, tpcodecerr.Wrap(tpcodecerr.IoError, "entropy.GetInt", err)
		}
		evt = int32(raw)
		t.events = append(t.events, event{value: evt, count: 1})
	}
	t.bumpAndReorder(pos)
	return evt, nil
}
