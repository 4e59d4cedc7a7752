package entropy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dlecorfec/tpcodec/internal/bitio"
	"github.com/dlecorfec/tpcodec/internal/tpcodecerr"
)

func TestRoundTripSequence(t *testing.T) {
	seq := []int32{5, 5, 5, 7, 5, 0, -3, 5, 5, 100, -100, 0, 0, 1}

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	enc := NewTable()
	for _, v := range seq {
		require.NoError(t, enc.PutInt(bw, v))
	}
	require.NoError(t, bw.Flush())

	br := bitio.NewReader(&buf)
	dec := NewTable()
	// ref replays the encoder symbol by symbol so its table can be
	// compared with the decoder's after each step.
	var refBuf bytes.Buffer
	refW := bitio.NewWriter(&refBuf)
	ref := NewTable()
	for _, want := range seq {
		got, err := dec.GetInt(br)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, ref.PutInt(refW, want))
		require.Equal(t, ref.events, dec.events, "tables diverged after symbol %d", want)
	}
	require.Equal(t, enc.events, dec.events)
}

func TestSortInvariantHolds(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	tbl := NewTable()
	values := []int32{3, 1, 4, 1, 5, 9, 2, 6, 1, 1, 3, 3, 3}
	for _, v := range values {
		require.NoError(t, tbl.PutInt(bw, v))
		assertSorted(t, tbl)
	}
}

func assertSorted(t *testing.T, tbl *Table) {
	t.Helper()
	escapeSeen := false
	for i, e := range tbl.events {
		if i > 0 {
			require.GreaterOrEqual(t, tbl.events[i-1].count, e.count)
		}
		if e.value == Escape {
			escapeSeen = true
		}
	}
	require.True(t, escapeSeen)
}

func TestFirstSymbolIsJustTheEscapePayload(t *testing.T) {
	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	tbl := NewTable()
	require.NoError(t, tbl.PutInt(bw, 5))
	require.NoError(t, bw.Flush())
	// The table starts with exactly one event (ESCAPE), so lo==hi
	// before any bit is read: no split bit is emitted, only the
	// 32-bit ESCAPE payload, padded up to one byte boundary.
	require.Equal(t, 4, buf.Len())
}

func TestAlphabetExhaustedOnNewSymbolPastCap(t *testing.T) {
	tbl := NewTable()
	// Pre-fill the table to its cap without paying for 200000 real
	// PutInt calls; this reaches the same state PutInt would build up.
	for i := 0; i < MaxEvents-1; i++ {
		tbl.events = append(tbl.events, event{value: int32(i), count: 1})
	}
	require.Len(t, tbl.events, MaxEvents)

	var buf bytes.Buffer
	bw := bitio.NewWriter(&buf)
	err := tbl.PutInt(bw, -1)
	require.Error(t, err)

	var codecErr *tpcodecerr.Error
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, tpcodecerr.AlphabetExhausted, codecErr.Kind)
}
