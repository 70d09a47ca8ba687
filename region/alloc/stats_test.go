package alloc

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_Counters(t *testing.T) {
	sa := newTestSeg(t, 1<<20, nil)

	p := mustAlloc(t, sa, 100)
	q := mustAlloc(t, sa, 100)
	sa.Free(p)
	_, err := sa.Realloc(q, 300)
	require.NoError(t, err)

	s := sa.GetStats()
	assert.Equal(t, 3, s.AllocCalls)
	assert.Equal(t, 1, s.AllocSlowPath)
	assert.Equal(t, 2, s.AllocFastPath)
	assert.Equal(t, 2, s.FreeCalls)
	assert.Equal(t, 1, s.ReallocCalls)
	assert.Equal(t, 1, s.GrowCalls)
	assert.Equal(t, int64(4096), s.GrowBytes)
	assert.Equal(t, int64(304), s.LiveBytes)
	assert.Equal(t, int64(104+304), s.PeakLiveBytes)
	assert.Positive(t, s.SplitCount)
	assert.Positive(t, s.ListInserts)
	assert.Positive(t, s.ListRemoves)
}

func TestStats_Utilization(t *testing.T) {
	sa := newTestSeg(t, 1<<20, nil)
	assert.Zero(t, sa.Utilization())

	p := mustAlloc(t, sa, 4000)
	u := sa.Utilization()
	assert.Greater(t, u, 0.9)
	assert.LessOrEqual(t, u, 1.0)

	sa.Free(p)
	assert.Equal(t, u, sa.Utilization(), "utilization tracks the peak")
}

func TestPrintStats_GroupsThousands(t *testing.T) {
	sa := newTestSeg(t, 1<<20, nil)
	for range 1500 {
		_ = mustAlloc(t, sa, 8)
	}

	var buf bytes.Buffer
	sa.PrintStats(&buf)
	out := buf.String()
	assert.Contains(t, out, "SEGREGATED ALLOCATOR STATISTICS")
	assert.Contains(t, out, "Alloc calls:        1,500")
	assert.Contains(t, out, "Utilization:")

	nf := newTestNextFit(t, 1<<16, nil)
	buf.Reset()
	nf.PrintStats(&buf)
	assert.Contains(t, buf.String(), "NEXT-FIT ALLOCATOR STATISTICS")
}

func TestOptions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sa := newTestSeg(t, 64+4096, &Options{Logger: logger})
	_ = mustAlloc(t, sa, 100)
	_, err := sa.Alloc(8000)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=initialized")
	assert.Contains(t, out, `msg="heap grown"`)
	assert.Contains(t, out, `msg="out of memory"`)
}
