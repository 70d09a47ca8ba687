package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segalloc/region"
)

func TestNextFitInit_Layout(t *testing.T) {
	nf := newTestNextFit(t, 1<<16, nil)

	assert.Equal(t, uint32(8), nf.FirstBlock())
	assert.Equal(t, 16+4096, nf.Extent())
	assert.Nil(t, nf.FreeListHeads())

	free := freeBlocks(t, nf)
	require.Len(t, free, 1)
	assert.Equal(t, uint32(16), free[0].Offset)
	assert.Equal(t, uint32(4096), free[0].Size)

	require.ErrorIs(t, nf.Init(), ErrAlreadyInitialized)
}

func TestNextFit_UseBeforeInit(t *testing.T) {
	nf, err := NewNextFit(region.NewMemory(1<<16), nil)
	require.NoError(t, err)
	require.PanicsWithValue(t, ErrNotInitialized, func() { _, _ = nf.Alloc(1) })
	require.PanicsWithValue(t, ErrNotInitialized, func() { nf.Free(16) })
}

func TestNextFit_Reuse(t *testing.T) {
	nf := newTestNextFit(t, 1<<16, nil)

	p := mustAlloc(t, nf, 100)
	assert.Equal(t, Ptr(16), p)
	nf.Free(p)
	requireValid(t, nf)

	q := mustAlloc(t, nf, 100)
	assert.Equal(t, p, q)
	assert.Equal(t, 16+4096, nf.Extent())
}

func TestNextFit_SearchesFromRover(t *testing.T) {
	nf := newTestNextFit(t, 1<<16, nil)

	a := mustAlloc(t, nf, 8)
	_ = mustAlloc(t, nf, 8)
	c := mustAlloc(t, nf, 8)
	nf.Free(a)

	// First fit would return a; next fit continues past the last placement.
	d := mustAlloc(t, nf, 8)
	assert.Greater(t, d, c)
	requireValid(t, nf)
}

func TestNextFit_WrapsAround(t *testing.T) {
	nf := newTestNextFit(t, 16+4096, nil)

	a := mustAlloc(t, nf, 4008) // block 4016 at 16, 80 left
	assert.Equal(t, Ptr(16), a)
	tail := mustAlloc(t, nf, 64) // block 72 takes the whole 80-byte remainder
	assert.Equal(t, Ptr(16+4016), tail)
	assert.Equal(t, 80, nf.UsableSize(tail)+8)

	nf.Free(a)
	p := mustAlloc(t, nf, 100)
	assert.Equal(t, a, p, "search wraps from the epilogue to the heap start")
	requireValid(t, nf)
}

func TestNextFit_RoverResetOnCoalesce(t *testing.T) {
	nf := newTestNextFit(t, 1<<16, nil)

	a := mustAlloc(t, nf, 8)
	b := mustAlloc(t, nf, 8)
	require.Equal(t, uint32(b), nf.rover)

	nf.Free(a)
	nf.Free(b) // merges a, b and the tail
	assert.Equal(t, uint32(a), nf.rover)
	requireValid(t, nf)
}

func TestNextFit_GrowsOnMiss(t *testing.T) {
	nf := newTestNextFit(t, 1<<20, nil)
	before := nf.Extent()

	p := mustAlloc(t, nf, 6000)
	assert.Greater(t, nf.Extent(), before)
	assert.Equal(t, 1, nf.GetStats().AllocSlowPath)
	assert.Equal(t, Ptr(16), p, "grown span merges with the free chunk before it")
	requireValid(t, nf)
}

func TestNextFit_CapacityFailure(t *testing.T) {
	nf := newTestNextFit(t, 16+4096, nil)
	extent := nf.Extent()

	_, err := nf.Alloc(5000)
	require.ErrorIs(t, err, ErrNoSpace)
	require.ErrorIs(t, err, region.ErrExhausted)
	assert.Equal(t, extent, nf.Extent())
	requireValid(t, nf)
}

func TestNextFitRealloc(t *testing.T) {
	nf := newTestNextFit(t, 1<<16, nil)

	p := mustAlloc(t, nf, 24)
	copy(nf.Payload(p), "abcdefghijklmnopqrstuvwx")

	q, err := nf.Realloc(p, 500)
	require.NoError(t, err)
	assert.Equal(t, "abcdefghijklmnopqrstuvwx", string(nf.Payload(q)[:24]))

	r, err := nf.Realloc(q, 0)
	require.NoError(t, err)
	assert.Equal(t, Nil, r)
	assert.Len(t, freeBlocks(t, nf), 1)
	requireValid(t, nf)
}
