package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// classOneBlocks allocates blocks of 40, 48, 56 and 64 bytes (all in the
// 33..64 class), each followed by an allocated separator.
func classOneBlocks(t *testing.T) (*SegAllocator, map[uint32]Ptr) {
	t.Helper()
	sa := newTestSeg(t, 1<<16, nil)
	ps := make(map[uint32]Ptr)
	for _, size := range []uint32{40, 48, 56, 64} {
		ps[size] = mustAlloc(t, sa, int(size)-8)
		require.Equal(t, int(size)-8, sa.UsableSize(ps[size]))
		_ = mustAlloc(t, sa, 8)
	}
	return sa, ps
}

func TestInsert_Ordering(t *testing.T) {
	sa, ps := classOneBlocks(t)
	slot := sa.ClassOf(40)

	sa.Free(ps[56])
	assert.Equal(t, []uint32{56}, listSizes(sa, slot), "empty list")

	sa.Free(ps[40])
	assert.Equal(t, []uint32{40, 56}, listSizes(sa, slot), "new head")

	sa.Free(ps[64])
	assert.Equal(t, []uint32{40, 56, 64}, listSizes(sa, slot), "tail")

	sa.Free(ps[48])
	assert.Equal(t, []uint32{40, 48, 56, 64}, listSizes(sa, slot), "middle")

	requireValid(t, sa)
}

func TestInsert_EqualSizeGoesFirst(t *testing.T) {
	sa := newTestSeg(t, 1<<16, nil)

	a := mustAlloc(t, sa, 40)
	_ = mustAlloc(t, sa, 8)
	b := mustAlloc(t, sa, 40)
	_ = mustAlloc(t, sa, 8)

	sa.Free(a)
	sa.Free(b)
	slot := sa.ClassOf(48)
	assert.Equal(t, uint32(b), sa.head(slot))
	assert.Equal(t, uint32(a), sa.succ(uint32(b)))
	assert.Equal(t, uint32(b), sa.pred(uint32(a)))
	requireValid(t, sa)
}

func TestRemove_HeadMiddleTail(t *testing.T) {
	sa, ps := classOneBlocks(t)
	slot := sa.ClassOf(40)
	for _, size := range []uint32{40, 48, 56, 64} {
		sa.Free(ps[size])
	}
	require.Equal(t, []uint32{40, 48, 56, 64}, listSizes(sa, slot))

	p := mustAlloc(t, sa, 40) // block 48
	assert.Equal(t, ps[48], p)
	assert.Equal(t, []uint32{40, 56, 64}, listSizes(sa, slot), "middle removed")

	p = mustAlloc(t, sa, 32) // block 40
	assert.Equal(t, ps[40], p)
	assert.Equal(t, []uint32{56, 64}, listSizes(sa, slot), "head removed")

	p = mustAlloc(t, sa, 56) // block 64
	assert.Equal(t, ps[64], p)
	assert.Equal(t, []uint32{56}, listSizes(sa, slot), "tail removed")

	p = mustAlloc(t, sa, 48)
	assert.Equal(t, ps[56], p)
	assert.Empty(t, listSizes(sa, slot), "last node removed")
	requireValid(t, sa)
}

func TestRemove_ClearsLinks(t *testing.T) {
	sa, ps := classOneBlocks(t)
	sa.Free(ps[40])
	sa.Free(ps[48])

	bp := uint32(ps[40])
	sa.remove(bp)
	assert.Zero(t, sa.succ(bp))
	assert.Zero(t, sa.pred(bp))
	assert.Zero(t, sa.pred(uint32(ps[48])), "new head has no predecessor")

	sa.insert(bp)
	requireValid(t, sa)
}

func TestFindFit_Miss(t *testing.T) {
	sa := newTestSeg(t, 1<<16, nil)
	assert.Zero(t, sa.findFit(24), "only a 16-byte block is free after Init")
	assert.Equal(t, uint32(48), sa.findFit(16))
}

func TestFreeListHeads(t *testing.T) {
	sa := newTestSeg(t, 1<<16, nil)
	heads := sa.FreeListHeads()
	require.Len(t, heads, 9)
	assert.Equal(t, uint32(48), heads[0])
	for _, h := range heads[1:] {
		assert.Zero(t, h)
	}
}
