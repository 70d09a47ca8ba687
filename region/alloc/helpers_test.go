package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/segalloc/region"
	"github.com/joshuapare/segalloc/region/verify"
)

// testAllocator is the surface shared by both implementations that tests need.
type testAllocator interface {
	Allocator
	verify.Heap
	UsableSize(p Ptr) int
	Extent() int
	GetStats() Stats
}

// newTestSeg returns an initialized SegAllocator over a Memory of max bytes.
func newTestSeg(t testing.TB, max int, opts *Options) *SegAllocator {
	t.Helper()
	sa, err := NewSeg(region.NewMemory(max), opts)
	require.NoError(t, err)
	require.NoError(t, sa.Init())
	requireValid(t, sa)
	return sa
}

// newTestNextFit returns an initialized NextFitAllocator over a Memory of max bytes.
func newTestNextFit(t testing.TB, max int, opts *Options) *NextFitAllocator {
	t.Helper()
	nf, err := NewNextFit(region.NewMemory(max), opts)
	require.NoError(t, err)
	require.NoError(t, nf.Init())
	requireValid(t, nf)
	return nf
}

func requireValid(t testing.TB, h verify.Heap) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(h))
}

// mustAlloc allocates and checks the basic payload contract.
func mustAlloc(t testing.TB, a testAllocator, size int) Ptr {
	t.Helper()
	p, err := a.Alloc(size)
	require.NoError(t, err)
	require.NotEqual(t, Nil, p)
	require.Zero(t, uint32(p)%8, "payload 0x%X not aligned", p)
	require.GreaterOrEqual(t, len(a.Payload(p)), size)
	return p
}

func fill(b []byte, v byte) {
	for i := range b {
		b[i] = v
	}
}

// requireFilled checks that b holds only v.
func requireFilled(t testing.TB, b []byte, v byte) {
	t.Helper()
	for i, got := range b {
		if got != v {
			require.Failf(t, "payload corrupted", "byte %d = 0x%02X, want 0x%02X", i, got, v)
		}
	}
}

// freeBlocks returns every free block in address order.
func freeBlocks(t testing.TB, h verify.Heap) []verify.Block {
	t.Helper()
	var out []verify.Block
	require.NoError(t, verify.Walk(h, func(b verify.Block) error {
		if !b.Allocated {
			out = append(out, b)
		}
		return nil
	}))
	return out
}

// listSizes returns the block sizes along one class list.
func listSizes(sa *SegAllocator, slot int) []uint32 {
	var sizes []uint32
	for bp := sa.head(slot); bp != 0; bp = sa.succ(bp) {
		sizes = append(sizes, sa.size(bp))
	}
	return sizes
}
