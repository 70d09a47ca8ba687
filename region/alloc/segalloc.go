package alloc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/segalloc/internal/format"
	"github.com/joshuapare/segalloc/region"
)

// maxRequest is the largest payload whose adjusted block size still fits a
// 32-bit size field.
const maxRequest = format.MaxBlockSize - 2*format.DoubleWord

// SegAllocator implements Allocator with segregated, size-ordered explicit
// free lists. The list heads live at the start of the region.
type SegAllocator struct {
	blocks

	classes  *sizeClassTable
	table    uint32 // offset of class-head slot 0
	prologue uint32 // prologue payload offset
	chunk    int
	log      *slog.Logger
	ready    bool
	stats    Stats
}

// NewSeg creates an uninitialized segregated-fit allocator over p.
func NewSeg(p region.Provider, opts *Options) (*SegAllocator, error) {
	classes, err := newSizeClassTable(opts.sizeClasses())
	if err != nil {
		return nil, err
	}
	chunk, err := opts.chunkSize()
	if err != nil {
		return nil, err
	}
	return &SegAllocator{
		blocks:  blocks{p: p},
		classes: classes,
		chunk:   chunk,
		log:     opts.logger(),
	}, nil
}

// Init lays out the class heads, the prologue and the epilogue, then extends
// the heap by one minimum block.
func (sa *SegAllocator) Init() error {
	if sa.ready {
		return ErrAlreadyInitialized
	}

	table, prologue, err := sa.layoutPrefix(sa.classes.NumSlots())
	if err != nil {
		return fmt.Errorf("%w: region prefix: %w", ErrNoSpace, err)
	}
	sa.table, sa.prologue = table, prologue

	if _, err := sa.extendHeap(2 * format.DoubleWord / format.WordSize); err != nil {
		sa.log.Warn("init failed", "err", err)
		return fmt.Errorf("%w: initial block: %w", ErrNoSpace, err)
	}
	sa.stats = Stats{}
	sa.ready = true

	sa.log.Debug("initialized",
		"classes", sa.classes.String(),
		"prefix", sa.prologue+format.DoubleWord,
		"extent", sa.p.Extent())
	return nil
}

func (sa *SegAllocator) mustBeReady() {
	if !sa.ready {
		panic(ErrNotInitialized)
	}
}

// extendHeap grows the region by words words (rounded up to even), formats
// the new span as a free block, coalesces it with a free tail and inserts
// the result.
func (sa *SegAllocator) extendHeap(words int) (uint32, error) {
	size := format.EvenWords(words)
	bp, err := sa.growSpan(size)
	if err != nil {
		return 0, err
	}
	sa.stats.GrowCalls++
	sa.stats.GrowBytes += int64(size)

	bp = sa.coalesce(bp)
	sa.insert(bp)
	return bp, nil
}

// place carves asize bytes off the front of the free block bp.
func (sa *SegAllocator) place(bp, asize uint32) {
	sa.remove(bp)

	size := sa.size(bp)
	if rem := size - asize; rem >= format.MinBlockSize {
		sa.formatBlock(bp, asize, true)
		rest := bp + asize
		sa.formatBlock(rest, rem, false)
		sa.clearLinks(rest)
		sa.insert(sa.coalesce(rest))
		sa.stats.SplitCount++
		size = asize
	} else {
		sa.formatBlock(bp, size, true)
	}
	sa.stats.allocated(size - format.DoubleWord)
}

// Alloc returns an 8-byte aligned payload of at least size bytes.
func (sa *SegAllocator) Alloc(size int) (Ptr, error) {
	sa.mustBeReady()

	switch {
	case size == 0:
		return Nil, nil
	case size < 0:
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	case uint64(size) > maxRequest:
		return Nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	sa.stats.AllocCalls++

	asize := uint32(format.AdjustedSize(size))
	if bp := sa.findFit(asize); bp != format.NilOffset {
		sa.place(bp, asize)
		sa.stats.AllocFastPath++
		return Ptr(bp), nil
	}

	grow := max(int(asize), sa.chunk)
	if _, err := sa.extendHeap(grow / format.WordSize); err != nil {
		sa.log.Warn("out of memory", "request", size, "block", asize, "extent", sa.p.Extent(), "err", err)
		return Nil, fmt.Errorf("%w: need %d bytes: %w", ErrNoSpace, asize, err)
	}
	sa.log.Debug("heap grown", "bytes", grow, "extent", sa.p.Extent())

	// The grown span alone holds asize bytes, so the search cannot miss.
	bp := sa.findFit(asize)
	sa.place(bp, asize)
	sa.stats.AllocSlowPath++
	return Ptr(bp), nil
}

// Free releases p. Free(Nil) does nothing.
func (sa *SegAllocator) Free(p Ptr) {
	sa.mustBeReady()
	if p == Nil {
		return
	}
	sa.stats.FreeCalls++

	bp := uint32(p)
	size := sa.size(bp)
	sa.stats.freed(size - format.DoubleWord)
	sa.formatBlock(bp, size, false)
	sa.clearLinks(bp)
	sa.insert(sa.coalesce(bp))
}

// Realloc resizes p by allocate, copy, free.
func (sa *SegAllocator) Realloc(p Ptr, size int) (Ptr, error) {
	sa.mustBeReady()
	sa.stats.ReallocCalls++
	return reallocate(sa, p, size)
}

// Payload returns the full usable span of an allocated block.
func (sa *SegAllocator) Payload(p Ptr) []byte {
	sa.mustBeReady()
	return sa.payload(uint32(p))
}

// UsableSize returns how many bytes the block behind p can hold.
func (sa *SegAllocator) UsableSize(p Ptr) int {
	sa.mustBeReady()
	return int(sa.size(uint32(p)) - format.DoubleWord)
}

// Bytes returns the whole region, prefix included.
func (sa *SegAllocator) Bytes() []byte { return sa.p.Bytes() }

// Extent returns the current region size.
func (sa *SegAllocator) Extent() int { return sa.p.Extent() }

// FirstBlock returns the prologue's payload offset.
func (sa *SegAllocator) FirstBlock() uint32 { return sa.prologue }

// FreeListHeads returns the current head of every class list.
func (sa *SegAllocator) FreeListHeads() []uint32 {
	heads := make([]uint32, sa.classes.NumSlots())
	for i := range heads {
		heads[i] = sa.head(i)
	}
	return heads
}

// ClassOf returns the list slot a block of the given size belongs to.
func (sa *SegAllocator) ClassOf(size uint32) int { return sa.classOf(size) }

// GetStats returns a copy of the counters.
func (sa *SegAllocator) GetStats() Stats { return sa.stats }

// Utilization returns peak live payload divided by the current extent.
func (sa *SegAllocator) Utilization() float64 { return sa.stats.utilization(sa.p.Extent()) }

// PrintStats writes a counter report to w.
func (sa *SegAllocator) PrintStats(w io.Writer) {
	printStats(w, "SEGREGATED ALLOCATOR", sa.stats, sa.p.Extent())
}

var _ Allocator = (*SegAllocator)(nil)
