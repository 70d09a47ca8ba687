package alloc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/segalloc/internal/format"
	"github.com/joshuapare/segalloc/region"
)

// NextFitAllocator implements Allocator with an implicit block list and a
// roving next-fit search. It keeps no free lists; every search walks block
// headers.
type NextFitAllocator struct {
	blocks

	heapStart uint32 // prologue payload offset
	rover     uint32
	chunk     int
	log       *slog.Logger
	ready     bool
	stats     Stats
}

// NewNextFit creates an uninitialized next-fit allocator over p.
// Options.SizeClasses is ignored.
func NewNextFit(p region.Provider, opts *Options) (*NextFitAllocator, error) {
	chunk, err := opts.chunkSize()
	if err != nil {
		return nil, err
	}
	return &NextFitAllocator{
		blocks: blocks{p: p},
		chunk:  chunk,
		log:    opts.logger(),
	}, nil
}

// Init writes the prologue and epilogue and extends the heap by one chunk.
func (nf *NextFitAllocator) Init() error {
	if nf.ready {
		return ErrAlreadyInitialized
	}

	_, prologue, err := nf.layoutPrefix(0)
	if err != nil {
		return fmt.Errorf("%w: region prefix: %w", ErrNoSpace, err)
	}
	nf.heapStart, nf.rover = prologue, prologue

	if _, err := nf.extendHeap(nf.chunk / format.WordSize); err != nil {
		nf.log.Warn("init failed", "err", err)
		return fmt.Errorf("%w: initial chunk: %w", ErrNoSpace, err)
	}
	nf.stats = Stats{}
	nf.ready = true
	nf.log.Debug("initialized", "extent", nf.p.Extent())
	return nil
}

func (nf *NextFitAllocator) mustBeReady() {
	if !nf.ready {
		panic(ErrNotInitialized)
	}
}

func (nf *NextFitAllocator) extendHeap(words int) (uint32, error) {
	size := format.EvenWords(words)
	bp, err := nf.growSpan(size)
	if err != nil {
		return 0, err
	}
	nf.stats.GrowCalls++
	nf.stats.GrowBytes += int64(size)
	return nf.coalesce(bp), nil
}

// coalesce merges bp with free neighbors and pulls the rover back if it now
// points inside the merged block.
func (nf *NextFitAllocator) coalesce(bp uint32) uint32 {
	prevAlloc := nf.prevAllocated(bp)
	nextAlloc := nf.nextAllocated(bp)
	size := nf.size(bp)

	switch {
	case prevAlloc && nextAlloc:
		return bp
	case prevAlloc && !nextAlloc:
		size += nf.size(nf.next(bp))
		nf.stats.CoalesceForward++
	case !prevAlloc && nextAlloc:
		bp = nf.prev(bp)
		size += nf.size(bp)
		nf.stats.CoalesceBackward++
	default:
		size += nf.size(nf.next(bp))
		bp = nf.prev(bp)
		size += nf.size(bp)
		nf.stats.CoalesceForward++
		nf.stats.CoalesceBackward++
	}
	nf.formatBlock(bp, size, false)

	if nf.rover > bp && nf.rover < bp+size {
		nf.rover = bp
	}
	return bp
}

// findFit searches from the rover to the epilogue, then wraps to the heap
// start and stops at the old rover.
func (nf *NextFitAllocator) findFit(asize uint32) uint32 {
	old := nf.rover
	for ; nf.size(nf.rover) > 0; nf.rover = nf.next(nf.rover) {
		if !nf.allocated(nf.rover) && nf.size(nf.rover) >= asize {
			return nf.rover
		}
	}
	for nf.rover = nf.heapStart; nf.rover < old; nf.rover = nf.next(nf.rover) {
		if !nf.allocated(nf.rover) && nf.size(nf.rover) >= asize {
			return nf.rover
		}
	}
	return format.NilOffset
}

func (nf *NextFitAllocator) place(bp, asize uint32) {
	size := nf.size(bp)
	if rem := size - asize; rem >= format.MinBlockSize {
		nf.formatBlock(bp, asize, true)
		nf.formatBlock(bp+asize, rem, false)
		nf.stats.SplitCount++
		size = asize
	} else {
		nf.formatBlock(bp, size, true)
	}
	nf.stats.allocated(size - format.DoubleWord)
}

// Alloc returns an 8-byte aligned payload of at least size bytes.
func (nf *NextFitAllocator) Alloc(size int) (Ptr, error) {
	nf.mustBeReady()

	switch {
	case size == 0:
		return Nil, nil
	case size < 0:
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	case uint64(size) > maxRequest:
		return Nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	nf.stats.AllocCalls++

	asize := uint32(format.AdjustedSize(size))
	if bp := nf.findFit(asize); bp != format.NilOffset {
		nf.place(bp, asize)
		nf.stats.AllocFastPath++
		return Ptr(bp), nil
	}

	grow := max(int(asize), nf.chunk)
	bp, err := nf.extendHeap(grow / format.WordSize)
	if err != nil {
		nf.log.Warn("out of memory", "request", size, "block", asize, "extent", nf.p.Extent(), "err", err)
		return Nil, fmt.Errorf("%w: need %d bytes: %w", ErrNoSpace, asize, err)
	}
	nf.log.Debug("heap grown", "bytes", grow, "extent", nf.p.Extent())
	nf.place(bp, asize)
	nf.stats.AllocSlowPath++
	return Ptr(bp), nil
}

// Free releases p and merges it with free neighbors.
func (nf *NextFitAllocator) Free(p Ptr) {
	nf.mustBeReady()
	if p == Nil {
		return
	}
	nf.stats.FreeCalls++

	bp := uint32(p)
	size := nf.size(bp)
	nf.stats.freed(size - format.DoubleWord)
	nf.formatBlock(bp, size, false)
	nf.coalesce(bp)
}

// Realloc resizes p by allocate, copy, free.
func (nf *NextFitAllocator) Realloc(p Ptr, size int) (Ptr, error) {
	nf.mustBeReady()
	nf.stats.ReallocCalls++
	return reallocate(nf, p, size)
}

// Payload returns the payload bytes of the block at p.
func (nf *NextFitAllocator) Payload(p Ptr) []byte {
	nf.mustBeReady()
	return nf.payload(uint32(p))
}

// UsableSize is the block size of p minus its header and footer.
func (nf *NextFitAllocator) UsableSize(p Ptr) int {
	nf.mustBeReady()
	return int(nf.size(uint32(p)) - format.DoubleWord)
}

// Bytes exposes the backing region up to its extent.
func (nf *NextFitAllocator) Bytes() []byte { return nf.p.Bytes() }

func (nf *NextFitAllocator) Extent() int { return nf.p.Extent() }

// FirstBlock returns the prologue payload offset.
func (nf *NextFitAllocator) FirstBlock() uint32 { return nf.heapStart }

// FreeListHeads returns nil: the implicit list has no explicit free lists.
func (nf *NextFitAllocator) FreeListHeads() []uint32 { return nil }

// ClassOf places every block in class 0.
func (nf *NextFitAllocator) ClassOf(uint32) int { return 0 }

// GetStats returns a snapshot of the counters.
func (nf *NextFitAllocator) GetStats() Stats { return nf.stats }

// Utilization is peak live payload over the current extent.
func (nf *NextFitAllocator) Utilization() float64 { return nf.stats.utilization(nf.p.Extent()) }

// PrintStats writes a human-readable report to w.
func (nf *NextFitAllocator) PrintStats(w io.Writer) {
	printStats(w, "NEXT-FIT ALLOCATOR", nf.stats, nf.p.Extent())
}

var _ Allocator = (*NextFitAllocator)(nil)
