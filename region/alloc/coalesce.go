package alloc

// coalesce merges the free block bp with any free physical neighbors and
// returns the merged block, unlinked. Neighbors are removed from their lists
// before any size word changes, because remove locates the list by size.
// The caller inserts the result.
func (sa *SegAllocator) coalesce(bp uint32) uint32 {
	prevAlloc := sa.prevAllocated(bp)
	nextAlloc := sa.nextAllocated(bp)
	size := sa.size(bp)

	switch {
	case prevAlloc && nextAlloc: // alloc -> bp -> alloc
		return bp

	case prevAlloc && !nextAlloc: // alloc -> bp -> free
		next := sa.next(bp)
		sa.remove(next)
		size += sa.size(next)
		sa.formatBlock(bp, size, false)
		sa.stats.CoalesceForward++

	case !prevAlloc && nextAlloc: // free -> bp -> alloc
		prev := sa.prev(bp)
		sa.remove(prev)
		size += sa.size(prev)
		bp = prev
		sa.formatBlock(bp, size, false)
		sa.stats.CoalesceBackward++

	default: // free -> bp -> free
		prev, next := sa.prev(bp), sa.next(bp)
		sa.remove(prev)
		sa.remove(next)
		size += sa.size(prev) + sa.size(next)
		bp = prev
		sa.formatBlock(bp, size, false)
		sa.stats.CoalesceForward++
		sa.stats.CoalesceBackward++
	}

	sa.clearLinks(bp)
	return bp
}

