package alloc

import "github.com/joshuapare/segalloc/internal/format"

// head returns the first free block of a class, or NilOffset.
func (sa *SegAllocator) head(slot int) uint32 {
	return sa.word(sa.table + uint32(slot)*format.WordSize)
}

func (sa *SegAllocator) setHead(slot int, bp uint32) {
	sa.putWord(sa.table+uint32(slot)*format.WordSize, bp)
}

// classOf maps a block size to its list slot.
func (sa *SegAllocator) classOf(size uint32) int {
	return sa.classes.getSizeClass(size)
}

// insert links bp into its class list, keeping the list in ascending size
// order. It stops before the first node at least as large as bp.
func (sa *SegAllocator) insert(bp uint32) {
	sa.stats.ListInserts++

	size := sa.size(bp)
	slot := sa.classOf(size)

	var pred uint32 = format.NilOffset
	succ := sa.head(slot)
	for succ != format.NilOffset && sa.size(succ) < size {
		pred = succ
		succ = sa.succ(succ)
	}

	sa.setPred(bp, pred)
	sa.setSucc(bp, succ)

	if pred == format.NilOffset {
		// Empty list or new smallest node
		sa.setHead(slot, bp)
	} else {
		sa.setSucc(pred, bp)
	}
	if succ != format.NilOffset {
		sa.setPred(succ, bp)
	}
}

// remove unlinks bp from the class list selected by its current size. The
// size must not have changed since bp was inserted.
func (sa *SegAllocator) remove(bp uint32) {
	sa.stats.ListRemoves++

	slot := sa.classOf(sa.size(bp))
	pred, succ := sa.pred(bp), sa.succ(bp)

	if pred == format.NilOffset {
		sa.setHead(slot, succ)
	} else {
		sa.setSucc(pred, succ)
	}
	if succ != format.NilOffset {
		sa.setPred(succ, pred)
	}
	sa.clearLinks(bp)
}

// findFit returns the first block of at least asize bytes, starting at
// asize's class and moving to larger classes. Within a class the first fit
// is the smallest fit because lists are sorted.
func (sa *SegAllocator) findFit(asize uint32) uint32 {
	for slot := sa.classOf(asize); slot < sa.classes.NumSlots(); slot++ {
		for bp := sa.head(slot); bp != format.NilOffset; bp = sa.succ(bp) {
			if sa.size(bp) >= asize {
				return bp
			}
		}
	}
	return format.NilOffset
}
