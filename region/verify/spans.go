package verify

import (
	"fmt"

	"github.com/google/btree"
)

type span struct {
	start, end uint32 // [start, end)
}

// Spans keeps track of live payload ranges and rejects any new range that
// overlaps one already recorded.
type Spans struct {
	tree *btree.BTreeG[span]
}

// NewSpans returns an empty tracker.
func NewSpans() *Spans {
	return &Spans{
		tree: btree.NewG(32, func(a, b span) bool { return a.start < b.start }),
	}
}

// Add records the payload [off, off+n). It fails if the range overlaps a
// recorded one.
func (s *Spans) Add(off uint32, n int) error {
	sp := span{start: off, end: off + uint32(n)}
	var clash *span
	s.tree.DescendLessOrEqual(sp, func(prev span) bool {
		if prev.end > sp.start {
			clash = &prev
		}
		return false
	})
	if clash == nil {
		s.tree.AscendGreaterOrEqual(sp, func(next span) bool {
			if next.start < sp.end {
				clash = &next
			}
			return false
		})
	}
	if clash != nil {
		return &ValidationError{
			Type:    "Overlap",
			Message: fmt.Sprintf("payload [%d,%d) overlaps live payload [%d,%d)", sp.start, sp.end, clash.start, clash.end),
			Offset:  int(off),
		}
	}
	s.tree.ReplaceOrInsert(sp)
	return nil
}

// Remove forgets the range starting at off.
func (s *Spans) Remove(off uint32) {
	s.tree.Delete(span{start: off})
}

// Len returns the number of live ranges.
func (s *Spans) Len() int { return s.tree.Len() }
