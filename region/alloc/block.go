package alloc

import (
	"github.com/joshuapare/segalloc/internal/format"
	"github.com/joshuapare/segalloc/region"
)

// blocks is the boundary-tag view over a provider's bytes. Every block is
// addressed by its payload offset bp: the header sits at bp-4 and the footer
// at bp+size-8.
type blocks struct {
	p    region.Provider
	data []byte // refreshed after every Grow; the backing array never moves
}

func (b *blocks) refresh() {
	b.data = b.p.Bytes()
}

func (b *blocks) word(off uint32) uint32 {
	return format.ReadU32(b.data, int(off))
}

func (b *blocks) putWord(off, v uint32) {
	format.PutU32(b.data, int(off), v)
}

// size returns the block size recorded in bp's header.
func (b *blocks) size(bp uint32) uint32 {
	return format.TagSize(b.word(format.HeaderOffset(bp)))
}

// allocated returns the allocated flag recorded in bp's header.
func (b *blocks) allocated(bp uint32) bool {
	return format.TagAllocated(b.word(format.HeaderOffset(bp)))
}

// next returns the payload offset of the physically following block.
func (b *blocks) next(bp uint32) uint32 {
	return bp + b.size(bp)
}

// prev returns the payload offset of the physically preceding block, found
// through that block's footer just below bp's header.
func (b *blocks) prev(bp uint32) uint32 {
	return bp - format.TagSize(b.word(bp-format.DoubleWord))
}

// prevAllocated reads the previous block's footer directly.
func (b *blocks) prevAllocated(bp uint32) bool {
	return format.TagAllocated(b.word(bp - format.DoubleWord))
}

func (b *blocks) nextAllocated(bp uint32) bool {
	return b.allocated(b.next(bp))
}

// formatBlock writes matching header and footer tags. The footer position is
// derived from size, never from the header being overwritten.
func (b *blocks) formatBlock(bp, size uint32, allocated bool) {
	w := format.Pack(size, allocated)
	b.putWord(format.HeaderOffset(bp), w)
	b.putWord(format.FooterOffset(bp, size), w)
}

// putEpilogue writes the zero-size allocated header at the end of the heap,
// whose pseudo-payload starts at end.
func (b *blocks) putEpilogue(end uint32) {
	b.putWord(format.HeaderOffset(end), format.Pack(0, true))
}

// payload returns the payload span of an allocated block.
func (b *blocks) payload(bp uint32) []byte {
	end := bp + b.size(bp) - format.DoubleWord
	return b.data[bp:end:end]
}

// Free-list links overlay the first two payload words of a free block.

func (b *blocks) succ(bp uint32) uint32 { return b.word(bp) }

func (b *blocks) pred(bp uint32) uint32 { return b.word(bp + format.WordSize) }

func (b *blocks) setSucc(bp, v uint32) { b.putWord(bp, v) }

func (b *blocks) setPred(bp, v uint32) { b.putWord(bp+format.WordSize, v) }

func (b *blocks) clearLinks(bp uint32) {
	b.setSucc(bp, format.NilOffset)
	b.setPred(bp, format.NilOffset)
}

// layoutPrefix grows the provider by a prefix of at least words words plus
// the prologue and epilogue, padding so that the first payload after the
// prologue is aligned. It returns the offset of the first word and the
// prologue's payload offset.
func (b *blocks) layoutPrefix(words int) (table, prologue uint32, err error) {
	base := b.p.Extent()
	for (base+words*format.WordSize+3*format.WordSize)%format.Alignment != 0 {
		words++
	}
	if _, err := b.p.Grow((words + 3) * format.WordSize); err != nil {
		return 0, 0, err
	}
	b.refresh()

	table = uint32(base)
	for i := range words {
		b.putWord(table+uint32(i)*format.WordSize, format.NilOffset)
	}
	prologue = table + uint32(words)*format.WordSize + format.WordSize
	b.formatBlock(prologue, format.DoubleWord, true)
	b.putEpilogue(prologue + format.DoubleWord)
	return table, prologue, nil
}

// growSpan requests size more bytes and formats them as one free block
// starting over the old epilogue, followed by a new epilogue.
func (b *blocks) growSpan(size int) (uint32, error) {
	base, err := b.p.Grow(size)
	if err != nil {
		return 0, err
	}
	b.refresh()

	bp := uint32(base)
	b.formatBlock(bp, uint32(size), false)
	b.putEpilogue(bp + uint32(size))
	b.clearLinks(bp)
	return bp, nil
}
