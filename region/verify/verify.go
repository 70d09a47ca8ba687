package verify

import (
	"fmt"

	"github.com/joshuapare/segalloc/internal/format"
)

// Heap is the read-only view of an allocator needed by the checks.
type Heap interface {
	// Bytes returns the region from offset 0 to the current extent.
	Bytes() []byte
	// FirstBlock returns the prologue's payload offset.
	FirstBlock() uint32
	// FreeListHeads returns one head per class, or nil if the allocator
	// keeps no explicit lists.
	FreeListHeads() []uint32
	// ClassOf maps a block size to its list slot.
	ClassOf(size uint32) int
}

// Error types for different validation failures.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Block describes one heap block between the prologue and the epilogue.
type Block struct {
	Offset    uint32 // payload offset
	Size      uint32 // total block size, tags included
	Allocated bool
}

// AllInvariants validates all heap invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(h Heap) error {
	if err := Blocks(h); err != nil {
		return err
	}
	return FreeLists(h)
}

// Walk calls fn for every block in address order. It stops at the first
// structural problem or the first error returned by fn.
func Walk(h Heap, fn func(Block) error) error {
	data := h.Bytes()
	end := uint32(len(data))
	pro := h.FirstBlock()

	if pro < format.WordSize || pro+format.DoubleWord > end {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("prologue payload %d outside region of %d bytes", pro, end),
			Offset:  int(pro),
		}
	}
	hdr := format.ReadU32(data, int(format.HeaderOffset(pro)))
	ftr := format.ReadU32(data, int(pro))
	if want := format.Pack(format.DoubleWord, true); hdr != want || ftr != want {
		return &ValidationError{
			Type:    "Prologue",
			Message: fmt.Sprintf("bad prologue tags: header=0x%X footer=0x%X", hdr, ftr),
			Offset:  int(format.HeaderOffset(pro)),
		}
	}

	prevFree := false
	bp := pro + format.DoubleWord
	for {
		if bp > end {
			return &ValidationError{
				Type:    "Block",
				Message: fmt.Sprintf("block header past region end %d", end),
				Offset:  int(bp),
			}
		}
		tag := format.ReadTag(data, int(format.HeaderOffset(bp)))
		if tag.Size == 0 {
			break
		}

		b := Block{Offset: bp, Size: tag.Size, Allocated: tag.Allocated}
		if err := checkBlock(data, b); err != nil {
			return err
		}
		if !b.Allocated && prevFree {
			return &ValidationError{
				Type:    "Coalescing",
				Message: "adjacent free blocks",
				Offset:  int(bp),
				Details: map[string]any{"size": b.Size},
			}
		}
		prevFree = !b.Allocated

		if fn != nil {
			if err := fn(b); err != nil {
				return err
			}
		}
		bp += tag.Size
	}

	epi := format.ReadTag(data, int(format.HeaderOffset(bp)))
	if !epi.Allocated {
		return &ValidationError{
			Type:    "Epilogue",
			Message: "epilogue not marked allocated",
			Offset:  int(format.HeaderOffset(bp)),
		}
	}
	if bp != end {
		return &ValidationError{
			Type:    "Epilogue",
			Message: fmt.Sprintf("epilogue ends at %d, region extent is %d", bp, end),
			Offset:  int(format.HeaderOffset(bp)),
		}
	}
	return nil
}

func checkBlock(data []byte, b Block) error {
	if !format.IsAligned(b.Offset) {
		return &ValidationError{
			Type:    "Block",
			Message: "payload not 8-byte aligned",
			Offset:  int(b.Offset),
		}
	}
	if b.Size < format.MinBlockSize || !format.IsAligned(b.Size) {
		return &ValidationError{
			Type:    "Block",
			Message: fmt.Sprintf("invalid block size %d", b.Size),
			Offset:  int(b.Offset),
		}
	}
	// The next header sits at Offset+Size-4, so that word must be in range too.
	if uint64(b.Offset)+uint64(b.Size) > uint64(len(data)) {
		return &ValidationError{
			Type:    "Block",
			Message: fmt.Sprintf("block of %d bytes crosses region end %d", b.Size, len(data)),
			Offset:  int(b.Offset),
		}
	}
	hdr := format.ReadU32(data, int(format.HeaderOffset(b.Offset)))
	ftr := format.ReadU32(data, int(format.FooterOffset(b.Offset, b.Size)))
	if hdr != ftr {
		return &ValidationError{
			Type:    "Block",
			Message: fmt.Sprintf("header 0x%X does not match footer 0x%X", hdr, ftr),
			Offset:  int(b.Offset),
		}
	}
	return nil
}

// Blocks validates the implicit block list.
func Blocks(h Heap) error {
	return Walk(h, nil)
}

// FreeLists validates every explicit free list against the block walk:
// listed nodes are free, filed in the right class, sorted by size, doubly
// linked, and together they cover every free block exactly once.
func FreeLists(h Heap) error {
	heads := h.FreeListHeads()
	if heads == nil {
		return nil
	}

	free := make(map[uint32]uint32)
	if err := Walk(h, func(b Block) error {
		if !b.Allocated {
			free[b.Offset] = b.Size
		}
		return nil
	}); err != nil {
		return err
	}

	data := h.Bytes()
	seen := make(map[uint32]bool, len(free))
	for slot, head := range heads {
		var pred, last uint32
		for bp := head; bp != format.NilOffset; bp = format.ReadU32(data, int(bp)) {
			size, ok := free[bp]
			if !ok {
				return &ValidationError{
					Type:    "FreeList",
					Message: "listed node is not a free block",
					Offset:  int(bp),
					Details: map[string]any{"class": slot},
				}
			}
			if seen[bp] {
				return &ValidationError{
					Type:    "FreeList",
					Message: "node listed twice or list has a cycle",
					Offset:  int(bp),
					Details: map[string]any{"class": slot},
				}
			}
			seen[bp] = true

			if got := h.ClassOf(size); got != slot {
				return &ValidationError{
					Type:    "FreeList",
					Message: fmt.Sprintf("block of %d bytes filed in class %d, belongs in %d", size, slot, got),
					Offset:  int(bp),
				}
			}
			if size < last {
				return &ValidationError{
					Type:    "FreeList",
					Message: fmt.Sprintf("list not ascending: %d after %d", size, last),
					Offset:  int(bp),
					Details: map[string]any{"class": slot},
				}
			}
			if got := format.ReadU32(data, int(bp+format.WordSize)); got != pred {
				return &ValidationError{
					Type:    "FreeList",
					Message: fmt.Sprintf("predecessor link %d, expected %d", got, pred),
					Offset:  int(bp),
					Details: map[string]any{"class": slot},
				}
			}
			pred, last = bp, size
		}
	}

	if len(seen) != len(free) {
		for bp := range free {
			if !seen[bp] {
				return &ValidationError{
					Type:    "FreeList",
					Message: "free block missing from every list",
					Offset:  int(bp),
					Details: map[string]any{"listed": len(seen), "free": len(free)},
				}
			}
		}
	}
	return nil
}
