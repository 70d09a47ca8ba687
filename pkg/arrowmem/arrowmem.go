// Package arrowmem exposes a region allocator as an Arrow memory.Allocator,
// so Arrow buffers and builders can live inside a managed heap.
//
// Buffers are 8-byte aligned rather than the 64 bytes Arrow's own allocators
// provide. Allocation failures panic, as Arrow's allocator interface has no
// error return.
package arrowmem

import (
	"fmt"
	"unsafe"

	"github.com/apache/arrow/go/v17/arrow/memory"

	"github.com/joshuapare/segalloc/internal/format"
	"github.com/joshuapare/segalloc/region/alloc"
)

// Heap is the allocator surface the adapter needs.
type Heap interface {
	Alloc(size int) (alloc.Ptr, error)
	Free(p alloc.Ptr)
	Realloc(p alloc.Ptr, size int) (alloc.Ptr, error)
	Payload(p alloc.Ptr) []byte
	Bytes() []byte
}

// Allocator implements memory.Allocator on top of a Heap.
type Allocator struct {
	heap Heap
}

// New wraps an initialized heap.
func New(h Heap) *Allocator {
	return &Allocator{heap: h}
}

// Allocate returns a size-byte slice whose length and capacity are both size.
// A zero size yields an empty slice that owns no heap block.
func (a *Allocator) Allocate(size int) []byte {
	if size == 0 {
		return []byte{}
	}
	p, err := a.heap.Alloc(size)
	if err != nil {
		panic(fmt.Errorf("arrowmem: allocate %d bytes: %w", size, err))
	}
	return a.heap.Payload(p)[:size:size]
}

// Reallocate resizes b, which must have come from this allocator. Slices it
// does not recognize are copied into a fresh allocation and left untouched.
func (a *Allocator) Reallocate(size int, b []byte) []byte {
	p, ok := a.ptrOf(b)
	if !ok {
		out := a.Allocate(size)
		copy(out, b)
		return out
	}
	if size == 0 {
		a.heap.Free(p)
		return []byte{}
	}
	np, err := a.heap.Realloc(p, size)
	if err != nil {
		panic(fmt.Errorf("arrowmem: reallocate to %d bytes: %w", size, err))
	}
	return a.heap.Payload(np)[:size:size]
}

// Free releases b. Anything other than a whole slice returned by Allocate or
// Reallocate is ignored.
func (a *Allocator) Free(b []byte) {
	if p, ok := a.ptrOf(b); ok {
		a.heap.Free(p)
	}
}

// ptrOf maps a slice returned by Allocate or Reallocate back to its payload
// address. The region's backing array never moves, so the slice's offset from
// the region base is the Ptr. The offset must start an allocated block whose
// payload holds all of cap(b); interior sub-slices are rejected.
func (a *Allocator) ptrOf(b []byte) (alloc.Ptr, bool) {
	if len(b) == 0 {
		return alloc.Nil, false
	}
	region := a.heap.Bytes()
	if len(region) == 0 {
		return alloc.Nil, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(region)))
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	if addr < base || addr >= base+uintptr(len(region)) {
		return alloc.Nil, false
	}
	off := addr - base
	if off%format.Alignment != 0 || off < format.DoubleWord {
		return alloc.Nil, false
	}
	hdr := format.ReadTag(region, int(format.HeaderOffset(uint32(off))))
	if !hdr.Allocated || hdr.Size < format.MinBlockSize || hdr.Size%format.Alignment != 0 {
		return alloc.Nil, false
	}
	if uint64(off)+uint64(hdr.Size) > uint64(len(region)) {
		return alloc.Nil, false
	}
	if format.ReadTag(region, int(format.FooterOffset(uint32(off), hdr.Size))) != hdr {
		return alloc.Nil, false
	}
	if cap(b) > int(hdr.Size-format.DoubleWord) {
		return alloc.Nil, false
	}
	return alloc.Ptr(off), true
}

var _ memory.Allocator = (*Allocator)(nil)
