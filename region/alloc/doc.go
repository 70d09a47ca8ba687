// Package alloc implements dynamic memory allocators over a growable region.
//
// # Overview
//
// The allocators manage a single contiguous byte span obtained from a
// region.Provider. They own all layout, bookkeeping, reuse, and fragmentation
// control inside it. Metadata is embedded in the span itself: every block is
// bracketed by a 4-byte header and a 4-byte footer (boundary tags), each
// holding the block size with the allocated flag packed into bit 0.
//
//	    header        payload                 footer
//	+-----------+---------------------------+-----------+
//	| size | a  |  ... client bytes ...     | size | a  |
//	+-----------+---------------------------+-----------+
//	            ^ Ptr (8-byte aligned)
//
// A free block reuses the first two payload words as successor and
// predecessor links into its size class list. Links are region offsets; zero
// means none.
//
// # Implementations
//
// SegAllocator: segregated free lists with best fit inside each class
//
//   - Class heads live in a fixed table at the start of the region
//   - Lists are kept in ascending size order, so the first fit is the best fit
//   - Freed blocks are coalesced immediately with both physical neighbors
//   - Splits happen only when the remainder is at least a minimum block
//
// NextFitAllocator: implicit list with a next-fit rover
//
//   - No free lists; search walks physical blocks from the rover
//   - Same block format, coalescing, and splitting rules
//
// # Size Classes
//
// The default table has nine classes keyed on total block size:
//
//	Class 0:       ≤   32 bytes
//	Class 1:       ≤   64 bytes
//	Class 2:       ≤  128 bytes
//	Class 3:       ≤  256 bytes
//	Class 4:       ≤  512 bytes
//	Class 5:       ≤ 1024 bytes
//	Class 6:       ≤ 2048 bytes
//	Class 7:       ≤ 4096 bytes
//	Class 8:       >  4096 bytes (overflow)
//
// Other tables can be selected through Options.SizeClasses.
//
// # Region Layout
//
//	[class heads...][pad][prologue hdr][prologue ftr][blocks...][epilogue hdr]
//
// The prologue is a permanently allocated 8-byte block and the epilogue a
// zero-size allocated header. Together they remove every edge case from
// neighbor inspection.
//
// # Usage Example
//
//	mem := region.NewMemory(region.DefaultMaxHeap)
//	sa, err := alloc.NewSeg(mem, nil)
//	if err != nil {
//	    return err
//	}
//	if err := sa.Init(); err != nil {
//	    return err
//	}
//
//	p, err := sa.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(sa.Payload(p), data)
//
//	p, err = sa.Realloc(p, 400)
//	// ...
//	sa.Free(p)
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Each instance assumes exclusive
// use of its provider after Init; callers must issue one request at a time.
package alloc
