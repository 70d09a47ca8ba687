package alloc

// Ptr is a payload address: the region offset of the first client byte of a
// block. Payload addresses are always 8-byte aligned.
type Ptr uint32

// Nil is the Ptr meaning "no allocation". Offset zero lies in the region
// prefix, so no block payload can start there.
const Nil Ptr = 0

// Allocator defines the client-visible operations shared by the implementations.
//
// Implementations:
//   - SegAllocator: segregated free lists, best fit within class
//   - NextFitAllocator: implicit list, next-fit rover
type Allocator interface {
	// Init lays out the region prefix and sentinels. It must precede every
	// other call.
	Init() error

	// Alloc returns a payload of at least size bytes. Alloc(0) returns Nil
	// and no error.
	Alloc(size int) (Ptr, error)

	// Free releases a payload previously returned by Alloc or Realloc.
	// Free(Nil) is a no-op. Any other address is undefined behavior.
	Free(p Ptr)

	// Realloc resizes a payload by allocate, copy, free. A size of zero frees
	// p and returns Nil; a Nil p behaves like Alloc.
	Realloc(p Ptr, size int) (Ptr, error)

	// Payload returns the full payload span of p. The slice stays valid until
	// p is freed.
	Payload(p Ptr) []byte
}
