// Package region supplies the heap-growth providers the allocators manage.
//
// A Provider owns one contiguous byte span that only ever grows. Grow behaves
// like sbrk: it extends the span by n bytes and returns the old extent, which
// is the base address of the new bytes. The backing array is reserved up front
// and never moves, so any offset or slice handed out stays valid for the life
// of the provider.
//
// Two providers are available:
//
//   - Memory: a Go byte slice reserved at construction (20 MiB by default).
//   - Mapped: an anonymous private mmap reservation on linux and darwin. Pages are
//     committed by the kernel on first touch. Elsewhere it falls back to Memory.
//
// Usage:
//
//	mem := region.NewMemory(region.DefaultMaxHeap)
//	base, err := mem.Grow(4096)
//	if err != nil {
//	    return err
//	}
//	buf := mem.Bytes()[base:]
//
// Providers are not safe for concurrent use.
package region
