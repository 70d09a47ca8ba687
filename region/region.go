package region

import (
	"fmt"

	"github.com/joshuapare/segalloc/internal/format"
)

// DefaultMaxHeap is the default reservation size (20 MiB).
const DefaultMaxHeap = 20 * (1 << 20)

// maxReservation keeps every offset representable in 32 bits.
var maxReservation uint64 = 1<<32 - format.Alignment

// Provider is the heap-growth collaborator consumed by the allocators.
type Provider interface {
	// Grow extends the region by n bytes and returns the previous extent,
	// which is the offset of the first new byte. On failure the extent is
	// unchanged.
	Grow(n int) (base int, err error)

	// Bytes returns the region from offset 0 to the current extent.
	Bytes() []byte

	// Extent returns the current size of the region in bytes.
	Extent() int
}

// span is the bookkeeping shared by the providers: a fixed reservation and a
// break pointer into it.
type span struct {
	buf []byte // full reservation, len == capacity
	brk int    // current extent
}

func (s *span) grow(n int) (int, error) {
	if s.buf == nil {
		return 0, ErrClosed
	}
	if n < 0 || n%format.WordSize != 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnaligned, n)
	}
	if n > len(s.buf)-s.brk {
		return 0, fmt.Errorf("%w: extent=%d, requested=%d, max=%d",
			ErrExhausted, s.brk, n, len(s.buf))
	}
	base := s.brk
	s.brk += n
	return base, nil
}

func (s *span) bytes() []byte {
	return s.buf[:s.brk:s.brk]
}

// clampReservation bounds a requested reservation to what 32-bit offsets can address.
func clampReservation(n int) int {
	if n < 0 {
		return 0
	}
	if uint64(n) > maxReservation {
		return int(maxReservation)
	}
	return format.AlignUp(n, format.Alignment)
}

var (
	_ Provider = (*Memory)(nil)
	_ Provider = (*Mapped)(nil)
)
