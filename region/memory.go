package region

// Memory is a Provider backed by a Go byte slice reserved at construction.
// Growth only moves a break pointer; the slice itself is never reallocated.
type Memory struct {
	s span
}

// NewMemory reserves max bytes (rounded to the alignment unit and capped at
// the 32-bit offset limit). The extent starts at zero.
func NewMemory(max int) *Memory {
	return &Memory{s: span{buf: make([]byte, clampReservation(max))}}
}

// Grow extends the region by n bytes.
func (m *Memory) Grow(n int) (int, error) { return m.s.grow(n) }

// Bytes returns the region up to the current extent.
func (m *Memory) Bytes() []byte { return m.s.bytes() }

// Extent returns the current extent.
func (m *Memory) Extent() int { return m.s.brk }

// Capacity returns the size of the reservation.
func (m *Memory) Capacity() int { return len(m.s.buf) }

// Reset moves the break back to zero and clears the used bytes. Any
// allocator built on the provider must be discarded.
func (m *Memory) Reset() {
	clear(m.s.buf[:m.s.brk])
	m.s.brk = 0
}
