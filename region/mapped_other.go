//go:build !linux && !darwin

package region

// Mapped falls back to a heap reservation on platforms without mmap.
type Mapped struct {
	Memory
}

// NewMapped reserves max bytes.
func NewMapped(max int) (*Mapped, error) {
	return &Mapped{Memory: *NewMemory(max)}, nil
}

// Close releases the reservation.
func (m *Mapped) Close() error {
	m.s.buf = nil
	m.s.brk = 0
	return nil
}
