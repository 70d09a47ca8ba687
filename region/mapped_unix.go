//go:build linux || darwin

package region

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/segalloc/internal/format"
)

// Mapped is a Provider backed by an anonymous private memory mapping. The
// whole reservation is mapped once; the kernel commits pages lazily as the
// allocator touches them.
type Mapped struct {
	s span
}

// NewMapped reserves max bytes of address space, rounded up to the page size.
func NewMapped(max int) (*Mapped, error) {
	size := format.AlignUp(clampReservation(max), unix.Getpagesize())
	if size == 0 {
		size = unix.Getpagesize()
	}
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("region: mmap %d bytes: %w", size, err)
	}
	return &Mapped{s: span{buf: data}}, nil
}

// Grow extends the region by n bytes.
func (m *Mapped) Grow(n int) (int, error) { return m.s.grow(n) }

// Bytes returns the region up to the current extent.
func (m *Mapped) Bytes() []byte {
	if m.s.buf == nil {
		return nil
	}
	return m.s.bytes()
}

// Extent returns the current extent.
func (m *Mapped) Extent() int { return m.s.brk }

// Capacity returns the size of the mapping.
func (m *Mapped) Capacity() int { return len(m.s.buf) }

// Close unmaps the reservation. Slices obtained from Bytes must not be used afterwards.
func (m *Mapped) Close() error {
	if m.s.buf == nil {
		return nil
	}
	err := unix.Munmap(m.s.buf)
	m.s.buf = nil
	m.s.brk = 0
	if err != nil {
		return fmt.Errorf("region: munmap: %w", err)
	}
	return nil
}
