package alloc

// core is what reallocate needs from an allocator.
type core interface {
	Alloc(size int) (Ptr, error)
	Free(p Ptr)
	Payload(p Ptr) []byte
}

// reallocate implements the shared resize policy. The old block is only
// released after the new one has been obtained and filled, so a failed
// allocation leaves p valid. The copy is bounded by the old payload so it
// never reads the old block's footer.
func reallocate(a core, p Ptr, size int) (Ptr, error) {
	if size == 0 {
		a.Free(p)
		return Nil, nil
	}
	if p == Nil {
		return a.Alloc(size)
	}

	np, err := a.Alloc(size)
	if err != nil {
		return Nil, err
	}
	old := a.Payload(p)
	copy(a.Payload(np), old[:min(size, len(old))])
	a.Free(p)
	return np, nil
}
