package format

// Pack combines a block size and allocated flag into a tag word.
func Pack(size uint32, allocated bool) uint32 {
	if allocated {
		return size | AllocatedBit
	}
	return size
}

// TagSize extracts the block size from a tag word.
func TagSize(w uint32) uint32 {
	return w &^ TagFlagMask
}

// TagAllocated extracts the allocated flag from a tag word.
func TagAllocated(w uint32) bool {
	return w&AllocatedBit != 0
}

// Tag is a decoded header or footer.
type Tag struct {
	Size      uint32
	Allocated bool
}

// ReadTag decodes the tag word at off.
func ReadTag(b []byte, off int) Tag {
	w := ReadU32(b, off)
	return Tag{Size: TagSize(w), Allocated: TagAllocated(w)}
}

// HeaderOffset returns the header position for the block whose payload starts at bp.
func HeaderOffset(bp uint32) uint32 {
	return bp - WordSize
}

// FooterOffset returns the footer position for a block of the given size at bp.
func FooterOffset(bp, size uint32) uint32 {
	return bp + size - DoubleWord
}
