// Package format holds the word-level encoding shared by the allocators and
// the heap checker: tag packing, little-endian word access, and the alignment
// arithmetic every block size goes through.
package format

const (
	// WordSize is the size of a header, footer, or free-list link in bytes.
	WordSize = 4

	// DoubleWord is the size of a header plus footer, and the alignment unit
	// for every payload address.
	DoubleWord = 8

	// Alignment is the byte alignment required of payload addresses and block sizes.
	Alignment = DoubleWord

	// AlignmentMask masks the low bits that must be zero in an aligned size.
	AlignmentMask = Alignment - 1

	// MinBlockSize is the smallest legal block: header, successor link,
	// predecessor link, footer.
	MinBlockSize = 2 * DoubleWord

	// ChunkSize is the default heap extension increment (4 KiB).
	ChunkSize = 1 << 12

	// AllocatedBit marks a tag word as belonging to an allocated block.
	AllocatedBit = 0x1

	// TagFlagMask covers the low bits of a tag word that are not part of the size.
	TagFlagMask = 0x7

	// MaxBlockSize is the largest block size a tag word can describe while
	// keeping region offsets in 32 bits.
	MaxBlockSize = 1<<32 - Alignment

	// NilOffset is the link value meaning "no block". Offset zero always lies
	// in the region prefix, so it is never a payload address.
	NilOffset = 0
)
