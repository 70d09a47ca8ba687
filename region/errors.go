package region

import "errors"

var (
	// ErrExhausted indicates the reservation cannot satisfy a Grow request.
	ErrExhausted = errors.New("region: out of memory")

	// ErrUnaligned indicates a Grow request that is negative or not a word multiple.
	ErrUnaligned = errors.New("region: grow size must be a non-negative word multiple")

	// ErrClosed indicates use of a provider after Close.
	ErrClosed = errors.New("region: provider closed")
)
