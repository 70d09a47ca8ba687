package format

import "golang.org/x/exp/constraints"

// AlignUp returns n rounded up to the next multiple of a. a must be a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp[T constraints.Integer](n, a T) T {
	return (n + a - 1) &^ (a - 1)
}

// IsAligned reports whether n is a multiple of the alignment unit.
func IsAligned[T constraints.Integer](n T) bool {
	return n&AlignmentMask == 0
}

// AdjustedSize converts a requested payload size into a block size: header
// and footer overhead added, rounded to the alignment unit, and never below
// MinBlockSize. Requests of DoubleWord bytes or less map to MinBlockSize.
//
// Example:
//
//	AdjustedSize(1)   = 16
//	AdjustedSize(8)   = 16
//	AdjustedSize(9)   = 24
//	AdjustedSize(100) = 112
func AdjustedSize(n int) int {
	if n <= DoubleWord {
		return MinBlockSize
	}
	return DoubleWord * ((n + DoubleWord + (DoubleWord - 1)) / DoubleWord)
}

// EvenWords rounds a word count up to an even number and returns the byte
// size, keeping heap extensions double-word aligned.
func EvenWords(words int) int {
	if words%2 != 0 {
		words++
	}
	return words * WordSize
}
