package alloc

import (
	"fmt"
	"math"

	"github.com/joshuapare/segalloc/internal/format"
)

// maxClasses bounds the class-head table so the region prefix stays small.
const maxClasses = 64

// SizeClassConfig defines the size class strategy. Bounds are inclusive upper
// limits on total block size; one overflow class always follows the last bound.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking)
	Name string

	// Linear phase: bounds SmallMin, SmallMin+SmallIncrement, ... while below SmallMax.
	// A zero SmallIncrement skips the phase.
	SmallMin       uint32
	SmallMax       uint32
	SmallIncrement uint32

	// Geometric phase: bounds SmallMax, SmallMax*GrowthFactor, ... up to MediumMax.
	MediumMax    uint32
	GrowthFactor float64
}

// Predefined configurations.
var (
	// PowerOfTwo: ≤32, ≤64, ..., ≤4096, >4096 (9 classes).
	ConfigPowerOfTwo = SizeClassConfig{
		Name:         "PowerOfTwo",
		SmallMin:     32,
		SmallMax:     32,
		MediumMax:    4096,
		GrowthFactor: 2.0,
	}

	// FineGrained: 16-byte steps up to 256, then ×1.5 up to 16KB.
	// Tighter classes mean shorter scans at the cost of a larger head table.
	ConfigFineGrained = SizeClassConfig{
		Name:           "FineGrained",
		SmallMin:       16,
		SmallMax:       256,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// Coarse: ×4 steps from 64 to 4096 (5 classes).
	ConfigCoarse = SizeClassConfig{
		Name:         "Coarse",
		SmallMin:     64,
		SmallMax:     64,
		MediumMax:    4096,
		GrowthFactor: 4.0,
	}

	// Default configuration (used if none specified).
	DefaultConfig = ConfigPowerOfTwo
)

// sizeClassTable holds the computed size class boundaries.
type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []uint32 // Inclusive upper bound for each bounded class
	numClasses int
}

// newSizeClassTable computes size class boundaries from config.
func newSizeClassTable(config SizeClassConfig) (*sizeClassTable, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	table := &sizeClassTable{
		config:     config,
		boundaries: make([]uint32, 0, 16),
	}

	// Phase 1: linear increments
	if config.SmallIncrement > 0 {
		for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
			if len(table.boundaries) >= maxClasses-1 {
				return nil, fmt.Errorf("%w: %s yields more than %d classes",
					ErrBadConfig, config.Name, maxClasses)
			}
			table.boundaries = append(table.boundaries, size)
		}
	}

	// Phase 2: geometric growth, each bound kept on the alignment grid
	size := uint64(config.SmallMax)
	for size <= uint64(config.MediumMax) {
		if len(table.boundaries) >= maxClasses-1 {
			return nil, fmt.Errorf("%w: %s yields more than %d classes",
				ErrBadConfig, config.Name, maxClasses)
		}
		table.boundaries = append(table.boundaries, uint32(size))
		next := format.AlignUp(uint64(math.Ceil(float64(size)*config.GrowthFactor)), format.Alignment)
		if next <= size {
			next = size + format.Alignment // Ensure progress
		}
		size = next
	}

	table.numClasses = len(table.boundaries)
	return table, nil
}

func (c SizeClassConfig) validate() error {
	switch {
	case c.SmallMin < format.MinBlockSize:
		return fmt.Errorf("%w: SmallMin %d below minimum block size %d",
			ErrBadConfig, c.SmallMin, format.MinBlockSize)
	case !format.IsAligned(c.SmallMin) || !format.IsAligned(c.SmallMax) || !format.IsAligned(c.SmallIncrement):
		return fmt.Errorf("%w: class bounds must be multiples of %d", ErrBadConfig, format.Alignment)
	case c.SmallMax < c.SmallMin:
		return fmt.Errorf("%w: SmallMax %d below SmallMin %d", ErrBadConfig, c.SmallMax, c.SmallMin)
	case c.MediumMax < c.SmallMax:
		return fmt.Errorf("%w: MediumMax %d below SmallMax %d", ErrBadConfig, c.MediumMax, c.SmallMax)
	case c.GrowthFactor <= 1:
		return fmt.Errorf("%w: GrowthFactor %.2f must exceed 1", ErrBadConfig, c.GrowthFactor)
	}
	return nil
}

// getSizeClass returns the size class index for a given block size.
// Returns table.numClasses (the overflow class) for sizes above every bound.
func (t *sizeClassTable) getSizeClass(size uint32) int {
	// Binary search for the smallest boundary >= size
	lo, hi := 0, t.numClasses-1

	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			if mid == 0 || size > t.boundaries[mid-1] {
				return mid
			}
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}

	return t.numClasses
}

// String returns a human-readable description of the size class table.
func (t *sizeClassTable) String() string {
	return t.config.Name
}

// NumSlots returns the number of list heads, overflow included.
func (t *sizeClassTable) NumSlots() int {
	return t.numClasses + 1
}
