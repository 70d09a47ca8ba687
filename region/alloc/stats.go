package alloc

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats holds allocator counters. Byte counts are in block payload bytes
// unless noted.
type Stats struct {
	GrowCalls        int   // Number of provider Grow() calls after Init
	GrowBytes        int64 // Total bytes added via Grow()
	AllocCalls       int   // Total Alloc() calls with a non-zero size
	AllocFastPath    int   // Allocations that succeeded without Grow()
	AllocSlowPath    int   // Allocations that required Grow()
	FreeCalls        int   // Total Free() calls on non-Nil pointers
	ReallocCalls     int   // Total Realloc() calls
	SplitCount       int   // Number of block splits
	CoalesceForward  int   // Merges with the following block
	CoalesceBackward int   // Merges with the preceding block
	ListInserts      int   // Free-list insertions
	ListRemoves      int   // Free-list removals
	LiveBytes        int64 // Usable bytes currently allocated
	PeakLiveBytes    int64 // High-water mark of LiveBytes
}

func (s *Stats) allocated(usable uint32) {
	s.LiveBytes += int64(usable)
	if s.LiveBytes > s.PeakLiveBytes {
		s.PeakLiveBytes = s.LiveBytes
	}
}

func (s *Stats) freed(usable uint32) {
	s.LiveBytes -= int64(usable)
}

// utilization is peak live payload over the region extent.
func (s *Stats) utilization(extent int) float64 {
	if extent == 0 {
		return 0
	}
	return float64(s.PeakLiveBytes) / float64(extent)
}

// printStats writes a human-readable report with grouped thousands.
func printStats(w io.Writer, name string, s Stats, extent int) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "\n=== %s STATISTICS ===\n", name)
	p.Fprintf(w, "Extent:             %d bytes\n", extent)
	p.Fprintf(w, "Grow calls:         %d (%d bytes added)\n", s.GrowCalls, s.GrowBytes)
	p.Fprintf(w, "Alloc calls:        %d (fast: %d, slow: %d)\n",
		s.AllocCalls, s.AllocFastPath, s.AllocSlowPath)
	p.Fprintf(w, "Free calls:         %d\n", s.FreeCalls)
	p.Fprintf(w, "Realloc calls:      %d\n", s.ReallocCalls)
	p.Fprintf(w, "Live bytes:         %d (peak %d)\n", s.LiveBytes, s.PeakLiveBytes)
	p.Fprintf(w, "Utilization:        %.1f%%\n", 100*s.utilization(extent))
	p.Fprintf(w, "Block splits:       %d\n", s.SplitCount)
	p.Fprintf(w, "Coalesce fwd:       %d\n", s.CoalesceForward)
	p.Fprintf(w, "Coalesce back:      %d\n", s.CoalesceBackward)
	p.Fprintf(w, "List inserts:       %d\n", s.ListInserts)
	p.Fprintf(w, "List removes:       %d\n", s.ListRemoves)
}
