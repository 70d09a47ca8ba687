// Package verify checks the structural invariants of a boundary-tag heap.
// These helpers are used in tests to ensure allocator invariants hold after
// every operation.
//
// The checks read the raw region bytes through the Heap interface, so they
// see exactly what a later allocator call would see:
//
//   - Blocks walks the implicit block list from the prologue to the epilogue.
//   - FreeLists audits every segregated free list against the block walk.
//   - Spans tracks live payload intervals to detect overlapping allocations.
package verify
