// Package core defines the shared data model for the virtual-organism
// simulator: board positions, grid cells, the fixed-size Grid arena, and
// the publisher/subscriber source bookkeeping types (SourceInfo, LinkInfo).
//
// Cells never move in memory: the Grid owns an R×C array and every link
// between cells is represented as an optional Position rather than a
// pointer, which removes any pointer-cycle ownership question (see
// DESIGN.md). Direction-based links (prev/next) model the tree topology;
// distance_to_root and rented are denormalized onto the Cell for O(1)
// reads during flow simulation.
//
// Errors:
//
//	ErrInvalidPosition   - coordinates outside the grid bounds.
//	ErrPositionOccupied   - attempted write/paste on a non-free cell.
//	ErrDuplicateSource    - add_source for a position already mapped.
//	ErrSourceNotFound     - referenced source position has no SourceInfo.
//	ErrCapacityExceeded   - would push used_power/buffered_data out of range.
//	ErrLanguageViolation  - row or column no longer compliant (see language).
//
// StateCorruption aggregates one or more invariant violations (I1-I8) via
// go.uber.org/multierr so a single sanity pass reports everything wrong
// at once instead of only the first assertion that would have fired in
// the original C++.
package core
