// Package reorg implements the reorganization protocol (spec §4.7): the
// root-initiated gather/decide/apply pass that opportunistically cuts
// and re-pastes one subtree per round to improve the board's simulated
// average flow.
//
// The three conceptual message types (reorganize_start, the root's
// decision, reorganize_end) are expository; per the design notes this
// implementation collapses them into a single synchronous DFS walk
// (Reorganizer.Reorganize) rather than modeling message objects.
package reorg
