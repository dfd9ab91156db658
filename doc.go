// Package virtualorganisms simulates a two-dimensional self-assembling grid
// in which a tree-shaped "virtual organism" grows across a bounded board,
// and publishers and subscribers scattered on the board are connected
// through the tree's nodes acting as relay ("mirror") nodes.
//
// The engine is organized leaves-first, mirroring the dependency order of
// the simulation itself:
//
//	core/      — Position, Grid, Cell, SourceInfo, LinkInfo, epsilon comparator
//	language/  — row/column language oracle: compliance checks + generation
//	board/     — topology discovery, subtree cut/paste, per-tick flow simulation
//	psm/       — publisher/subscriber manager: greedy connection solver, mirrors
//	reorg/     — reorganization protocol (gather/decide/apply message passes)
//	elastic/   — elastic add/remove-resource optimizer
//	simconfig/ — tunable environment constants
//
// Each package owns one layer of the simulation and depends only on the
// layers beneath it: board depends on core and language, psm depends on
// board, reorg and elastic depend on board. None of these packages
// provides a command-line driver, file persistence, or an interactive
// front-end — those are left to an external caller built against the
// programmatic surface described in spec.md §6.
package virtualorganisms
