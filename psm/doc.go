// Package psm implements the Publisher/Subscriber Manager (spec §4.6):
// the publisher and subscriber collections living on top of a board's
// sources map, the mirror-node registry with reference counting, and
// the greedy two-pass connection solver (direct connections first, then
// mirror-relayed connections via a beam-width-one heuristic).
//
// psm depends on board but board never imports psm (spec §2's
// dependency order): all mutation funnels through board.Board's small
// mutator surface (AddSource/RemoveSource) plus direct edits to the
// SourceInfo values board.Board.Sources already exposes.
package psm
