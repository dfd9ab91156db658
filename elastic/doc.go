// Package elastic implements the add/remove resource optimizer that runs
// at the root when enabled (spec §4.8). It grows the board by renting free
// cells adjacent to the organism, or shrinks it by releasing previously
// rented cells, whenever the projected benefit (flow gained times
// benefit_per_unit, minus or plus the symbol's rent cost) strictly
// improves on the board's current simulated benefit. Like reorg, it
// collapses the add/remove message exchange of the original into
// synchronous recursion over private board clones (spec §9 design note).
package elastic
