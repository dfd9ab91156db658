// Package board implements the Board data structure (spec §3, §4.3-§4.5):
// the R×C grid of cells together with the sources map, language
// compliance, subtree cut/paste, topology discovery, and the per-tick
// flow simulation.
//
// Board does not itself run the publisher/subscriber connection solver
// (package psm) or the reorganization/elastic optimizers (packages reorg,
// elastic) — those sit above Board in the dependency order of spec §2 and
// call back into it through the small set of exported mutators
// (AddSource, RemoveSource, CutSubtree, TryApplySubtree, ...).
//
// Two structural regimes are supported behind simconfig.Regime, selected
// at construction: TwoWay (the original's compiled LEFTRIGHTONLY_MODE, a
// pure left/down tree) and FourWay (the directional regime with
// membrane/interior/exterior cell roles). Both are expressed behind the
// TreeTopology interface so call sites never branch on regime directly
// (spec §9 design notes).
package board
