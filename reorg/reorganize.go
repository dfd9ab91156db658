package reorg

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"k8s.io/klog/v2"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
)

// Reorganizer runs the reorganization protocol over a single Board.
type Reorganizer struct {
	Board *board.Board

	// evalCache memoizes EvaluatePositionsToMove per subtree root, checked
	// against the cut subtree's signature. apply purges it after every
	// accepted move, so an entry is reused only by a later Reorganize call
	// on a board that no move has changed since the entry was stored.
	evalCache *lru.Cache[core.Position, evalCacheEntry]
}

type evalCacheEntry struct {
	signature  string
	candidates []core.Position
	bestIndex  int
	bestScore  float64
}

type move struct {
	subroot core.Position
	target  core.Position
	score   float64
}

// NewReorganizer returns a Reorganizer over b with a bounded evaluation
// cache.
func NewReorganizer(b *board.Board) *Reorganizer {
	cache, _ := lru.New[core.Position, evalCacheEntry](512)

	return &Reorganizer{Board: b, evalCache: cache}
}

// Reorganize runs one gather/decide/apply round (spec §4.7): every
// non-root cell, children first, evaluates its own subtree's best move
// on a private clone; the best strictly-improving option across the
// whole tree is applied to the real board if it beats the current
// simulated score. It returns whether a move was applied.
func (r *Reorganizer) Reorganize() (bool, error) {
	root := r.Board.Root
	if !root.IsValid() {
		return false, board.ErrNoRoot
	}

	var best *move

	var gather func(pos core.Position) error
	gather = func(pos core.Position) error {
		cell := r.Board.Grid.At(pos)
		for _, d := range r.Board.ChildDirs() {
			if child := cell.Next[d]; child.IsValid() {
				if err := gather(child); err != nil {
					return err
				}
			}
		}

		if pos == root {
			return nil
		}

		entry, err := r.evaluate(pos)
		if err != nil {
			return err
		}
		if entry.bestIndex < 0 {
			return nil
		}

		if best == nil || entry.bestScore > best.score+core.Epsilon ||
			(core.FloatEqual(entry.bestScore, best.score) && pos.Less(best.subroot)) {
			best = &move{subroot: pos, target: entry.candidates[entry.bestIndex], score: entry.bestScore}
		}

		return nil
	}
	if err := gather(root); err != nil {
		return false, err
	}

	if best == nil {
		return false, nil
	}

	baseline := r.Board.LastSimulationAvgFlowPerUnit()
	if best.score <= baseline+core.Epsilon {
		return false, nil
	}

	return r.apply(*best)
}

// evaluate runs (or reuses a cached run of) EvaluatePositionsToMove for
// the subtree rooted at pos, on a scratch clone so the live board is
// never mutated during gathering.
func (r *Reorganizer) evaluate(pos core.Position) (evalCacheEntry, error) {
	scratch := r.Board.Clone()
	info, err := scratch.CutSubtree(pos)
	if err != nil {
		return evalCacheEntry{bestIndex: -1}, nil
	}
	sig := subtreeSignature(info)

	if cached, ok := r.evalCache.Get(pos); ok && cached.signature == sig {
		return cached, nil
	}

	candidates, bestIndex, bestScore, err := scratch.EvaluatePositionsToMove(info)
	if err != nil {
		return evalCacheEntry{bestIndex: -1}, err
	}

	entry := evalCacheEntry{signature: sig, candidates: candidates, bestIndex: bestIndex, bestScore: bestScore}
	r.evalCache.Add(pos, entry)

	return entry, nil
}

// apply performs T3: cuts m.subroot on the real board, pastes at
// m.target, starts the moved cell's restructure delay, and rediscovers
// structure (TryApplySubtree already does the latter internally).
func (r *Reorganizer) apply(m move) (bool, error) {
	info, err := r.Board.CutSubtree(m.subroot)
	if err != nil {
		return false, err
	}

	if !r.Board.TryApplySubtree(m.target, info, true, true) {
		// Paste rejected on the real board even though the scratch clone
		// accepted it; restore the original placement and report no move.
		r.Board.TryApplySubtree(m.subroot, info, true, false)
		_ = r.Board.DiscoverStructure()

		return false, nil
	}

	// RestructureDelay applies only to the cell that was the subroot of
	// the moved subtree, not to every cell it carried along.
	r.Board.Grid.At(m.target).RemainingRestructureDelay = r.Board.Config.TicksToDelayDataFlowOnRestructure
	r.evalCache.Purge()

	klog.V(1).Infof("reorg: moved subtree from %s to %s (score %.4f)", m.subroot, m.target, m.score)

	return true, nil
}

// ReorganizeMaxFlow invokes Reorganize until a round fails to improve
// the score, returning how many restructurings were accepted.
func (r *Reorganizer) ReorganizeMaxFlow() (int, error) {
	accepted := 0
	for {
		ok, err := r.Reorganize()
		if err != nil {
			return accepted, err
		}
		if !ok {
			return accepted, nil
		}
		accepted++
	}
}

func subtreeSignature(info *board.SubtreeInfo) string {
	var sb strings.Builder
	for _, off := range info.Offsets {
		fmt.Fprintf(&sb, "%d,%d:%d,%t;", off.RowOffset, off.ColOffset, off.Symbol, off.Rented)
	}

	return sb.String()
}
