package elastic

import (
	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
)

// RentedResourceID tags one add/remove decision for log correlation; it is
// not persisted on the board (Board.RentedResources only needs position
// and symbol), only surfaced through klog so an operator can trace one
// elastic decision across its evaluate/adopt log lines.
type RentedResourceID string

func newRentedResourceID() RentedResourceID {
	return RentedResourceID(uuid.NewString())
}

// Optimizer runs the elastic add/remove rounds over a single Board.
type Optimizer struct {
	Board *board.Board
}

// NewOptimizer returns an Optimizer over b.
func NewOptimizer(b *board.Board) *Optimizer {
	return &Optimizer{Board: b}
}

var shiftDirs = []core.Direction{core.Down, core.Left}

// gatherNewResourcePositions returns every free cell adjacent to an
// occupied cell, together with every already-occupied cell itself
// (a symbol-replacement trial), deduplicated (spec §4.8: "finds free cells
// adjacent to leaves and all already-occupied VO cells").
func (o *Optimizer) gatherNewResourcePositions() []core.Position {
	seen := make(map[core.Position]struct{})
	var out []core.Position

	add := func(pos core.Position) {
		if _, ok := seen[pos]; ok {
			return
		}
		seen[pos] = struct{}{}
		out = append(out, pos)
	}

	o.Board.Grid.Each(func(c *core.Cell) {
		add(c.Position())
		for d := core.Direction(0); d < core.DirCount; d++ {
			n := c.Position().Add(d.Offset())
			if o.Board.Grid.IsValid(n) && o.Board.Grid.IsFree(n) {
				add(n)
			}
		}
	})

	return out
}

// addTrial records one evaluated candidate of the add phase: enough to
// replay the winning trial on the real board without keeping every
// trial's clone alive.
type addTrial struct {
	pos      core.Position
	symbol   byte
	occupied bool
	target   core.Position // paste target, only meaningful if occupied
	subtree  *board.SubtreeInfo
	benefit  float64
}

// Run drives the elastic phase to completion (spec §4.8): the add phase
// runs until a round fails to improve, then (only if the add phase
// accepted nothing) the remove phase runs until a round fails. It returns
// how many add and remove rounds were accepted.
func (o *Optimizer) Run() (added int, removed int, err error) {
	for {
		ok, rErr := o.addRound()
		if rErr != nil {
			return added, removed, rErr
		}
		if !ok {
			break
		}
		added++
	}

	if added > 0 {
		return added, removed, nil
	}

	for {
		ok, rErr := o.removeRound()
		if rErr != nil {
			return added, removed, rErr
		}
		if !ok {
			break
		}
		removed++
	}

	return added, removed, nil
}

// addRound evaluates every (candidate position, alphabet symbol) pair
// once and adopts the single best strictly-improving trial, if any.
func (o *Optimizer) addRound() (bool, error) {
	if o.Board.NumAvailableResourcesToRent() <= 0 {
		return false, nil
	}

	baseline := o.Board.LastSimulationAvgFlowPerUnit() * o.Board.Config.BenefitPerUnitOfFlow

	var best *addTrial
	for _, pos := range o.gatherNewResourcePositions() {
		for _, symbol := range o.Board.Config.Alphabet {
			for _, t := range o.evaluateAddCandidate(pos, symbol) {
				diff := t.benefit - baseline
				if diff <= core.Epsilon {
					continue
				}
				if best == nil || t.benefit > best.benefit+core.Epsilon {
					cp := t
					best = &cp
				}
			}
		}
	}

	if best == nil {
		return false, nil
	}

	return true, o.adoptAdd(*best)
}

// evaluateAddCandidate runs every trial the spec prescribes for one
// (position, symbol) pair: a direct placement if pos is free, or a
// cut/replace/re-paste sequence if pos is occupied.
func (o *Optimizer) evaluateAddCandidate(pos core.Position, symbol byte) []addTrial {
	if o.Board.IsPosFree(pos) {
		trial := o.Board.Clone()
		cell := trial.Grid.At(pos)
		cell.Symbol = symbol
		if !trial.IsBoardCompliant(pos.Row, -1) || !trial.IsBoardCompliant(-1, pos.Col) {
			return nil
		}
		if err := trial.DiscoverStructure(); err != nil {
			return nil
		}

		benefit, ok := o.simulateBenefit(trial, symbol)
		if !ok {
			return nil
		}

		return []addTrial{{pos: pos, symbol: symbol, benefit: benefit}}
	}

	if pos == o.Board.Root {
		return nil
	}

	base := o.Board.Clone()
	subtree, err := base.CutSubtree(pos)
	if err != nil {
		return nil
	}
	cell := base.Grid.At(pos)
	cell.Symbol = symbol
	if !base.IsBoardCompliant(pos.Row, -1) || !base.IsBoardCompliant(-1, pos.Col) {
		return nil
	}

	var out []addTrial
	for _, d := range shiftDirs {
		target := pos.Add(d.Offset())

		trial := base.Clone()
		if !trial.TryApplySubtree(target, subtree, true, true) {
			continue
		}

		benefit, ok := o.simulateBenefit(trial, symbol)
		if !ok {
			continue
		}

		out = append(out, addTrial{pos: pos, symbol: symbol, occupied: true, target: target, subtree: subtree, benefit: benefit})
	}

	return out
}

func (o *Optimizer) simulateBenefit(trial *board.Board, symbol byte) (float64, bool) {
	flow, err := trial.SimulateTick(trial.FillSimulationContext())
	if err != nil {
		return 0, false
	}

	return flow*o.Board.Config.BenefitPerUnitOfFlow - o.Board.Config.Cost(symbol), true
}

// adoptAdd replays the winning trial on the live board: place the symbol
// (cutting and re-pasting its prior occupant's subtree first, if any),
// record the rental, rediscover structure, and fold one real tick into
// the flow statistics so the next round's baseline reflects the change.
func (o *Optimizer) adoptAdd(t addTrial) error {
	id := newRentedResourceID()

	if t.occupied {
		subtree, err := o.Board.CutSubtree(t.pos)
		if err != nil {
			return err
		}
		if !o.Board.TryApplySubtree(t.target, subtree, true, true) {
			return nil
		}
	}

	cell := o.Board.Grid.At(t.pos)
	cell.Symbol = t.symbol
	o.Board.AddRentedResource(t.pos, t.symbol)
	if err := o.Board.DiscoverStructure(); err != nil {
		return err
	}
	if _, err := o.Board.SimulateTick(o.Board.FillSimulationContext()); err != nil {
		return err
	}

	klog.V(1).Infof("elastic[%s]: rented %q at %s (benefit %.4f)", id, t.symbol, t.pos, t.benefit)

	return nil
}

// removeTrial records one evaluated candidate of the remove phase.
type removeTrial struct {
	pos       core.Position
	symbol    byte
	shiftFrom core.Position // IsValid() if this is a shift, not a hole
	benefit   float64
}

// removeRound evaluates releasing each currently rented cell, either as a
// hole or by shifting its below/left neighbor into the vacated slot, and
// adopts the single best strictly-improving trial, if any.
func (o *Optimizer) removeRound() (bool, error) {
	baseline := o.Board.LastSimulationAvgFlowPerUnit() * o.Board.Config.BenefitPerUnitOfFlow

	rented := make([]core.Position, 0, len(o.Board.RentedResources))
	for pos := range o.Board.RentedResources {
		rented = append(rented, pos)
	}

	var best *removeTrial
	for _, pos := range rented {
		symbol := o.Board.RentedResources[pos]

		for _, t := range o.evaluateRemoveCandidate(pos, symbol) {
			diff := t.benefit - baseline
			if diff <= core.Epsilon {
				continue
			}
			if best == nil || t.benefit > best.benefit+core.Epsilon {
				cp := t
				best = &cp
			}
		}
	}

	if best == nil {
		return false, nil
	}

	return true, o.adoptRemove(*best)
}

func (o *Optimizer) evaluateRemoveCandidate(pos core.Position, symbol byte) []removeTrial {
	var out []removeTrial

	hole := o.Board.Clone()
	hole.Grid.At(pos).SetEmpty()
	if err := hole.DiscoverStructure(); err == nil {
		if benefit, ok := o.simulateRefundBenefit(hole, symbol); ok {
			out = append(out, removeTrial{pos: pos, symbol: symbol, benefit: benefit})
		}
	}

	for _, d := range shiftDirs {
		from := pos.Add(d.Offset())
		neighbor := o.Board.Grid.At(from)
		if neighbor == nil || neighbor.IsFree() {
			continue
		}

		trial := o.Board.Clone()
		target := trial.Grid.At(pos)
		source := trial.Grid.At(from)
		target.Symbol = source.Symbol
		source.SetEmpty()
		if !trial.IsBoardCompliant(pos.Row, -1) || !trial.IsBoardCompliant(-1, pos.Col) {
			continue
		}
		if err := trial.DiscoverStructure(); err != nil {
			continue
		}

		benefit, ok := o.simulateRefundBenefit(trial, symbol)
		if !ok {
			continue
		}

		out = append(out, removeTrial{pos: pos, symbol: symbol, shiftFrom: from, benefit: benefit})
	}

	return out
}

func (o *Optimizer) simulateRefundBenefit(trial *board.Board, symbol byte) (float64, bool) {
	flow, err := trial.SimulateTick(trial.FillSimulationContext())
	if err != nil {
		return 0, false
	}

	return flow*o.Board.Config.BenefitPerUnitOfFlow + o.Board.Config.Cost(symbol), true
}

// adoptRemove replays the winning trial on the live board, un-marks the
// rental, rediscovers structure, and folds one real tick into the flow
// statistics.
func (o *Optimizer) adoptRemove(t removeTrial) error {
	id := newRentedResourceID()

	if t.shiftFrom.IsValid() {
		target := o.Board.Grid.At(t.pos)
		source := o.Board.Grid.At(t.shiftFrom)
		target.Symbol = source.Symbol
		source.SetEmpty()
	} else {
		o.Board.Grid.At(t.pos).SetEmpty()
	}

	o.Board.RemoveRentedResource(t.pos)
	if err := o.Board.DiscoverStructure(); err != nil {
		return err
	}
	if _, err := o.Board.SimulateTick(o.Board.FillSimulationContext()); err != nil {
		return err
	}

	klog.V(1).Infof("elastic[%s]: released %q at %s (benefit %.4f)", id, t.symbol, t.pos, t.benefit)

	return nil
}
