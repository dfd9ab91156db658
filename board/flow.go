package board

import (
	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

// SimulateTick runs one deterministic depth-first flow pass anchored at
// the root, records the flow accumulated at the root into the flow
// statistics window, drains the root's buffer, and returns the recorded
// value (spec §4.5). ctx supplies how much a leaf captures from outside
// the board this tick.
func (b *Board) SimulateTick(ctx SimulationContext) (float64, error) {
	root := b.RootCell()
	if root == nil {
		return 0, ErrNoRoot
	}

	var err error
	if b.Config.Regime == simconfig.FourWay {
		err = b.walkFourWay(ctx, b.Root)
	} else {
		err = b.walkTwoWay(ctx, b.Root)
	}
	if err != nil {
		return 0, err
	}

	flow := root.BufferedData
	root.ResetBuffer()
	b.flowStats.Record(flow)

	return flow, nil
}

func childPositions(cell *core.Cell, dirs []core.Direction) []core.Position {
	var out []core.Position
	for _, d := range dirs {
		if np := cell.Next[d]; np.IsValid() {
			out = append(out, np)
		}
	}

	return out
}

// walkTwoWay implements the 2-way regime's rule: recurse into children
// first, a leaf captures from the environment, then an internal cell
// pulls proportionally from each child's buffered amount, capped by its
// own remaining capacity.
func (b *Board) walkTwoWay(ctx SimulationContext, pos core.Position) error {
	cell := b.Grid.At(pos)
	if cell.RemainingRestructureDelay > 0 {
		cell.RemainingRestructureDelay--

		return nil
	}

	children := childPositions(cell, twoWayChildDirs)
	if len(children) == 0 {
		capture, ok := ctx.LeafCaptureValue(pos)
		if !ok {
			return nil
		}
		room := cell.RemainingCapacity()
		if capture > room {
			capture = room
		}

		return cell.AddFlow(capture, false)
	}

	for _, childPos := range children {
		if err := b.walkTwoWay(ctx, childPos); err != nil {
			return err
		}
	}

	return pullFromChildren(cell, children, func(p core.Position) *core.Cell { return b.Grid.At(p) })
}

// walkFourWay implements a lighter rendition of the 4-way regime: before
// recursing, an interior cell donates (pushes) whatever it is currently
// holding into its children, bounded by each child's remaining capacity
// — this is donate_flow's inward-to-outward push. After recursing, a
// membrane or exterior internal cell relays inward by pulling from its
// children exactly as the 2-way regime does; a childless exterior cell
// captures from the environment; a childless membrane/interior cell
// captures nothing (it only ever relays/donates).
func (b *Board) walkFourWay(ctx SimulationContext, pos core.Position) error {
	cell := b.Grid.At(pos)
	if cell.RemainingRestructureDelay > 0 {
		cell.RemainingRestructureDelay--

		return nil
	}

	children := childPositions(cell, fourWayChildDirs)
	get := func(p core.Position) *core.Cell { return b.Grid.At(p) }

	if cell.CellType == core.CellInterior {
		for _, childPos := range children {
			child := get(childPos)
			room := child.RemainingCapacity()
			amount := cell.BufferedData
			if amount > room {
				amount = room
			}
			if amount <= 0 {
				continue
			}
			if err := cell.SubtractFlow(amount); err != nil {
				return err
			}
			if err := child.AddFlow(amount, false); err != nil {
				return err
			}
		}
	}

	for _, childPos := range children {
		if err := b.walkFourWay(ctx, childPos); err != nil {
			return err
		}
	}

	if len(children) == 0 {
		if cell.CellType != core.CellExterior {
			return nil
		}
		capture, ok := ctx.LeafCaptureValue(pos)
		if !ok {
			return nil
		}
		room := cell.RemainingCapacity()
		if capture > room {
			capture = room
		}

		return cell.AddFlow(capture, false)
	}

	if cell.CellType == core.CellInterior {
		return nil
	}

	return pullFromChildren(cell, children, get)
}

// pullFromChildren drains total from children proportionally to each
// child's current buffer, bounded by cell's remaining capacity, and
// credits cell with the pulled amount.
func pullFromChildren(cell *core.Cell, children []core.Position, get func(core.Position) *core.Cell) error {
	total := 0.0
	for _, childPos := range children {
		total += get(childPos).BufferedData
	}
	if total <= 0 {
		return nil
	}

	room := cell.RemainingCapacity()
	pullTotal := total
	if pullTotal > room {
		pullTotal = room
	}
	if pullTotal <= 0 {
		return nil
	}

	for _, childPos := range children {
		child := get(childPos)
		share := pullTotal * (child.BufferedData / total)
		if share <= 0 {
			continue
		}
		if err := child.SubtractFlow(share); err != nil {
			return err
		}
		if err := cell.AddFlow(share, false); err != nil {
			return err
		}
	}

	return nil
}

// FillSimulationContext builds the default SimulationContext from the
// board's sources map: a leaf at a source position captures up to that
// source's remaining power this tick.
func (b *Board) FillSimulationContext() SimulationContext {
	ctx := make(mapSimulationContext, len(b.Sources))
	for pos, info := range b.Sources {
		ctx[pos] = info.RemainingPower()
	}

	return ctx
}
