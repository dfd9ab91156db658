package board

import "github.com/AGAPIA/VirtualOrganisms/core"

// TreeTopology recomputes a board's prev/next links, distance_to_root,
// and (4-way only) cell roles after any symbol mutation (spec §4.3: a
// caller must invoke this, or use higher-level primitives that invoke it
// on its behalf, after every symbol write).
type TreeTopology interface {
	// DiscoverStructure walks the occupied cells of grid reachable from
	// root and recomputes every link and distance. It returns ErrNoRoot
	// if root does not hold a symbol.
	DiscoverStructure(grid *core.Grid, root core.Position) error

	// ChildDirs returns the fixed per-regime direction order used to
	// visit a cell's children, both during subtree walks and flow
	// simulation.
	ChildDirs() []core.Direction
}

// twoWayChildDirs/fourWayChildDirs fix the per-regime direction order
// used both for link discovery and for the DFS traversal order during
// flow simulation (§5: "left before down in the 2-way regime, fixed
// direction order {left, down, right, up} in the 4-way regime").
var (
	twoWayChildDirs  = []core.Direction{core.Left, core.Down}
	fourWayChildDirs = []core.Direction{core.Left, core.Down, core.Right, core.Up}
)

type twoWayTopology struct{}

func (twoWayTopology) DiscoverStructure(grid *core.Grid, root core.Position) error {
	return discoverLinks(grid, root, twoWayChildDirs)
}

func (twoWayTopology) ChildDirs() []core.Direction {
	return twoWayChildDirs
}

type fourWayTopology struct{}

func (fourWayTopology) DiscoverStructure(grid *core.Grid, root core.Position) error {
	if err := discoverLinks(grid, root, fourWayChildDirs); err != nil {
		return err
	}
	classifyCellTypes(grid)

	return nil
}

func (fourWayTopology) ChildDirs() []core.Direction {
	return fourWayChildDirs
}

// discoverLinks clears every link on every occupied cell, then BFS's
// outward from root along childDirs. A cell's Prev[d] names the
// direction along which its parent sits; since a.Prev[d]=b implies b
// lies one unit from a in direction d (I2), the child reachable via
// slot d sits at cur + Offset(d.Opposite()). Cells unreachable from
// root are left detached (distance -1, no links), per I3.
func discoverLinks(grid *core.Grid, root core.Position, childDirs []core.Direction) error {
	rootCell := grid.At(root)
	if rootCell == nil || rootCell.IsFree() {
		return ErrNoRoot
	}

	grid.Each(func(c *core.Cell) {
		c.ResetLinks()
		c.DistanceToRoot = -1
	})

	rootCell.DistanceToRoot = 0
	queue := []core.Position{root}
	for len(queue) > 0 {
		curPos := queue[0]
		queue = queue[1:]
		cur := grid.At(curPos)

		for _, d := range childDirs {
			childPos := curPos.Add(d.Opposite().Offset())
			child := grid.At(childPos)
			if child == nil || child.IsFree() || child.DistanceToRoot != -1 {
				continue
			}
			child.Prev[d] = curPos
			cur.Next[d] = childPos
			child.DistanceToRoot = cur.DistanceToRoot + 1
			queue = append(queue, childPos)
		}
	}

	return nil
}

// classifyCellTypes assigns membrane/interior/exterior roles for the
// 4-way regime: occupied cells touching a free neighbor (or the grid
// edge) are exterior and capture flow from the environment; occupied
// cells directly adjacent to an exterior cell form the membrane and
// relay flow inward; everything else is interior and donates flow
// outward (spec §4.5, §4.3 decide_cell_type).
func classifyCellTypes(grid *core.Grid) {
	touchesFree := func(pos core.Position) bool {
		for _, d := range fourWayChildDirs {
			n := pos.Add(d.Offset())
			if !grid.IsValid(n) || grid.IsFree(n) {
				return true
			}
		}

		return false
	}

	var exterior []core.Position
	grid.Each(func(c *core.Cell) {
		c.CellType = core.CellInterior
		if touchesFree(c.Position()) {
			c.CellType = core.CellExterior
			exterior = append(exterior, c.Position())
		}
	})

	for _, pos := range exterior {
		for _, d := range fourWayChildDirs {
			n := pos.Add(d.Offset())
			cell := grid.At(n)
			if cell == nil || cell.IsFree() || cell.CellType == core.CellExterior {
				continue
			}
			cell.CellType = core.CellMembrane
		}
	}
}
