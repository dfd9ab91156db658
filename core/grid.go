package core

// Grid is a fixed R×C matrix of Cells (spec §3, §4.1). It is the arena:
// cells are created once and never reallocated, only mutated in place.
type Grid struct {
	Rows, Cols     int
	maxFlowPerCell float64
	cells          [][]*Cell
}

// NewGrid allocates an R×C grid of empty cells.
func NewGrid(rows, cols int, maxFlowPerCell float64) *Grid {
	g := &Grid{Rows: rows, Cols: cols, maxFlowPerCell: maxFlowPerCell}
	g.cells = make([][]*Cell, rows)
	for r := 0; r < rows; r++ {
		g.cells[r] = make([]*Cell, cols)
		for c := 0; c < cols; c++ {
			g.cells[r][c] = NewCell(r, c, maxFlowPerCell)
		}
	}

	return g
}

// IsValid reports whether pos lies within grid bounds.
func (g *Grid) IsValid(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// At returns the cell at pos, or nil if out of bounds.
func (g *Grid) At(pos Position) *Cell {
	if !g.IsValid(pos) {
		return nil
	}

	return g.cells[pos.Row][pos.Col]
}

// IsFree reports whether pos is in bounds and holds no symbol.
func (g *Grid) IsFree(pos Position) bool {
	c := g.At(pos)

	return c != nil && c.IsFree()
}

// Row returns the live slice of cells for row r (read-only by convention).
func (g *Grid) Row(r int) []*Cell {
	return g.cells[r]
}

// Column returns a freshly built slice of the cells in column c.
func (g *Grid) Column(c int) []*Cell {
	out := make([]*Cell, g.Rows)
	for r := 0; r < g.Rows; r++ {
		out[r] = g.cells[r][c]
	}

	return out
}

// Each calls fn for every occupied cell in row-major order.
func (g *Grid) Each(fn func(*Cell)) {
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			if !g.cells[r][c].IsFree() {
				fn(g.cells[r][c])
			}
		}
	}
}

// CountNodes returns the number of occupied cells. Matches the original's
// countNodes: O(R*C), uncached.
func (g *Grid) CountNodes() int {
	n := 0
	g.Each(func(*Cell) { n++ })

	return n
}

// Clone deep-copies the grid: same dimensions, independent Cell instances
// with identical field values, used to produce the private board-view
// snapshot each non-root cell evaluates against during reorganization.
func (g *Grid) Clone() *Grid {
	out := NewGrid(g.Rows, g.Cols, g.maxFlowPerCell)
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			src := g.cells[r][c]
			dst := out.cells[r][c]
			*dst = *src
		}
	}

	return out
}
