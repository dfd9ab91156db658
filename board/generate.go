package board

import (
	"math/rand"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

// GenerateRow overwrites row r with a random row-compliant span anchored
// at pivotCol (spec §4.2 generate_row). It does not rediscover structure;
// the caller runs DiscoverStructure once the root is set.
func (b *Board) GenerateRow(rng *rand.Rand, r, pivotCol, maxAttempts, depth int) ([]byte, error) {
	span, err := b.rowOracle.GenerateRow(rng, pivotCol, b.Grid.Cols, maxAttempts, depth)
	if err != nil {
		return nil, err
	}
	for c, sym := range span {
		b.Grid.At(core.Position{Row: r, Col: c}).Symbol = sym
	}

	return span, nil
}

// GenerateCol is the column-axis analogue of GenerateRow.
func (b *Board) GenerateCol(rng *rand.Rand, c, pivotRow, maxAttempts, depth int) ([]byte, error) {
	span, err := b.colOracle.GenerateCol(rng, pivotRow, b.Grid.Rows, maxAttempts, depth)
	if err != nil {
		return nil, err
	}
	for r, sym := range span {
		b.Grid.At(core.Position{Row: r, Col: c}).Symbol = sym
	}

	return span, nil
}

// GenerateRandomBoard clears the board and grows a fresh compliant tree
// from a central root: it generates the root's row anchored at the
// center column, then generates every column touched by that row other
// than the root's own, anchored back at the root's row, and finally
// rediscovers structure (initialize_random, spec §6). maxDepth bounds the
// total length of each generated span.
func (b *Board) GenerateRandomBoard(rng *rand.Rand, maxDepth int) error {
	b.Grid.Each(func(c *core.Cell) { c.SetEmpty() })
	b.Sources = make(map[core.Position]*core.SourceInfo)
	b.RentedResources = make(map[core.Position]byte)

	rootRow := b.Grid.Rows / 2
	rootCol := b.Grid.Cols / 2

	rowSpan, err := b.GenerateRow(rng, rootRow, rootCol, 8, maxDepth)
	if err != nil {
		return err
	}

	for c, sym := range rowSpan {
		if sym == core.Empty || c == rootCol {
			continue
		}
		if _, err := b.GenerateCol(rng, c, rootRow, 8, maxDepth); err != nil {
			return err
		}
	}

	b.SetRoot(core.Position{Row: rootRow, Col: rootCol})

	return b.DiscoverStructure()
}
