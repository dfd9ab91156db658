package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

func TestCellBufferBounds(t *testing.T) {
	c := core.NewCell(0, 0, 10)
	require.NoError(t, c.AddFlow(6, false))
	assert.Equal(t, 6.0, c.BufferedData)
	assert.Equal(t, 4.0, c.RemainingCapacity())

	err := c.AddFlow(10, false)
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
	assert.Equal(t, 6.0, c.BufferedData, "failed add must not mutate the buffer")

	require.NoError(t, c.SubtractFlow(6))
	assert.Equal(t, 0.0, c.BufferedData)

	err = c.SubtractFlow(1)
	assert.ErrorIs(t, err, core.ErrCapacityExceeded)
}

func TestCellIsRootRequiresNoPrevLinkAndOccupied(t *testing.T) {
	c := core.NewCell(2, 2, 10)
	assert.False(t, c.IsRoot(), "an empty cell is never the root")

	c.Symbol = '4'
	assert.True(t, c.IsRoot())

	c.Prev[core.Left] = core.Position{Row: 2, Col: 1}
	assert.False(t, c.IsRoot())
}

func TestCellSetEmptyClearsEverything(t *testing.T) {
	c := core.NewCell(0, 0, 10)
	c.Symbol = '7'
	c.Rented = true
	c.DistanceToRoot = 3
	c.Prev[core.Down] = core.Position{Row: 1, Col: 0}

	c.SetEmpty()
	assert.True(t, c.IsFree())
	assert.False(t, c.Rented)
	assert.Equal(t, -1, c.DistanceToRoot)
	assert.False(t, c.Prev[core.Down].IsValid())
}
