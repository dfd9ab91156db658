package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

func TestManhattanDistanceNeverZero(t *testing.T) {
	same := core.Position{Row: 3, Col: 4}
	assert.Equal(t, 1, core.ManhattanDistance(same, same))
}

func TestManhattanDistance(t *testing.T) {
	a := core.Position{Row: 0, Col: 0}
	b := core.Position{Row: 2, Col: 3}
	assert.Equal(t, 1+2+3, core.ManhattanDistance(a, b))
	assert.Equal(t, core.ManhattanDistance(a, b), core.ManhattanDistance(b, a))
}

func TestPositionLess(t *testing.T) {
	a := core.Position{Row: 1, Col: 5}
	b := core.Position{Row: 2, Col: 0}
	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))

	c := core.Position{Row: 1, Col: 2}
	assert.True(t, c.Less(a))
}

func TestDirectionOffsetsAndOpposite(t *testing.T) {
	require.Equal(t, core.Position{Row: 0, Col: -1}, core.Left.Offset())
	require.Equal(t, core.Position{Row: 1, Col: 0}, core.Down.Offset())
	require.Equal(t, core.Position{Row: 0, Col: 1}, core.Right.Offset())
	require.Equal(t, core.Position{Row: -1, Col: 0}, core.Up.Offset())

	assert.Equal(t, core.Right, core.Left.Opposite())
	assert.Equal(t, core.Up, core.Down.Opposite())
}

func TestSymbolDirectionMap(t *testing.T) {
	assert.Equal(t, core.Right, core.SymbolDirection['4'])
	assert.Equal(t, core.Left, core.SymbolDirection['e'])
	assert.Equal(t, core.Down, core.SymbolDirection['7'])
	assert.Equal(t, core.Up, core.SymbolDirection['2'])
}
