package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

func TestGridBoundsAndFree(t *testing.T) {
	g := core.NewGrid(3, 4, 100)
	assert.True(t, g.IsValid(core.Position{Row: 0, Col: 0}))
	assert.True(t, g.IsValid(core.Position{Row: 2, Col: 3}))
	assert.False(t, g.IsValid(core.Position{Row: 3, Col: 0}))
	assert.False(t, g.IsValid(core.Position{Row: 0, Col: -1}))

	assert.True(t, g.IsFree(core.Position{Row: 1, Col: 1}))
	g.At(core.Position{Row: 1, Col: 1}).Symbol = '4'
	assert.False(t, g.IsFree(core.Position{Row: 1, Col: 1}))
}

func TestGridCloneIsIndependent(t *testing.T) {
	g := core.NewGrid(2, 2, 100)
	g.At(core.Position{Row: 0, Col: 0}).Symbol = '4'

	clone := g.Clone()
	require.NotSame(t, g.At(core.Position{Row: 0, Col: 0}), clone.At(core.Position{Row: 0, Col: 0}))
	assert.Equal(t, byte('4'), clone.At(core.Position{Row: 0, Col: 0}).Symbol)

	clone.At(core.Position{Row: 0, Col: 0}).Symbol = core.Empty
	assert.Equal(t, byte('4'), g.At(core.Position{Row: 0, Col: 0}).Symbol, "mutating the clone must not affect the original")
}

func TestGridCountNodes(t *testing.T) {
	g := core.NewGrid(2, 2, 100)
	assert.Equal(t, 0, g.CountNodes())
	g.At(core.Position{Row: 0, Col: 0}).Symbol = '4'
	g.At(core.Position{Row: 1, Col: 1}).Symbol = '7'
	assert.Equal(t, 2, g.CountNodes())
}
