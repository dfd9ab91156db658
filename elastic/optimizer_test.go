package elastic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/elastic"
	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

func TestRunOnEmptyBoardIsANoOp(t *testing.T) {
	b := board.NewBoard(simconfig.Default(simconfig.WithDimensions(4, 4)))
	o := elastic.NewOptimizer(b)

	added, removed, err := o.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, removed)
}

func TestRunStopsAtMaxResourcesToRent(t *testing.T) {
	cfg := simconfig.Default(simconfig.WithDimensions(3, 3), simconfig.WithMaxResourcesToRent(0))
	b := board.NewBoard(cfg)
	b.Grid.At(core.Position{Row: 1, Col: 1}).Symbol = '2'
	b.SetRoot(core.Position{Row: 1, Col: 1})
	require.NoError(t, b.DiscoverStructure())

	o := elastic.NewOptimizer(b)
	added, _, err := o.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, added, "a zero rental budget must reject every add candidate outright")
}
