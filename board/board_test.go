package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	cfg := simconfig.Default(simconfig.WithDimensions(4, 4))

	return board.NewBoard(cfg)
}

func TestNewBoardDimensions(t *testing.T) {
	b := newTestBoard(t)

	assert.Equal(t, 4, b.Grid.Rows)
	assert.Equal(t, 4, b.Grid.Cols)
	assert.Equal(t, 0, b.CountNodes())
}

func TestAddSourceLifecycle(t *testing.T) {
	b := newTestBoard(t)
	pos := core.Position{Row: 1, Col: 1}
	b.Grid.At(pos).Symbol = '2'

	info := core.NewSourceInfo(10, core.SourcePublisher, "audio")
	require.NoError(t, b.AddSource(pos, info))

	err := b.AddSource(pos, info)
	assert.ErrorIs(t, err, core.ErrDuplicateSource)

	err = b.AddSource(core.Position{Row: 2, Col: 2}, info)
	assert.ErrorIs(t, err, core.ErrInvalidPosition, "free cell cannot host a source")

	require.NoError(t, b.RemoveSource(pos))
	assert.ErrorIs(t, b.RemoveSource(pos), core.ErrSourceNotFound)
}

func TestDiscoverStructureLinksParentChild(t *testing.T) {
	b := newTestBoard(t)
	// A two-cell vertical chain: (1,1) is root, (0,1) is its "down" child
	// (physically above, per the prev/next direction convention).
	b.Grid.At(core.Position{Row: 1, Col: 1}).Symbol = '7'
	b.Grid.At(core.Position{Row: 0, Col: 1}).Symbol = '2'
	b.SetRoot(core.Position{Row: 1, Col: 1})

	require.NoError(t, b.DiscoverStructure())

	root := b.Grid.At(core.Position{Row: 1, Col: 1})
	child := b.Grid.At(core.Position{Row: 0, Col: 1})

	assert.True(t, root.IsRoot())
	assert.Equal(t, core.Position{Row: 1, Col: 1}, child.Prev[core.Down])
	assert.Equal(t, core.Position{Row: 0, Col: 1}, root.Next[core.Down])
	assert.Equal(t, 1, child.DistanceToRoot)
}

func TestCutSubtreeClearsCellsAndRecordsOffsets(t *testing.T) {
	b := newTestBoard(t)
	b.Grid.At(core.Position{Row: 1, Col: 1}).Symbol = '7'
	b.Grid.At(core.Position{Row: 0, Col: 1}).Symbol = '2'
	b.SetRoot(core.Position{Row: 1, Col: 1})
	require.NoError(t, b.DiscoverStructure())

	info, err := b.CutSubtree(core.Position{Row: 0, Col: 1})
	require.NoError(t, err)
	require.Len(t, info.Offsets, 1)
	assert.Equal(t, byte('2'), info.Offsets[0].Symbol)
	assert.True(t, b.Grid.IsFree(core.Position{Row: 0, Col: 1}))

	_, err = b.CutSubtree(core.Position{Row: 0, Col: 1})
	assert.ErrorIs(t, err, board.ErrCellNotOccupied)
}

func TestTryApplySubtreeRoundTrip(t *testing.T) {
	b := newTestBoard(t)
	b.Grid.At(core.Position{Row: 1, Col: 1}).Symbol = '7'
	b.Grid.At(core.Position{Row: 0, Col: 1}).Symbol = '2'
	b.SetRoot(core.Position{Row: 1, Col: 1})
	require.NoError(t, b.DiscoverStructure())

	info, err := b.CutSubtree(core.Position{Row: 0, Col: 1})
	require.NoError(t, err)

	ok := b.TryApplySubtree(core.Position{Row: 0, Col: 1}, info, true, false)
	assert.True(t, ok)
	assert.Equal(t, byte('2'), b.Grid.At(core.Position{Row: 0, Col: 1}).Symbol)

	// Pasting again on the same (now occupied) position must fail.
	ok = b.TryApplySubtree(core.Position{Row: 0, Col: 1}, info, true, false)
	assert.False(t, ok)
}

func TestCloneIsIndependent(t *testing.T) {
	b := newTestBoard(t)
	pos := core.Position{Row: 1, Col: 1}
	b.Grid.At(pos).Symbol = '2'
	info := core.NewSourceInfo(10, core.SourcePublisher, "audio")
	require.NoError(t, b.AddSource(pos, info))

	clone := b.Clone()
	require.NoError(t, clone.RemoveSource(pos))

	_, stillThere := b.Sources[pos]
	assert.True(t, stillThere, "mutating the clone must not affect the original")
}
