package psm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
	"github.com/AGAPIA/VirtualOrganisms/psm"
	"github.com/AGAPIA/VirtualOrganisms/simconfig"
)

func occupy(b *board.Board, row, col int, symbol byte) {
	b.Grid.At(core.Position{Row: row, Col: col}).Symbol = symbol
}

func newScenarioBoard(t *testing.T) *board.Board {
	t.Helper()
	cfg := simconfig.Default(simconfig.WithDimensions(20, 20), simconfig.WithMaxHopDistance(5), simconfig.WithMaxFlowPerCell(100))

	return board.NewBoard(cfg)
}

// TestDirectConnection is scenario S1.
func TestDirectConnection(t *testing.T) {
	b := newScenarioBoard(t)
	occupy(b, 2, 2, '4')
	occupy(b, 2, 5, '4')
	mgr := psm.NewManager(b)

	pub := core.Position{Row: 2, Col: 2}
	sub := core.Position{Row: 2, Col: 5}
	require.NoError(t, mgr.OnItemAdd(pub, core.NewSourceInfo(10, core.SourcePublisher, "a")))
	require.NoError(t, mgr.OnItemAdd(sub, core.NewSourceInfo(7, core.SourceSubscriber, "a")))

	link, ok := b.Sources[pub].ConnectedTo[sub]
	require.True(t, ok, "expected a direct connection")
	assert.InDelta(t, 7, link.Flow, 1e-9)
	assert.Empty(t, link.MirrorNodesUsed)
	assert.InDelta(t, 7, b.Sources[pub].UsedPower(), 1e-9)
	assert.InDelta(t, 7, b.Sources[sub].UsedPower(), 1e-9)

	back, ok := b.Sources[sub].ConnectedTo[pub]
	require.True(t, ok)
	assert.True(t, link.Equal(back), "I4: symmetric link data must match")
}

// TestMirroredConnection is scenario S2, followed by its removal (S3).
func TestMirroredConnectionAndRemoval(t *testing.T) {
	b := newScenarioBoard(t)
	occupy(b, 0, 0, '4')
	occupy(b, 0, 3, '4')
	occupy(b, 0, 6, '4')
	occupy(b, 0, 9, '4')
	occupy(b, 0, 12, '4')
	mgr := psm.NewManager(b)

	pub := core.Position{Row: 0, Col: 0}
	sub := core.Position{Row: 0, Col: 12}
	require.NoError(t, mgr.OnItemAdd(pub, core.NewSourceInfo(20, core.SourcePublisher, "a")))
	require.NoError(t, mgr.OnItemAdd(sub, core.NewSourceInfo(20, core.SourceSubscriber, "a")))

	link, ok := b.Sources[pub].ConnectedTo[sub]
	require.True(t, ok, "expected a mirrored connection")
	assert.InDelta(t, 20, link.Flow, 1e-9)
	assert.Equal(t, []core.Position{
		{Row: 0, Col: 3}, {Row: 0, Col: 6}, {Row: 0, Col: 9},
	}, link.MirrorNodesUsed)
	require.Len(t, mgr.Mirrors, 3)
	for _, mirrorPos := range link.MirrorNodesUsed {
		assert.Equal(t, 1, mgr.Mirrors[mirrorPos].Refcount())
	}

	require.NoError(t, mgr.OnItemRemoved(pub, false))

	_, stillLinked := b.Sources[sub].ConnectedTo[pub]
	assert.False(t, stillLinked, "removing the publisher must tear down the subscriber's link")
	assert.Empty(t, mgr.Mirrors, "every mirror's refcount must drop to zero and be pruned")
	for _, pos := range []core.Position{{Row: 0, Col: 3}, {Row: 0, Col: 6}, {Row: 0, Col: 9}} {
		assert.False(t, b.Grid.IsFree(pos), "the relay cells themselves remain part of the tree")
	}
}

func TestServiceTypeMismatchPreventsConnection(t *testing.T) {
	b := newScenarioBoard(t)
	occupy(b, 1, 1, '4')
	occupy(b, 1, 2, '4')
	mgr := psm.NewManager(b)

	pub := core.Position{Row: 1, Col: 1}
	sub := core.Position{Row: 1, Col: 2}
	require.NoError(t, mgr.OnItemAdd(pub, core.NewSourceInfo(10, core.SourcePublisher, "audio")))
	require.NoError(t, mgr.OnItemAdd(sub, core.NewSourceInfo(10, core.SourceSubscriber, "video")))

	_, linked := b.Sources[pub].ConnectedTo[sub]
	assert.False(t, linked)
}

func TestOnItemAddRejectsDuplicate(t *testing.T) {
	b := newScenarioBoard(t)
	occupy(b, 1, 1, '4')
	mgr := psm.NewManager(b)
	pos := core.Position{Row: 1, Col: 1}
	info := core.NewSourceInfo(10, core.SourcePublisher, "a")

	require.NoError(t, mgr.OnItemAdd(pos, info))
	assert.ErrorIs(t, mgr.OnItemAdd(pos, info), psm.ErrAlreadyPresent)
}
