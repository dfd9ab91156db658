package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

func TestSourceInfoRemainingPower(t *testing.T) {
	s := core.NewSourceInfo(10, core.SourcePublisher, "a")
	assert.Equal(t, 10.0, s.RemainingPower())

	s.AddLink(core.Position{Row: 1, Col: 1}, core.LinkInfo{Flow: 4})
	assert.Equal(t, 4.0, s.UsedPower())
	assert.Equal(t, 6.0, s.RemainingPower())

	s.IncreaseLinkFlow(core.Position{Row: 1, Col: 1}, 2)
	assert.Equal(t, 6.0, s.UsedPower())
	assert.Equal(t, 6.0, s.ConnectedTo[core.Position{Row: 1, Col: 1}].Flow)

	s.RemoveLink(core.Position{Row: 1, Col: 1})
	assert.Equal(t, 0.0, s.UsedPower())
	assert.Empty(t, s.ConnectedTo)
}

func TestLinkInfoEqual(t *testing.T) {
	a := core.LinkInfo{Flow: 5, MirrorNodesUsed: []core.Position{{Row: 0, Col: 1}}}
	b := core.LinkInfo{Flow: 5, MirrorNodesUsed: []core.Position{{Row: 0, Col: 1}}}
	assert.True(t, a.Equal(b))

	c := core.LinkInfo{Flow: 5.00001, MirrorNodesUsed: []core.Position{{Row: 0, Col: 1}}}
	assert.True(t, a.Equal(c), "within epsilon")

	d := core.LinkInfo{Flow: 5, MirrorNodesUsed: []core.Position{{Row: 0, Col: 2}}}
	assert.False(t, a.Equal(d))
}
