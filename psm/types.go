package psm

import "github.com/AGAPIA/VirtualOrganisms/core"

// MirrorNodeInfo is a VO cell pressed into service as a relay for one
// publisher's supply (spec §3). Refcount is the number of distinct
// subscribers currently routed through it; the record is dropped once
// that reaches zero.
type MirrorNodeInfo struct {
	Position        core.Position
	ParentPublisher core.Position
	Subscribers     map[core.Position]struct{}
}

func newMirrorNodeInfo(pos, parentPublisher core.Position) *MirrorNodeInfo {
	return &MirrorNodeInfo{
		Position:        pos,
		ParentPublisher: parentPublisher,
		Subscribers:     make(map[core.Position]struct{}),
	}
}

// Refcount returns the number of subscribers currently sharing this relay.
func (m *MirrorNodeInfo) Refcount() int {
	return len(m.Subscribers)
}
