package psm

import (
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"

	"github.com/AGAPIA/VirtualOrganisms/board"
	"github.com/AGAPIA/VirtualOrganisms/core"
)

// Manager owns the mirror-node registry for a single Board and runs the
// greedy connection solver over its Sources map (spec §4.6). A Board's
// Sources map is itself the publisher/subscriber collection: publishers
// and subscribers are distinguished on read by SourceInfo.SourceType.
type Manager struct {
	Board   *board.Board
	MaxHop  int
	Mirrors map[core.Position]*MirrorNodeInfo
}

// NewManager returns a Manager over b, honoring b.Config.MaxHopDistance.
func NewManager(b *board.Board) *Manager {
	return &Manager{
		Board:   b,
		MaxHop:  b.Config.MaxHopDistance,
		Mirrors: make(map[core.Position]*MirrorNodeInfo),
	}
}

// OnItemAdd registers src at pos (publisher or subscriber, by
// src.SourceType), then re-solves every connection (spec §4.6).
func (m *Manager) OnItemAdd(pos core.Position, src core.SourceInfo) error {
	if _, exists := m.Board.Sources[pos]; exists {
		return ErrAlreadyPresent
	}
	if err := m.Board.AddSource(pos, src); err != nil {
		return err
	}
	if err := m.SanityCheck(); err != nil {
		return err
	}
	m.solveConnections()

	return nil
}

// OnItemRemoved removes pos (or, if removeAll, resets all PSM state):
// it tears down pos's connections symmetrically, decrementing and
// pruning every mirror it used, then re-solves (spec §4.6).
func (m *Manager) OnItemRemoved(pos core.Position, removeAll bool) error {
	if removeAll {
		m.Board.Sources = make(map[core.Position]*core.SourceInfo)
		m.Mirrors = make(map[core.Position]*MirrorNodeInfo)

		return nil
	}

	info, ok := m.Board.Sources[pos]
	if !ok {
		return core.ErrSourceNotFound
	}

	for other, link := range info.ConnectedTo {
		subscriber := other
		if info.SourceType == core.SourceSubscriber {
			subscriber = pos
		}
		for _, mirrorPos := range link.MirrorNodesUsed {
			m.releaseMirror(mirrorPos, subscriber)
		}
		if otherInfo, ok := m.Board.Sources[other]; ok {
			otherInfo.RemoveLink(pos)
		}
	}

	if err := m.Board.RemoveSource(pos); err != nil {
		return err
	}
	if err := m.SanityCheck(); err != nil {
		return err
	}
	m.solveConnections()

	return nil
}

// releaseMirror drops subscriber from mirrorPos's MirrorNodeInfo and
// removes the record entirely once its refcount reaches zero.
func (m *Manager) releaseMirror(mirrorPos, subscriber core.Position) {
	mirror, ok := m.Mirrors[mirrorPos]
	if !ok {
		return
	}
	delete(mirror.Subscribers, subscriber)
	if mirror.Refcount() == 0 {
		delete(m.Mirrors, mirrorPos)
	}
}

// collectNodesForMirroring returns every occupied board cell not
// currently a mirror and not itself a publisher/subscriber position
// (spec §4.6, enforcing P7 exclusivity), in ascending (row, col) order
// for deterministic solver behavior.
func (m *Manager) collectNodesForMirroring() []core.Position {
	var out []core.Position
	m.Board.Grid.Each(func(c *core.Cell) {
		pos := c.Position()
		if _, isMirror := m.Mirrors[pos]; isMirror {
			return
		}
		if _, isSource := m.Board.Sources[pos]; isSource {
			return
		}
		out = append(out, pos)
	})
	slices.SortFunc(out, func(a, b core.Position) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		default:
			return 0
		}
	})

	return out
}

// nearestVONodeDistance returns the minimum Manhattan distance from pos
// to any occupied board cell, or -1 if the board has no occupied cells.
func (m *Manager) nearestVONodeDistance(pos core.Position) int {
	best := -1
	m.Board.Grid.Each(func(c *core.Cell) {
		d := core.ManhattanDistance(pos, c.Position())
		if best == -1 || d < best {
			best = d
		}
	})

	return best
}

// SanityCheck runs the debug-build checks of spec §4.6(a)-(b): no source
// position is also registered as a mirror (P7), and
// rebuilding the mirror registry from subscriber-side link data matches
// the live registry exactly (P3).
func (m *Manager) SanityCheck() error {
	var errs []error

	for pos := range m.Board.Sources {
		if _, isMirror := m.Mirrors[pos]; isMirror {
			errs = append(errs, core.NewStateCorruption("psm", core.InvariantSourcePartition, pos,
				"source position is also registered as a mirror"))
		}
	}

	rebuilt := make(map[core.Position]map[core.Position]struct{})
	for pos, info := range m.Board.Sources {
		if info.SourceType != core.SourceSubscriber {
			continue
		}
		for _, link := range info.ConnectedTo {
			for _, mirrorPos := range link.MirrorNodesUsed {
				if rebuilt[mirrorPos] == nil {
					rebuilt[mirrorPos] = make(map[core.Position]struct{})
				}
				rebuilt[mirrorPos][pos] = struct{}{}
			}
		}
	}
	for pos, subs := range rebuilt {
		live, ok := m.Mirrors[pos]
		if !ok || live.Refcount() != len(subs) {
			errs = append(errs, core.NewStateCorruption("psm", core.InvariantMirrorRefcount, pos,
				"mirror refcount does not match subscriber-side link data"))
		}
	}
	for pos, live := range m.Mirrors {
		if _, ok := rebuilt[pos]; !ok && live.Refcount() != 0 {
			errs = append(errs, core.NewStateCorruption("psm", core.InvariantMirrorRefcount, pos,
				"mirror has no corresponding subscriber-side link data"))
		}
	}

	if len(errs) > 0 {
		klog.V(1).Infof("psm: sanity check found %d violation(s)", len(errs))
	}

	return core.CombineViolations(errs...)
}
