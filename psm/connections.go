package psm

import (
	"golang.org/x/exp/slices"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

// solveConnections is the greedy two-pass connection solver of spec
// §4.6: direct connections first (weakest-remaining-power first), then
// mirror-relayed connections for anything still out of direct hop range.
func (m *Manager) solveConnections() {
	mirroringSuitable := m.collectNodesForMirroring()

	publishers, subscribers := m.sortAndFilter(false)
	m.solveDirectConnections(publishers, subscribers)

	publishers, subscribers = m.sortAndFilter(true)
	m.solveMirrorConnections(publishers, subscribers, mirroringSuitable)
}

// sortAndFilter collects publisher/subscriber positions with positive
// remaining power, sorted ascending by remaining power (weakest first,
// so draining the smallest capacities first reduces stranded partial
// supply). When forMirroring is set it additionally drops any source
// whose distance to the nearest VO node exceeds MaxHop.
func (m *Manager) sortAndFilter(forMirroring bool) (publishers, subscribers []core.Position) {
	for pos, info := range m.Board.Sources {
		if info.RemainingPower() <= core.Epsilon {
			continue
		}
		if forMirroring && m.nearestVONodeDistance(pos) > m.MaxHop {
			continue
		}
		switch info.SourceType {
		case core.SourcePublisher:
			publishers = append(publishers, pos)
		case core.SourceSubscriber:
			subscribers = append(subscribers, pos)
		}
	}

	byRemainingPower := func(list []core.Position) func(a, b core.Position) int {
		return func(a, b core.Position) int {
			pa, pb := m.Board.Sources[a].RemainingPower(), m.Board.Sources[b].RemainingPower()
			switch {
			case pa < pb, pa == pb && a.Less(b):
				return -1
			case pa > pb, pa == pb && b.Less(a):
				return 1
			default:
				return 0
			}
		}
	}
	slices.SortFunc(publishers, byRemainingPower(publishers))
	slices.SortFunc(subscribers, byRemainingPower(subscribers))

	return publishers, subscribers
}

// solveDirectConnections pairs each publisher with every service-compatible
// subscriber within MaxHop, creating or topping up a direct LinkInfo.
func (m *Manager) solveDirectConnections(publishers, subscribers []core.Position) {
	for _, pubPos := range publishers {
		pub := m.Board.Sources[pubPos]
		for _, subPos := range subscribers {
			sub := m.Board.Sources[subPos]
			if sub.ServiceType != pub.ServiceType {
				continue
			}
			if core.ManhattanDistance(pubPos, subPos) > m.MaxHop {
				continue
			}

			if _, linked := pub.ConnectedTo[subPos]; linked {
				m.checkCapacityMaximize(pubPos, subPos)

				continue
			}

			flow := minF(pub.RemainingPower(), sub.RemainingPower())
			if flow <= 0 {
				continue
			}
			pub.AddLink(subPos, core.LinkInfo{Flow: flow})
			sub.AddLink(pubPos, core.LinkInfo{Flow: flow})
		}
	}
}

// checkCapacityMaximize tops up an existing direct link between p and s
// up to the newly available minimum of remaining powers (spec §4.6).
func (m *Manager) checkCapacityMaximize(p, s core.Position) {
	pub, sub := m.Board.Sources[p], m.Board.Sources[s]
	add := minF(pub.RemainingPower(), sub.RemainingPower())
	if add <= 0 {
		return
	}
	pub.IncreaseLinkFlow(s, add)
	sub.IncreaseLinkFlow(p, add)
}

// solveMirrorConnections relays still-unconnected publisher/subscriber
// pairs through VO nodes acting as mirrors, using connectNodesByHeuristic
// to find a path from the publisher's nearest existing relay foothold
// to the subscriber.
func (m *Manager) solveMirrorConnections(publishers, subscribers []core.Position, mirroringSuitable []core.Position) {
	for _, pubPos := range publishers {
		pub := m.Board.Sources[pubPos]
		for _, subPos := range subscribers {
			sub := m.Board.Sources[subPos]
			if sub.ServiceType != pub.ServiceType {
				continue
			}
			if _, linked := pub.ConnectedTo[subPos]; linked {
				continue
			}
			if core.ManhattanDistance(pubPos, subPos) <= m.MaxHop {
				continue // already handled (or handleable) directly
			}

			start := m.closestRelayStart(pub, pubPos, subPos)
			path, ok := connectNodesByHeuristic(start, subPos, mirroringSuitable, m.MaxHop)
			if !ok {
				continue
			}

			mirrorsUsed := make([]core.Position, 0, len(path))
			for _, p := range path {
				if p != pubPos {
					mirrorsUsed = append(mirrorsUsed, p)
				}
			}

			flow := minF(pub.RemainingPower(), sub.RemainingPower())
			if flow <= 0 {
				continue
			}
			pub.AddLink(subPos, core.LinkInfo{Flow: flow, MirrorNodesUsed: mirrorsUsed})
			sub.AddLink(pubPos, core.LinkInfo{Flow: flow, MirrorNodesUsed: mirrorsUsed})

			for _, mirrorPos := range mirrorsUsed {
				mirroringSuitable = removePos(mirroringSuitable, mirrorPos)
				mirror, ok := m.Mirrors[mirrorPos]
				if !ok {
					mirror = newMirrorNodeInfo(mirrorPos, pubPos)
					m.Mirrors[mirrorPos] = mirror
				}
				mirror.Subscribers[subPos] = struct{}{}
			}
		}
	}
}

// closestRelayStart returns whichever of pubPos or one of pub's
// already-used mirrors lies closest to end, to grow the relay chain
// incrementally instead of always starting over from the publisher.
func (m *Manager) closestRelayStart(pub *core.SourceInfo, pubPos, end core.Position) core.Position {
	best := pubPos
	bestDist := core.ManhattanDistance(pubPos, end)
	for _, link := range pub.ConnectedTo {
		for _, mirrorPos := range link.MirrorNodesUsed {
			if d := core.ManhattanDistance(mirrorPos, end); d < bestDist {
				bestDist = d
				best = mirrorPos
			}
		}
	}

	return best
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}

	return b
}

func removePos(list []core.Position, target core.Position) []core.Position {
	out := list[:0]
	for _, p := range list {
		if p != target {
			out = append(out, p)
		}
	}

	return out
}
