package psm

import "github.com/AGAPIA/VirtualOrganisms/core"

// connectNodesByHeuristic greedily builds a relay path from start to end
// using a beam of width one (spec §4.6): at each step it requires the
// next hop to be within maxHop of the current node, preferring whichever
// remaining candidate is closest to end, breaking ties by the one
// furthest from the current node (for spread). It returns the path
// (start included) and true on success, or nil/false if no candidate
// can extend the chain and the end is still out of range.
func connectNodesByHeuristic(start, end core.Position, candidates []core.Position, maxHop int) ([]core.Position, bool) {
	path := []core.Position{start}
	current := start
	used := make(map[core.Position]bool, len(candidates))

	for {
		if core.ManhattanDistance(current, end) <= maxHop {
			return path, true
		}

		bestIdx := -1
		for i, node := range candidates {
			if used[node] || node == start {
				continue
			}
			if core.ManhattanDistance(node, current) > maxHop {
				continue
			}
			if bestIdx == -1 {
				bestIdx = i

				continue
			}

			best := candidates[bestIdx]
			dNodeEnd, dBestEnd := core.ManhattanDistance(node, end), core.ManhattanDistance(best, end)
			switch {
			case dNodeEnd < dBestEnd:
				bestIdx = i
			case dNodeEnd == dBestEnd && core.ManhattanDistance(node, current) > core.ManhattanDistance(best, current):
				bestIdx = i
			}
		}

		if bestIdx == -1 {
			return nil, false
		}

		next := candidates[bestIdx]
		used[next] = true
		path = append(path, next)
		current = next
	}
}
