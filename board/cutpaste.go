package board

import "github.com/AGAPIA/VirtualOrganisms/core"

// CutSubtree detaches the subtree rooted at root (spec §4.4): it records
// every included cell as an offset/symbol/rented triple relative to
// root, clears those cells on the board, and tracks the bounding box of
// the offsets. It is a pure topological operation: it does not consult
// the language oracle, and leaves language compliance of neighboring
// rows/columns to the caller.
func (b *Board) CutSubtree(root core.Position) (*SubtreeInfo, error) {
	rootCell := b.Grid.At(root)
	if rootCell == nil || rootCell.IsFree() {
		return nil, ErrCellNotOccupied
	}

	info := newSubtreeInfo()
	childDirs := b.topology.ChildDirs()

	var walk func(pos core.Position)
	walk = func(pos core.Position) {
		cell := b.Grid.At(pos)
		info.add(OffsetAndSymbol{
			RowOffset: pos.Row - root.Row,
			ColOffset: pos.Col - root.Col,
			Symbol:    cell.Symbol,
			Rented:    cell.Rented,
		})

		for _, d := range childDirs {
			if np := cell.Next[d]; np.IsValid() {
				walk(np)
			}
		}
	}
	walk(root)

	for _, off := range info.Offsets {
		pos := core.Position{Row: root.Row + off.RowOffset, Col: root.Col + off.ColOffset}
		cell := b.Grid.At(pos)
		cell.SetEmpty()
		cell.ResetBuffer()
		delete(b.RentedResources, pos)
	}

	return info, nil
}

// CanPasteAt reports whether every offset in subtree, translated to
// target, lands in-bounds and on a currently free cell (spec §4.4).
func (b *Board) CanPasteAt(target core.Position, subtree *SubtreeInfo) bool {
	for _, off := range subtree.Offsets {
		pos := core.Position{Row: target.Row + off.RowOffset, Col: target.Col + off.ColOffset}
		if !b.Grid.IsValid(pos) || !b.Grid.IsFree(pos) {
			return false
		}
	}

	return true
}

// TryApplySubtree writes subtree's symbols translated to target. If
// checkPositions is set it first requires CanPasteAt; if checkLanguage
// is set it additionally verifies every touched row and column is
// language-compliant after the write, rolling back to the pre-call state
// on either failure. It returns whether the paste was applied; rejection
// is a recovered local signal (PositionOccupied/LanguageViolation), not
// an error propagated to the caller (spec §7 policy).
func (b *Board) TryApplySubtree(target core.Position, subtree *SubtreeInfo, checkPositions, checkLanguage bool) bool {
	if checkPositions && !b.CanPasteAt(target, subtree) {
		return false
	}

	backups := make([]cellBackup, 0, len(subtree.Offsets))
	touchedRows := make(map[int]struct{})
	touchedCols := make(map[int]struct{})

	for _, off := range subtree.Offsets {
		pos := core.Position{Row: target.Row + off.RowOffset, Col: target.Col + off.ColOffset}
		cell := b.Grid.At(pos)
		if cell == nil {
			b.rollback(backups)

			return false
		}
		backups = append(backups, cellBackup{pos: pos, symbol: cell.Symbol, rented: cell.Rented})
		cell.Symbol = off.Symbol
		cell.Rented = off.Rented
		touchedRows[pos.Row] = struct{}{}
		touchedCols[pos.Col] = struct{}{}
	}

	if checkLanguage {
		for r := range touchedRows {
			if !b.IsBoardCompliant(r, -1) {
				b.rollback(backups)

				return false
			}
		}
		for c := range touchedCols {
			if !b.IsBoardCompliant(-1, c) {
				b.rollback(backups)

				return false
			}
		}
	}

	_ = b.DiscoverStructure()

	return true
}

type cellBackup struct {
	pos    core.Position
	symbol byte
	rented bool
}

func (b *Board) rollback(backups []cellBackup) {
	for _, bk := range backups {
		cell := b.Grid.At(bk.pos)
		cell.Symbol = bk.symbol
		cell.Rented = bk.rented
	}
}

// EvaluatePositionsToMove enumerates every position on the board where
// subtreeCut could be re-pasted, simulates one flow tick on a private
// clone for each feasible candidate, and compares that tick's flow with
// the board's current average flow (spec §4.4). It returns
// the candidates tried, the index of the best strictly improving one
// (ties broken by lowest (row, col)), and its projected score; bestIndex
// is -1 if no candidate improves on the baseline, in which case
// bestScore equals the baseline.
func (b *Board) EvaluatePositionsToMove(subtreeCut *SubtreeInfo) (candidates []core.Position, bestIndex int, bestScore float64, err error) {
	baseline := b.LastSimulationAvgFlowPerUnit()
	bestIndex = -1
	bestScore = baseline

	for r := 0; r < b.Grid.Rows; r++ {
		for c := 0; c < b.Grid.Cols; c++ {
			target := core.Position{Row: r, Col: c}
			if !b.CanPasteAt(target, subtreeCut) {
				continue
			}
			candidates = append(candidates, target)

			trial := b.Clone()
			if !trial.TryApplySubtree(target, subtreeCut, true, true) {
				continue
			}

			flow, simErr := trial.SimulateTick(trial.FillSimulationContext())
			if simErr != nil {
				continue
			}

			if flow > bestScore+core.Epsilon {
				bestScore = flow
				bestIndex = len(candidates) - 1
			}
		}
	}

	return candidates, bestIndex, bestScore, nil
}
