package board

import "errors"

// Sentinel errors for board operations (spec §7). LanguageViolation and
// PositionOccupied are recovered locally on internal trials (cut/paste,
// generation) and are not surfaced above the Board API: TryApplySubtree
// reports them as a false result, not as an error.
var (
	// ErrNoRoot indicates the board has not yet had a root established.
	ErrNoRoot = errors.New("board: no root cell set")

	// ErrCellNotOccupied indicates a cut/paste or discovery operation
	// targeted a free cell where an occupied one was required.
	ErrCellNotOccupied = errors.New("board: target cell is not occupied")

	// ErrPasteRejected names a paste that failed either the
	// position-availability or the language-compliance check.
	// TryApplySubtree itself signals this with a false result and does not
	// return this error.
	ErrPasteRejected = errors.New("board: paste rejected")

	// ErrNoImprovingPosition names the case of no strictly improving
	// candidate. EvaluatePositionsToMove itself signals it with
	// bestIndex == -1 and a nil error, not with this error.
	ErrNoImprovingPosition = errors.New("board: no improving position found")
)
