// Package language implements the compile-time row/column pattern oracle
// (spec §4.2): it decides whether a row or column's symbol sequence
// matches the fixed regular language for that axis, and it generates
// random compliant sequences anchored at a pivot column/row.
//
// Row pattern:    4* (2|7) e*   — generate_row anchors the pivot at the given pivot index.
// Column pattern: 7* (4|e) 2*  — generate_col anchors the pivot at the given pivot index.
//
// The empty marker is tolerated at any position outside the occupied span:
// IsRowCompliant/IsColCompliant strip runs of Empty from both ends before
// matching, mirroring the original's "empty acts as a gap the language
// tolerates" rule (spec I1).
//
// Errors:
//
//	ErrEmptySequence     - GenerateRow/GenerateCol given zero-length span or a pivot outside it.
//	ErrGenerationFailed  - no compliant sequence found within max_attempts.
package language

import "errors"

var (
	// ErrEmptySequence indicates a zero-length row/column span was requested,
	// or a pivot index outside the span.
	ErrEmptySequence = errors.New("language: empty sequence")

	// ErrGenerationFailed indicates generation exhausted max_attempts without
	// producing a compliant sequence.
	ErrGenerationFailed = errors.New("language: generation failed within max attempts")
)
