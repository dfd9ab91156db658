package core

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Sentinel errors for core data-model operations.
var (
	// ErrInvalidPosition indicates out-of-bounds coordinates or a position
	// with no corresponding source in the map.
	ErrInvalidPosition = errors.New("core: invalid position")

	// ErrPositionOccupied indicates an attempted write/paste on a non-free cell.
	ErrPositionOccupied = errors.New("core: position occupied")

	// ErrDuplicateSource indicates add_source for a position already mapped.
	ErrDuplicateSource = errors.New("core: duplicate source")

	// ErrSourceNotFound indicates a referenced position has no SourceInfo.
	ErrSourceNotFound = errors.New("core: source not found")

	// ErrCapacityExceeded indicates used_power or buffered_data would leave
	// its valid range.
	ErrCapacityExceeded = errors.New("core: capacity exceeded")

	// ErrLanguageViolation indicates a row or column failed the language
	// oracle after a mutation.
	ErrLanguageViolation = errors.New("core: language violation")
)

// Invariant names I1-I8, used when reporting StateCorruption.
const (
	InvariantLanguageCompliance = "I1"
	InvariantLinkConsistency    = "I2"
	InvariantDistanceToRoot     = "I3"
	InvariantLinkSymmetry       = "I4"
	InvariantUsedPower          = "I5"
	InvariantMirrorRefcount     = "I6"
	InvariantSourcePartition    = "I7"
	InvariantBufferBounds       = "I8"
)

// StateCorruption reports one or more fatal invariant violations. It is
// never recovered locally: the detecting component returns it to its
// caller.
type StateCorruption struct {
	Component string // component that detected the violation, e.g. "board", "psm"
	Invariant string // one of the Invariant* constants
	Position  Position
	Detail    string
}

func (s *StateCorruption) Error() string {
	return fmt.Sprintf("core: state corruption in %s: invariant %s violated at %s: %s",
		s.Component, s.Invariant, s.Position, s.Detail)
}

// NewStateCorruption builds a single StateCorruption error.
func NewStateCorruption(component, invariant string, pos Position, detail string) error {
	return &StateCorruption{Component: component, Invariant: invariant, Position: pos, Detail: detail}
}

// CombineViolations aggregates zero or more invariant violations detected in
// a single sanity pass into one error via multierr, so callers see every
// failure found rather than only the first. Returns nil if violations is empty.
func CombineViolations(violations ...error) error {
	var combined error
	for _, v := range violations {
		if v != nil {
			combined = multierr.Append(combined, v)
		}
	}

	return combined
}

// Epsilon centralizes the floating-point comparison tolerance used by every
// sanity check in this module (spec §9: "Floating-point equality uses a
// small epsilon").
const Epsilon = 1e-5

// FloatEqual reports whether a and b are equal within Epsilon.
func FloatEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}

	return d <= Epsilon
}
