package language

import (
	"math/rand"
	"regexp"

	"github.com/avast/retry-go/v4"

	"github.com/AGAPIA/VirtualOrganisms/core"
)

// Axis selects which of the two patterns an Oracle call applies to.
type Axis int

const (
	RowAxis Axis = iota
	ColAxis
)

// rowPattern is "4* (2|7) e*"; colPattern is "7* (4|e) 2*" (spec §4.2).
var (
	rowPattern = regexp.MustCompile(`^4*[27]e*$`)
	colPattern = regexp.MustCompile(`^7*[4e]2*$`)
)

// Oracle evaluates row/column language compliance and generates random
// compliant sequences. It is stateless and safe for concurrent read use;
// Generate* methods take an explicit *rand.Rand so callers control seeding
// (random number seeding is an external-driver concern per spec §1).
type Oracle struct{}

// NewOracle returns a ready-to-use Oracle.
func NewOracle() *Oracle {
	return &Oracle{}
}

// span returns the inclusive [first, last] index of non-empty bytes in
// symbols, or ok=false if symbols is entirely empty.
func span(symbols []byte) (first, last int, ok bool) {
	first, last = -1, -1
	for i, b := range symbols {
		if b != core.Empty {
			if first == -1 {
				first = i
			}
			last = i
		}
	}

	return first, last, first != -1
}

// compliant reports whether symbols matches pattern: the occupied span
// (first non-empty .. last non-empty) must contain no gaps, and its
// concatenation must match pattern; cells outside the span may be empty
// freely (spec I1, §4.2).
func compliant(symbols []byte, pattern *regexp.Regexp) bool {
	first, last, ok := span(symbols)
	if !ok {
		return true // a fully empty row/column is trivially compliant
	}
	core := make([]byte, 0, last-first+1)
	for i := first; i <= last; i++ {
		b := symbols[i]
		if b == 0 {
			return false // gap inside the occupied span
		}
		core = append(core, b)
	}

	return pattern.MatchString(string(core))
}

// IsRowCompliant reports whether row matches the row language.
func (o *Oracle) IsRowCompliant(row []byte) bool {
	return compliant(row, rowPattern)
}

// IsColCompliant reports whether col matches the column language.
func (o *Oracle) IsColCompliant(col []byte) bool {
	return compliant(col, colPattern)
}

// IsCompliant dispatches to IsRowCompliant or IsColCompliant by axis.
func (o *Oracle) IsCompliant(axis Axis, symbols []byte) bool {
	if axis == RowAxis {
		return o.IsRowCompliant(symbols)
	}

	return o.IsColCompliant(symbols)
}

// rowPivots/colPivots are the legal pivot characters for each axis.
var (
	rowPivots = []byte{'2', '7'}
	colPivots = []byte{'4', 'e'}
)

// GenerateRow attempts, up to maxAttempts times, to build a random
// row-compliant string anchored at pivotIndex (the index within the
// returned slice holding the pivot character), bounded to at most depth
// total characters and fitting within [0, span). It mirrors the
// original's "try a few random variants" loop via retry-go's Attempts,
// instead of a hand-rolled counting loop.
func (o *Oracle) GenerateRow(rng *rand.Rand, pivotIndex, spanLen, maxAttempts, depth int) ([]byte, error) {
	return generate(rng, rowPivots, rowPattern, pivotIndex, spanLen, maxAttempts, depth)
}

// GenerateCol is the column-axis analogue of GenerateRow.
func (o *Oracle) GenerateCol(rng *rand.Rand, pivotIndex, spanLen, maxAttempts, depth int) ([]byte, error) {
	return generate(rng, colPivots, colPattern, pivotIndex, spanLen, maxAttempts, depth)
}

func generate(rng *rand.Rand, pivots []byte, pattern *regexp.Regexp, pivotIndex, spanLen, maxAttempts, depth int) ([]byte, error) {
	if spanLen <= 0 {
		return nil, ErrEmptySequence
	}
	if pivotIndex < 0 || pivotIndex >= spanLen {
		return nil, ErrEmptySequence
	}

	var result []byte
	err := retry.Do(
		func() error {
			leftMax := pivotIndex
			rightMax := spanLen - pivotIndex - 1
			if depth > 0 && leftMax+rightMax+1 > depth {
				// Cap the arms to respect depth; the left arm takes its
				// share of the budget first, the right arm gets the rest.
				budget := depth - 1
				if budget < 0 {
					budget = 0
				}
				if leftMax > budget {
					leftMax = budget
				}
				budget -= leftMax
				if rightMax > budget {
					rightMax = budget
				}
			}

			leftCount := 0
			if leftMax > 0 {
				leftCount = rng.Intn(leftMax + 1)
			}
			rightCount := 0
			if rightMax > 0 {
				rightCount = rng.Intn(rightMax + 1)
			}
			pivot := pivots[rng.Intn(len(pivots))]

			candidate := make([]byte, 0, spanLen)
			for i := 0; i < pivotIndex-leftCount; i++ {
				candidate = append(candidate, core.Empty)
			}
			leftChar := byte('4')
			if pattern == colPattern {
				leftChar = '7'
			}
			for i := 0; i < leftCount; i++ {
				candidate = append(candidate, leftChar)
			}
			candidate = append(candidate, pivot)
			rightChar := byte('e')
			if pattern == colPattern {
				rightChar = '2'
			}
			for i := 0; i < rightCount; i++ {
				candidate = append(candidate, rightChar)
			}
			for len(candidate) < spanLen {
				candidate = append(candidate, core.Empty)
			}

			if !compliant(candidate, pattern) {
				return ErrGenerationFailed
			}

			result = candidate

			return nil
		},
		retry.Attempts(uint(maxAttempts)),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, ErrGenerationFailed
	}

	return result, nil
}
