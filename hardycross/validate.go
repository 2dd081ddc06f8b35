// SPDX-License-Identifier: MIT
// Package hardycross - input validation shared by the CLI, the HTTP surface
// and any caller that wants to gate Solve.
//
// Design principles:
//   - Deterministic, side-effect free; the same inputs yield the same
//     violations in the same order.
//   - Not fail-fast: every check runs and contributes at most one message,
//     except the loop-matrix scan, which reports at most one cell per row.
//   - No panics on user input; ragged or empty slices are tolerated.

package hardycross

import "fmt"

// Violation messages. Cell violations are formatted with msgBadWeightFmt.
const (
	msgLengthMismatch  = "resistances and initial discharge arrays must have the same length"
	msgColumnMismatch  = "weight matrix columns must match the number of pipes"
	msgNonPositiveR    = "all resistance values must be positive"
	msgNonPositiveIter = "number of iterations must be positive"
	msgBadWeightFmt    = "weight matrix value at [%d][%d] must be -1, 0, or 1"
)

// Validate checks the inputs of Solve and returns (valid, violations).
//
// Checks, in order:
//  1. len(resistances) == len(initialDischarge).
//  2. When loops is non-empty, len(loops[0]) == len(resistances)
//     (only the first row is taken as the matrix width).
//  3. Every resistance > 0 (one aggregate message).
//  4. iterations > 0.
//  5. Every loops[i][j] ∈ {-1, 0, 1}; the first offending cell of a row is
//     reported and the scan moves on to the next row.
//
// valid is true iff no violation was collected.
func Validate(resistances, initialDischarge []float64, loops [][]float64, iterations int) (bool, []string) {
	violations := make([]string, 0)

	// Stage 1: shapes.
	if len(resistances) != len(initialDischarge) {
		violations = append(violations, msgLengthMismatch)
	}
	if len(loops) > 0 && len(loops[0]) != len(resistances) {
		violations = append(violations, msgColumnMismatch)
	}

	// Stage 2: values.
	for _, r := range resistances {
		if r <= 0 {
			violations = append(violations, msgNonPositiveR)
			break
		}
	}
	if iterations <= 0 {
		violations = append(violations, msgNonPositiveIter)
	}

	// Stage 3: loop matrix, first bad cell per row.
	// TODO(validate): report every offending cell once callers no longer rely on one message per row.
	for i, row := range loops {
		for j, w := range row {
			if !isWeight(w) {
				violations = append(violations, fmt.Sprintf(msgBadWeightFmt, i, j))
				break
			}
		}
	}

	return len(violations) == 0, violations
}

// Check is Validate in error form: nil when valid, otherwise a
// *ValidationError matching ErrInvalidInput.
func Check(resistances, initialDischarge []float64, loops [][]float64, iterations int) error {
	if ok, violations := Validate(resistances, initialDischarge, loops, iterations); !ok {
		return &ValidationError{Violations: violations}
	}

	return nil
}

// isWeight reports whether w is a legal orientation entry.
func isWeight(w float64) bool {
	return w == -1 || w == 0 || w == 1
}
