// SPDX-License-Identifier: MIT

package hardycross

import (
	"math"
)

// historyPrealloc caps the initial History capacity for very large budgets.
const historyPrealloc = 1024

// Solve runs the Hardy-Cross iteration with the default tolerance and returns
// the final discharge vector (len == len(initialDischarge)).
//
// The result is a best-effort estimate: no convergence flag is returned and
// no value is sanitized. Use Run for diagnostics, or Corrections/MaxCorrection
// on the returned vector to judge convergence.
//
// maxIterations ≤ 0 performs no pass and returns a copy of initialDischarge.
//
// Complexity: O(K · L · P) time, O(L + P) memory.
func Solve(resistances, initialDischarge []float64, loops [][]float64, maxIterations int) []float64 {
	opts := DefaultOptions()
	opts.MaxIterations = maxIterations

	// DefaultOptions always carries a valid tolerance, so iterate cannot fail.
	return iterate(resistances, initialDischarge, loops, opts).Discharge
}

// Run is Solve with explicit Options and diagnostics.
//
// Steps:
//  1. Validate opts.Tolerance (finite, > 0).
//  2. Copy initialDischarge.
//  3. Repeat up to opts.MaxIterations times:
//     a. compute every loop correction from the current snapshot,
//     b. apply the corrections loop by loop in ascending order,
//     c. stop when max_i |ΔQ[i]| < opts.Tolerance.
//
// Errors:
//   - ErrBadTolerance if opts.Tolerance is NaN, ±Inf or ≤ 0.
func Run(resistances, initialDischarge []float64, loops [][]float64, opts Options) (Result, error) {
	if math.IsNaN(opts.Tolerance) || math.IsInf(opts.Tolerance, 0) || opts.Tolerance <= 0 {
		return Result{}, ErrBadTolerance
	}

	return iterate(resistances, initialDischarge, loops, opts), nil
}

// iterate is the shared kernel of Solve and Run. opts.Tolerance is assumed valid.
func iterate(resistances, initialDischarge []float64, loops [][]float64, opts Options) Result {
	// Work on a private copy; the caller's slice is never written.
	discharge := make([]float64, len(initialDischarge))
	copy(discharge, initialDischarge)

	var (
		res         = Result{Discharge: discharge}
		corrections = make([]float64, len(loops)) // ΔQ per loop, reused across passes
		maxErr      float64                       // max_i |ΔQ[i]| of the current pass
	)
	if opts.KeepHistory && opts.MaxIterations > 0 {
		res.History = make([]float64, 0, min(opts.MaxIterations, historyPrealloc))
	}

	for res.Iterations < opts.MaxIterations {
		// Stage 1: all corrections from the pre-pass snapshot.
		loopCorrections(corrections, resistances, discharge, loops)

		// Stage 2: apply in ascending loop order; shared pipes accumulate.
		for i, row := range loops {
			applyCorrection(discharge, row, corrections[i])
		}

		// Stage 3: convergence test.
		maxErr = maxAbs(corrections)
		res.Iterations++
		res.MaxCorrection = maxErr
		if opts.KeepHistory {
			res.History = append(res.History, maxErr)
		}
		if maxErr < opts.Tolerance {
			res.Converged = true
			break
		}
	}

	if opts.Logger != nil {
		if res.Converged {
			opts.Logger.Debug("hardy-cross converged",
				"iterations", res.Iterations, "max_correction", res.MaxCorrection)
		} else {
			opts.Logger.Debug("hardy-cross iteration budget exhausted",
				"iterations", res.Iterations, "max_correction", res.MaxCorrection,
				"tolerance", opts.Tolerance)
		}
	}

	return res
}

// loopCorrections writes ΔQ[i] for every loop into dst (len(dst) == len(loops)).
// A zero denominator (no flow or no members in the loop) yields ΔQ[i] = 0.
func loopCorrections(dst, resistances, discharge []float64, loops [][]float64) {
	var (
		num, den float64 // Σ r·q·|q|·w and Σ 2·r·|q|·|w|
		q, r, w  float64 // per-pipe scratch
		absQ     float64
	)
	for i, row := range loops {
		num, den = 0, 0
		for j := range discharge {
			w = at(row, j)
			q = discharge[j]
			r = at(resistances, j)
			absQ = math.Abs(q)
			num += r * q * absQ * w
			den += 2 * r * absQ * math.Abs(w)
		}
		if den != 0 {
			dst[i] = num / den
		} else {
			dst[i] = 0
		}
	}
}

// applyCorrection subtracts c·w[j] from every pipe. Non-members have w[j] = 0;
// the product is still formed so that a NaN/Inf correction propagates.
func applyCorrection(discharge, row []float64, c float64) {
	for j := range discharge {
		discharge[j] -= c * at(row, j)
	}
}

// maxAbs returns max |x[i]| (0 for an empty slice), or NaN as soon as one
// element is NaN. NaN never satisfies the tolerance test.
func maxAbs(x []float64) float64 {
	m := 0.0
	for _, v := range x {
		a := math.Abs(v)
		if math.IsNaN(a) {
			return a
		}
		if a > m {
			m = a
		}
	}

	return m
}

// at reads s[j]. An index past the end is a missing value and reads as NaN,
// so a ragged row or a short resistance slice poisons the loop it touches.
func at(s []float64, j int) float64 {
	if j < len(s) {
		return s[j]
	}

	return math.NaN()
}
