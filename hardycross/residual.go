// SPDX-License-Identifier: MIT

package hardycross

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Corrections returns ΔQ[i] for every loop evaluated at the discharge vector q,
// i.e. one Stage-1 pass without applying anything. len(result) == len(loops).
//
// Callers use it on the output of Solve to re-derive convergence:
//
//	q := Solve(r, q0, loops, n)
//	converged := MaxCorrection(r, q, loops) < DefaultTolerance
func Corrections(resistances, discharge []float64, loops [][]float64) []float64 {
	out := make([]float64, len(loops))
	loopCorrections(out, resistances, discharge, loops)

	return out
}

// MaxCorrection returns max_i |ΔQ[i]| at q (0 when there are no loops, NaN if any ΔQ is NaN).
func MaxCorrection(resistances, discharge []float64, loops [][]float64) float64 {
	return maxAbs(Corrections(resistances, discharge, loops))
}

// HeadLosses returns h[j] = r[j]·q[j]·|q[j]| for every pipe (len == len(discharge)).
func HeadLosses(resistances, discharge []float64) []float64 {
	h := make([]float64, len(discharge))
	for j, q := range discharge {
		h[j] = at(resistances, j) * q * math.Abs(q)
	}

	return h
}

// Residuals returns the signed head-loss sum of every loop, W·h, where W is the
// L×P loop matrix and h = HeadLosses(resistances, discharge). A balanced
// network has every residual ≈ 0.
//
// Missing entries (ragged rows, short resistances) read as NaN.
// With no pipes every residual is 0; with no loops the result is empty.
//
// Complexity: O(L · P).
func Residuals(resistances, discharge []float64, loops [][]float64) []float64 {
	nLoops, nPipes := len(loops), len(discharge)
	if nLoops == 0 || nPipes == 0 {
		return make([]float64, nLoops)
	}

	// Dense L×P copy of the loop matrix (gonum rejects zero-sized shapes, guarded above).
	w := mat.NewDense(nLoops, nPipes, nil)
	for i, row := range loops {
		for j := 0; j < nPipes; j++ {
			w.Set(i, j, at(row, j))
		}
	}
	h := mat.NewVecDense(nPipes, HeadLosses(resistances, discharge))

	var out mat.VecDense
	out.MulVec(w, h)

	return mat.Col(nil, 0, &out)
}
