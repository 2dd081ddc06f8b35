// SPDX-License-Identifier: MIT

// Package hardycross balances flows in a closed pipe network with the
// Hardy-Cross loop correction method.
//
// 🚀 What is Hardy-Cross?
//
//	Every pipe j carries a signed discharge q[j] and loses head
//	h[j] = r[j]·q[j]·|q[j]| across its resistance r[j]. Around every closed
//	loop the signed head losses must sum to zero. Starting from a guess that
//	already satisfies continuity at the junctions, each loop i receives the
//	correction
//
//	    ΔQ[i] = Σ r·q·|q|·w[i][·]  /  Σ 2·r·|q|·|w[i][·]|
//
//	which is subtracted from every member pipe (weighted by orientation).
//	Because a loop correction adds and removes the same flow at each junction,
//	continuity is preserved while the loop residuals shrink.
//
// ✨ Key features:
//   - Solve: the plain contract (resistances, discharge, loop matrix, bound) → discharge.
//   - Run: same iteration with diagnostics (iterations used, convergence, history).
//   - Validate / Check: structural and value checks collected as human-readable violations.
//   - Corrections / Residuals: re-derive convergence from any discharge vector.
//
// Loop matrix:
//
//	loops[i][j] ∈ {-1, 0, 1}: +1 when pipe j's reference direction agrees with the
//	traversal direction of loop i, -1 when it opposes it, 0 when pipe j is not in loop i.
//
//	    ┌──── 0 ────┐
//	    │           │        loops = [[1, 1]] with q = [10, -10]:
//	    └──── 1 ────┘        both pipes in one loop, already balanced.
//
// Determinism:
//
//	All corrections of an iteration are computed from the discharge snapshot taken
//	at the start of that iteration, then applied loop by loop in ascending order.
//	The input slices are never mutated; every call works on its own copy, so
//	concurrent calls need no coordination.
//
// Complexity:
//
//	Time:   O(K · L · P) for K iterations, L loops and P pipes.
//	Memory: O(L + P).
//
// Usage:
//
//	q := hardycross.Solve(resistances, guess, loops, 100)
//
//	ok, violations := hardycross.Validate(resistances, guess, loops, 100)
//	if !ok {
//		// report violations; the solver may still be run (best effort)
//	}
package hardycross
