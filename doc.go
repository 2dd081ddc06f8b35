// Package hydronet computes steady-state discharges in looped pipe networks
// with the Hardy-Cross method.
//
// 🚀 What is hydronet?
//
//	A small toolkit around one numerical kernel:
//		• hardycross: the iterative loop-correction solver, validator and loop algebra
//		• network:    the editable network description plus its YAML/JSON codec
//		• report:     tables, summaries, JSON exports and convergence charts
//
// The solver is pure: it reads resistances r, an initial discharge guess q
// and a loop incidence matrix W (entries -1, 0, 1) and returns a corrected
// discharge vector. For every loop i it computes
//
//	ΔQ[i] = Σ_j r[j]·q[j]·|q[j]|·W[i][j] / Σ_j 2·r[j]·|q[j]|·|W[i][j]|
//
// from one snapshot of q, subtracts ΔQ[i]·W[i][j] from every pipe, and stops
// once max |ΔQ| drops below the tolerance.
//
// Quick ASCII example (two pipes forming one loop):
//
//	   ┌──── r=1 ────┐
//	 A │             │ B
//	   └──── r=2 ────┘
//
//	q = [3, 1], W = [[1, -1]]  →  q ≈ [2.3431, 1.6569]
//
// The cmd/hydronet binary wraps the packages in a CLI and an HTTP API:
//
//	go run ./cmd/hydronet solve -f net.yaml -plot convergence.png
package hydronet
