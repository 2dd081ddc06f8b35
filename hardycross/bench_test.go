package hardycross_test

import (
	"testing"

	"github.com/katalvlaran/hydronet/hardycross"
)

// BenchmarkSolve_Reference runs the 12-loop reference network to convergence.
func BenchmarkSolve_Reference(b *testing.B) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = hardycross.Solve(refResistances, refDischarge, refLoops, 100)
	}
}

// BenchmarkSolve_Ladder runs a long ladder of n loops sharing one rung each.
func BenchmarkSolve_Ladder(b *testing.B) {
	const n = 200
	r, q, loops := ladder(n)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = hardycross.Solve(r, q, loops, 50)
	}
}

// BenchmarkValidate_Reference measures the validator on the reference network.
func BenchmarkValidate_Reference(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = hardycross.Validate(refResistances, refDischarge, refLoops, 100)
	}
}

// ladder builds n loops over 2n+1 pipes: loop i uses rungs i, i+1 and rail i.
func ladder(n int) ([]float64, []float64, [][]float64) {
	pipes := 2*n + 1
	r := make([]float64, pipes)
	q := make([]float64, pipes)
	for j := range r {
		r[j] = float64(1 + j%3) // predictable 1,2,3 pattern
		q[j] = float64(5 + j%7)
	}
	loops := make([][]float64, n)
	for i := range loops {
		row := make([]float64, pipes)
		row[i] = 1
		row[i+1] = -1
		row[n+1+i] = 1
		loops[i] = row
	}

	return r, q, loops
}
