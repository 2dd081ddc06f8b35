package hardycross_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hydronet/hardycross"
)

// TestHeadLosses checks h = r·q·|q| keeps the sign of q.
func TestHeadLosses(t *testing.T) {
	h := hardycross.HeadLosses([]float64{2, 3, 1}, []float64{3, -2, 0})
	assert.Equal(t, []float64{18, -12, 0}, h)
}

// TestResiduals_Unbalanced evaluates W·h by hand on a two-loop network.
func TestResiduals_Unbalanced(t *testing.T) {
	r := []float64{1, 1, 1}
	q := []float64{3, 1, 2}
	loops := [][]float64{{1, -1, 0}, {0, 1, -1}}

	res := hardycross.Residuals(r, q, loops)
	assert.Equal(t, []float64{8, -3}, res)
}

// TestResiduals_Balanced: a converged network has near-zero loop head loss.
func TestResiduals_Balanced(t *testing.T) {
	q := hardycross.Solve(refResistances, refDischarge, refLoops, 100)
	res := hardycross.Residuals(refResistances, q, refLoops)
	require.Len(t, res, len(refLoops))
	for i, v := range res {
		// head losses are O(10³) here; 1e-3 is a relative 1e-6
		assert.InDelta(t, 0, v, 1e-3, "loop %d", i)
	}

	before := hardycross.Residuals(refResistances, refDischarge, refLoops)
	assert.Greater(t, math.Abs(before[0]), 1.0, "initial guess is unbalanced")
}

// TestResiduals_Degenerate handles empty shapes and ragged rows without panicking.
func TestResiduals_Degenerate(t *testing.T) {
	assert.Empty(t, hardycross.Residuals([]float64{1}, []float64{1}, nil))
	assert.Equal(t, []float64{0, 0}, hardycross.Residuals(nil, nil, [][]float64{{1}, {1}}))

	ragged := hardycross.Residuals([]float64{1, 1}, []float64{2, 5}, [][]float64{{1}})
	require.Len(t, ragged, 1)
	assert.True(t, math.IsNaN(ragged[0]), "missing weight must not read as 0")

	h := hardycross.HeadLosses([]float64{2}, []float64{3, 1})
	assert.Equal(t, 18.0, h[0])
	assert.True(t, math.IsNaN(h[1]), "missing resistance must not read as 0")
}

// TestCorrections matches the hand-computed ΔQ of the two-loop network.
func TestCorrections(t *testing.T) {
	c := hardycross.Corrections([]float64{1, 1, 1}, []float64{3, 1, 2}, [][]float64{{1, -1, 0}, {0, 1, -1}})
	assert.Equal(t, []float64{1, -0.5}, c)
	assert.Equal(t, 1.0, hardycross.MaxCorrection([]float64{1, 1, 1}, []float64{3, 1, 2}, [][]float64{{1, -1, 0}, {0, 1, -1}}))
	assert.Equal(t, 0.0, hardycross.MaxCorrection([]float64{1}, []float64{1}, nil))
}
