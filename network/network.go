// Package network holds the editable description of a pipe network
// (resistances, initial discharge guess, loop matrix, iteration bound) and
// hands it explicitly to the hardycross solver.
//
// A Network is a plain value: callers own it, edit it through the Set*
// methods and pass it (or a Clone) wherever it is needed. Nothing is global.
package network

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/hydronet/hardycross"
)

var (
	// ErrOutOfRange is returned when a pipe or loop index is outside the network.
	ErrOutOfRange = errors.New("network: index out of range")

	// ErrInvalidWeight is returned by SetWeight for values other than -1, 0, 1.
	ErrInvalidWeight = errors.New("network: weight must be -1, 0, or 1")
)

// DefaultIterations is the iteration bound of a fresh or reset network.
const DefaultIterations = hardycross.DefaultMaxIterations

// Network describes one pipe network. Pipes are identified by index 0..P-1
// across Resistances and InitialDischarge; loops by row index of Loops.
type Network struct {
	Name             string      `json:"name,omitempty" yaml:"name,omitempty"`
	Resistances      []float64   `json:"resistances" yaml:"resistances"`
	InitialDischarge []float64   `json:"initialDischarge" yaml:"initial_discharge"`
	Loops            [][]float64 `json:"weight" yaml:"weight"`
	Iterations       int         `json:"iterations" yaml:"iterations"`
}

// Reference returns a fresh copy of the 23-pipe, 12-loop reference network.
// Loops are traversed clockwise: +1 for a pipe whose assumed flow follows the
// loop, -1 against it, 0 when the pipe is not part of the loop.
func Reference() *Network {
	return &Network{
		Name:             "reference",
		Resistances:      append([]float64(nil), referenceResistances...),
		InitialDischarge: append([]float64(nil), referenceDischarge...),
		Loops:            cloneMatrix(referenceLoops),
		Iterations:       DefaultIterations,
	}
}

var (
	referenceResistances = []float64{2, 3, 2, 3, 3, 3, 2, 2, 3, 2, 3, 2, 2, 2, 3, 2, 3, 3, 3, 3, 2, 3, 2}
	referenceDischarge   = []float64{5, 35, 40, 5, 23, 40, 10, 20, 2, 22, 30, 30, 10, 10, 10, 20, 20, 30, 30, 20, 40, 30, 30}
	referenceLoops       = [][]float64{
		{1, -1, 0, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, -1, 0, 0, -1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0, 0, -1, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, -1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1, 1, -1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, -1, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, -1, -1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1, -1, 0, 1, -1},
	}
)

// Clone returns a deep copy; edits to the copy never reach n.
func (n *Network) Clone() *Network {
	return &Network{
		Name:             n.Name,
		Resistances:      append([]float64(nil), n.Resistances...),
		InitialDischarge: append([]float64(nil), n.InitialDischarge...),
		Loops:            cloneMatrix(n.Loops),
		Iterations:       n.Iterations,
	}
}

// Pipes returns the number of pipes (length of the discharge vector).
func (n *Network) Pipes() int { return len(n.InitialDischarge) }

// LoopCount returns the number of loops (rows of the loop matrix).
func (n *Network) LoopCount() int { return len(n.Loops) }

// SetResistance sets the resistance of pipe i.
func (n *Network) SetResistance(i int, v float64) error {
	if i < 0 || i >= len(n.Resistances) {
		return fmt.Errorf("SetResistance(%d): %w", i, ErrOutOfRange)
	}
	n.Resistances[i] = v

	return nil
}

// SetDischarge sets the initial discharge guess of pipe i.
func (n *Network) SetDischarge(i int, v float64) error {
	if i < 0 || i >= len(n.InitialDischarge) {
		return fmt.Errorf("SetDischarge(%d): %w", i, ErrOutOfRange)
	}
	n.InitialDischarge[i] = v

	return nil
}

// SetWeight sets the orientation of pipe in loop. Only -1, 0 and 1 are accepted.
func (n *Network) SetWeight(loop, pipe int, v float64) error {
	if loop < 0 || loop >= len(n.Loops) || pipe < 0 || pipe >= len(n.Loops[loop]) {
		return fmt.Errorf("SetWeight(%d, %d): %w", loop, pipe, ErrOutOfRange)
	}
	if v != -1 && v != 0 && v != 1 {
		return fmt.Errorf("SetWeight(%d, %d) = %g: %w", loop, pipe, v, ErrInvalidWeight)
	}
	n.Loops[loop][pipe] = v

	return nil
}

// SetIterations sets the iteration bound. Non-positive values are stored as
// given and reported by Validate.
func (n *Network) SetIterations(k int) {
	n.Iterations = k
}

// Reset restores the reference resistances, initial discharge and iteration
// bound. The loop matrix is kept as edited.
func (n *Network) Reset() {
	n.Resistances = append([]float64(nil), referenceResistances...)
	n.InitialDischarge = append([]float64(nil), referenceDischarge...)
	n.Iterations = DefaultIterations
}

// Validate runs hardycross.Validate on the network.
func (n *Network) Validate() (bool, []string) {
	return hardycross.Validate(n.Resistances, n.InitialDischarge, n.Loops, n.Iterations)
}

// Check runs hardycross.Check on the network.
func (n *Network) Check() error {
	return hardycross.Check(n.Resistances, n.InitialDischarge, n.Loops, n.Iterations)
}

// Solve runs the solver with opts, taking MaxIterations from the network.
// The network itself is not modified.
func (n *Network) Solve(opts hardycross.Options) (hardycross.Result, error) {
	opts.MaxIterations = n.Iterations

	return hardycross.Run(n.Resistances, n.InitialDischarge, n.Loops, opts)
}

func cloneMatrix(m [][]float64) [][]float64 {
	if m == nil {
		return nil
	}
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}

	return out
}
