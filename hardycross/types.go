// SPDX-License-Identifier: MIT

package hardycross

import (
	"errors"
	"log/slog"
	"strings"
)

// Defaults (single source of truth).
const (
	// DefaultTolerance is the convergence threshold on max_i |ΔQ[i]|.
	DefaultTolerance = 1e-6

	// DefaultMaxIterations bounds the number of correction passes.
	DefaultMaxIterations = 100
)

var (
	// ErrBadTolerance is returned by Run when Options.Tolerance is not finite and > 0.
	ErrBadTolerance = errors.New("hardycross: tolerance must be finite and positive")

	// ErrInvalidInput is matched (errors.Is) by every *ValidationError.
	ErrInvalidInput = errors.New("hardycross: invalid input")
)

// Options configures Run.
//   - MaxIterations: upper bound on correction passes; ≤ 0 means no pass at all.
//   - Tolerance: stop as soon as max_i |ΔQ[i]| < Tolerance.
//   - KeepHistory: record max_i |ΔQ[i]| of every pass in Result.History.
//   - Logger: optional; receives one debug record when the iteration ends.
type Options struct {
	MaxIterations int
	Tolerance     float64
	KeepHistory   bool
	Logger        *slog.Logger
}

// DefaultOptions returns production-safe defaults:
//
//	MaxIterations = 100
//	Tolerance     = 1e-6
//	KeepHistory   = false
//	Logger        = nil
func DefaultOptions() Options {
	return Options{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
	}
}

// Result is the outcome of Run.
type Result struct {
	// Discharge is the final discharge vector, len == len(initialDischarge).
	Discharge []float64

	// Iterations is the number of correction passes actually performed.
	Iterations int

	// Converged reports whether the last pass satisfied the tolerance.
	Converged bool

	// MaxCorrection is max_i |ΔQ[i]| of the last pass (0 if no pass ran).
	MaxCorrection float64

	// History holds MaxCorrection of every pass when Options.KeepHistory is set.
	History []float64
}

// ValidationError carries every violation collected by Check.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "hardycross: invalid input: " + strings.Join(e.Violations, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
