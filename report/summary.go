// Package report turns a solved discharge vector into things people read:
// a summary, a per-pipe table, a timestamped JSON export and a convergence chart.
//
// Nothing here feeds back into the solver; every function consumes the
// discharge vector exactly as hardycross returned it.
package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/katalvlaran/hydronet/network"
)

// Summary aggregates a result vector.
type Summary struct {
	Pipes            int     `json:"pipes"`
	MaxDischarge     float64 `json:"maxDischarge"`     // max |q|
	TotalFlow        float64 `json:"totalFlow"`        // Σ |q|
	AverageDischarge float64 `json:"averageDischarge"` // Σ |q| / P
	ForwardPipes     int     `json:"forwardPipes"`     // q > 0
	ReversePipes     int     `json:"reversePipes"`     // q < 0
	ZeroPipes        int     `json:"zeroPipes"`        // |q| < ZeroFlow
	Finite           bool    `json:"finite"`           // every q is neither NaN nor ±Inf
}

// ZeroFlow is the |q| below which a pipe counts as carrying no flow.
const ZeroFlow = 1e-3

// Summarize computes the Summary of results. Non-finite entries clear Finite;
// the numeric aggregates then carry NaN/Inf as arithmetic dictates.
func Summarize(results []float64) Summary {
	s := Summary{Pipes: len(results), Finite: true}
	for _, q := range results {
		a := math.Abs(q)
		if math.IsNaN(q) || math.IsInf(q, 0) {
			s.Finite = false
		}
		if a > s.MaxDischarge || math.IsNaN(a) {
			s.MaxDischarge = a
		}
		s.TotalFlow += a
		switch {
		case q > 0:
			s.ForwardPipes++
		case q < 0:
			s.ReversePipes++
		}
		if a < ZeroFlow {
			s.ZeroPipes++
		}
	}
	if s.Pipes > 0 {
		s.AverageDischarge = s.TotalFlow / float64(s.Pipes)
	}

	return s
}

// Flow directions relative to the pipe's reference orientation.
const (
	Forward = "Forward"
	Reverse = "Reverse"
)

// Row is one pipe of the result table.
type Row struct {
	Pipe          int     `json:"pipe"` // 1-based
	Initial       float64 `json:"initial"`
	Final         float64 `json:"final"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"` // 0 when Initial == 0
	Direction     string  `json:"direction"`
	Resistance    float64 `json:"resistance"`
}

// Rows pairs every result with its network inputs. Missing inputs read as 0.
func Rows(n *network.Network, results []float64) []Row {
	rows := make([]Row, len(results))
	for i, q := range results {
		row := Row{
			Pipe:      i + 1,
			Final:     q,
			Direction: Reverse,
		}
		if i < len(n.InitialDischarge) {
			row.Initial = n.InitialDischarge[i]
		}
		if i < len(n.Resistances) {
			row.Resistance = n.Resistances[i]
		}
		row.Change = q - row.Initial
		if row.Initial != 0 {
			row.ChangePercent = row.Change / row.Initial * 100
		}
		if q > 0 {
			row.Direction = Forward
		}
		rows[i] = row
	}

	return rows
}

// WriteTable renders rows as an aligned text table.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Pipe\tInitial\tFinal\tChange\tDirection\tResistance\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%.3f\t%.6f\t%+.3f (%.1f%%)\t%s\t%g\t\n",
			r.Pipe, r.Initial, r.Final, r.Change, r.ChangePercent, r.Direction, r.Resistance)
	}

	return tw.Flush()
}

// WriteSummary renders s as a few human-readable lines.
func WriteSummary(w io.Writer, s Summary) error {
	status := "Success"
	if !s.Finite {
		status = "Failed"
	}
	_, err := fmt.Fprintf(w,
		"Pipes: %d\nMax discharge: %.3f\nTotal absolute flow: %.3f\nAverage discharge: %.3f\n"+
			"Forward flow pipes: %d\nReverse flow pipes: %d\nZero flow pipes: %d\nStatus: %s\n",
		s.Pipes, s.MaxDischarge, s.TotalFlow, s.AverageDischarge,
		s.ForwardPipes, s.ReversePipes, s.ZeroPipes, status)

	return err
}
