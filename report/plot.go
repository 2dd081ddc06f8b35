package report

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoHistory is returned when there is no finite correction to plot.
var ErrNoHistory = errors.New("report: empty convergence history")

// Chart geometry.
const (
	chartWidth  = 6 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// WriteConvergencePlot renders history (max |ΔQ| per pass, as kept by
// hardycross.Run with KeepHistory) as a PNG line chart on a log scale.
// tolerance > 0 adds a dashed threshold line.
//
// Zero entries are drawn at a floor three decades below the smallest positive
// value; NaN and ±Inf entries are skipped.
func WriteConvergencePlot(w io.Writer, history []float64, tolerance float64) error {
	pts, err := convergencePoints(history)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Hardy-Cross convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "max |ΔQ|"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("report: convergence line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	p.Add(line)
	p.Legend.Add("max |ΔQ|", line)

	if tolerance > 0 && !math.IsInf(tolerance, 0) {
		last := pts[len(pts)-1].X
		threshold, err := plotter.NewLine(plotter.XYs{{X: 1, Y: tolerance}, {X: math.Max(last, 2), Y: tolerance}})
		if err != nil {
			return fmt.Errorf("report: threshold line: %w", err)
		}
		threshold.LineStyle.Color = color.RGBA{R: 220, G: 38, B: 38, A: 255}
		threshold.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(threshold)
		p.Legend.Add("tolerance", threshold)
	}

	// A flat series would be padded by ±1, which a log axis cannot take.
	if p.Y.Min == p.Y.Max {
		p.Y.Min /= 10
		p.Y.Max *= 10
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("report: render chart: %w", err)
	}
	if _, err = wt.WriteTo(w); err != nil {
		return fmt.Errorf("report: write chart: %w", err)
	}

	return nil
}

// convergencePoints maps history to (iteration, value) pairs suitable for a log axis.
func convergencePoints(history []float64) (plotter.XYs, error) {
	minPos := math.Inf(1)
	for _, v := range history {
		if v > 0 && !math.IsInf(v, 0) && v < minPos {
			minPos = v
		}
	}

	pts := make(plotter.XYs, 0, len(history))
	for i, v := range history {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			continue
		case v <= 0:
			if math.IsInf(minPos, 1) {
				continue // nothing positive to anchor a floor on
			}
			v = minPos / 1e3
		}
		pts = append(pts, plotter.XY{X: float64(i + 1), Y: v})
	}
	if len(pts) == 0 {
		return nil, ErrNoHistory
	}

	return pts, nil
}
