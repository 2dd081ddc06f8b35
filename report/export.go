package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/hydronet/network"
)

// fileNamePrefix and fileNameDate define FileName's layout.
const (
	fileNamePrefix = "hardy-cross-results-"
	fileNameDate   = "2006-01-02"
)

// ErrNoResults is returned when an export is requested without a result vector.
var ErrNoResults = errors.New("report: no results to export")

// Discharges is a discharge vector whose JSON form writes null for NaN and ±Inf
// (encoding/json rejects non-finite numbers).
type Discharges []float64

// MarshalJSON implements json.Marshaler.
func (d Discharges) MarshalJSON() ([]byte, error) {
	out := make([]*float64, len(d))
	for i := range d {
		out[i] = Nullable(d[i])
	}

	return json.Marshal(out)
}

// Nullable returns &v for finite v and nil otherwise.
func Nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}

	return &v
}

// MarshalJSON writes null for non-finite aggregates.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Pipes            int      `json:"pipes"`
		MaxDischarge     *float64 `json:"maxDischarge"`
		TotalFlow        *float64 `json:"totalFlow"`
		AverageDischarge *float64 `json:"averageDischarge"`
		ForwardPipes     int      `json:"forwardPipes"`
		ReversePipes     int      `json:"reversePipes"`
		ZeroPipes        int      `json:"zeroPipes"`
		Finite           bool     `json:"finite"`
	}{
		Pipes:            s.Pipes,
		MaxDischarge:     Nullable(s.MaxDischarge),
		TotalFlow:        Nullable(s.TotalFlow),
		AverageDischarge: Nullable(s.AverageDischarge),
		ForwardPipes:     s.ForwardPipes,
		ReversePipes:     s.ReversePipes,
		ZeroPipes:        s.ZeroPipes,
		Finite:           s.Finite,
	})
}

// Input is the part of a network recorded alongside exported results.
type Input struct {
	Resistances      []float64 `json:"resistances"`
	InitialDischarge []float64 `json:"initialDischarge"`
	Iterations       int       `json:"iterations"`
}

// Export is the document written by WriteFile.
type Export struct {
	ID        string     `json:"id"`
	Network   string     `json:"network,omitempty"`
	Input     Input      `json:"input"`
	Results   Discharges `json:"results"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewExport captures n's inputs and results at time now (UTC).
// The input slices are copied.
func NewExport(n *network.Network, results []float64, now time.Time) (*Export, error) {
	if results == nil {
		return nil, ErrNoResults
	}

	return &Export{
		ID:      uuid.NewString(),
		Network: n.Name,
		Input: Input{
			Resistances:      append([]float64{}, n.Resistances...),
			InitialDischarge: append([]float64{}, n.InitialDischarge...),
			Iterations:       n.Iterations,
		},
		Results:   append(Discharges{}, results...),
		Timestamp: now.UTC(),
	}, nil
}

// FileName returns "hardy-cross-results-YYYY-MM-DD.json" for t in UTC.
func FileName(t time.Time) string {
	return fileNamePrefix + t.UTC().Format(fileNameDate) + ".json"
}

// Encode writes e as indented JSON.
func (e *Export) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("report: encode export: %w", err)
	}

	return nil
}

// WriteFile writes e into dir under FileName(e.Timestamp) and returns the path.
// An existing file of the same name is replaced.
func WriteFile(dir string, e *Export) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, FileName(e.Timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	if err = e.Encode(f); err != nil {
		_ = f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", fmt.Errorf("report: close %s: %w", path, err)
	}

	return path, nil
}
