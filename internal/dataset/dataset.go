// Package dataset turns preprocessed sessions (an aligned, resampled pattern
// plus 1 Hz recordings) into the CSV tensors the training side consumes:
// overlapping fixed-length windows of normalized per-second deltas, zero
// padding with binary masks, and a manifest tying it all together.
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"
)

// Config controls windowing and normalization.
type Config struct {
	// WindowSize is the number of seconds per slice.
	WindowSize int

	// StepSize is the hop between consecutive windows; half the window
	// gives 50% overlap.
	StepSize int

	// UseElevation includes dz in the tensors, defaulting missing
	// elevations to zero.
	UseElevation bool
}

// DefaultConfig matches the reference dataset: one-hour windows with
// half-hour overlap, elevation included.
func DefaultConfig() Config {
	return Config{WindowSize: 3600, StepSize: 1800, UseElevation: true}
}

// Delta holds one per-axis statistic of the per-second deltas.
type Delta struct {
	Dx float64 `json:"dx"`
	Dy float64 `json:"dy"`
	Dz float64 `json:"dz"`
}

// NormStats is the global normalization parameter set, persisted as
// norm_stats.json next to the emitted CSVs.
type NormStats struct {
	Mean  Delta `json:"mean"`
	Std   Delta `json:"std"`
	Count int   `json:"count"`
}

// varianceFloor keeps a degenerate axis from producing a zero divisor.
const varianceFloor = 1e-12

// fitNormStats computes per-axis population mean and floored standard
// deviation over all collected deltas. Zero samples yield identity stats.
func fitNormStats(dx, dy, dz []float64) NormStats {
	if len(dx) == 0 {
		return NormStats{Std: Delta{Dx: 1, Dy: 1, Dz: 1}}
	}
	meanStd := func(xs []float64) (float64, float64) {
		mu, variance := stat.PopMeanVariance(xs, nil)
		return mu, math.Sqrt(math.Max(variance, varianceFloor))
	}
	var s NormStats
	s.Mean.Dx, s.Std.Dx = meanStd(dx)
	s.Mean.Dy, s.Std.Dy = meanStd(dy)
	s.Mean.Dz, s.Std.Dz = meanStd(dz)
	s.Count = len(dx)
	return s
}

// normalize applies z-score normalization, mapping any value to 0 when the
// axis has no spread.
func normalize(v, mean, std float64) float64 {
	if std <= varianceFloor {
		return 0
	}
	return (v - mean) / std
}

// Save writes the stats as indented JSON.
func (s NormStats) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal norm stats: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
