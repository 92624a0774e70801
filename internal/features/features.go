// Package features extracts per-segment geometric features from resampled
// tracks and normalizes them for model training.
package features

import (
	"math"

	"github.com/banshee-data/tracks.report/internal/geo"
)

// slopeEpsilon keeps flat segments from dividing by zero.
const slopeEpsilon = 1e-6

// SegmentFeature holds the geometric features of one track segment:
// horizontal distance, elevation change, and slope.
type SegmentFeature struct {
	Dh    float64 `json:"dh"`
	Dz    float64 `json:"dz"`
	Slope float64 `json:"slope"`
}

// Compute returns one feature per segment between consecutive local-frame
// points, so len(result) == len(pts)-1. Fewer than two points yield nil.
func Compute(pts []geo.Point3) []SegmentFeature {
	if len(pts) < 2 {
		return nil
	}
	out := make([]SegmentFeature, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		de := pts[i].X - pts[i-1].X
		dn := pts[i].Y - pts[i-1].Y
		dh := math.Hypot(de, dn)
		dz := pts[i].Z - pts[i-1].Z
		out = append(out, SegmentFeature{
			Dh:    dh,
			Dz:    dz,
			Slope: dz / (dh + slopeEpsilon),
		})
	}
	return out
}

// Labels are the route-level training targets: total horizontal distance and
// the positive and negative elevation gains.
type Labels struct {
	TotalDistance float64
	AscentMeters  float64
	DescentMeters float64
}

// ComputeLabels aggregates segment features into route labels.
func ComputeLabels(feats []SegmentFeature) Labels {
	var l Labels
	for _, f := range feats {
		l.TotalDistance += f.Dh
		if f.Dz > 0 {
			l.AscentMeters += f.Dz
		} else {
			l.DescentMeters += -f.Dz
		}
	}
	return l
}
