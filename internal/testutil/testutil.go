// Package testutil provides shared track fixtures for tests.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"testing"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
	"github.com/banshee-data/tracks.report/internal/gpx"
)

// Track builds a straight eastbound track of n points starting at (lat, lon)
// with dLon degrees between points. A zero t0 leaves the points untimed;
// otherwise points are stamped step apart starting at t0.
func Track(lat, lon, dLon float64, n int, t0 time.Time, step time.Duration) []geo.GeoPoint {
	pts := make([]geo.GeoPoint, n)
	for i := range pts {
		pts[i] = geo.GeoPoint{Lat: lat, Lon: lon + dLon*float64(i)}
		if !t0.IsZero() {
			ts := t0.Add(time.Duration(i) * step)
			pts[i].Time = &ts
		}
	}
	return pts
}

// WithElevation returns a copy of pts with a linear elevation profile from
// start to end metres.
func WithElevation(pts []geo.GeoPoint, start, end float64) []geo.GeoPoint {
	out := make([]geo.GeoPoint, len(pts))
	copy(out, pts)
	for i := range out {
		u := 0.0
		if len(out) > 1 {
			u = float64(i) / float64(len(out)-1)
		}
		ele := start + u*(end-start)
		out[i].Ele = &ele
	}
	return out
}

// WriteTrackGPX writes pts as a GPX file, failing the test on error.
func WriteTrackGPX(t *testing.T, path, name string, pts []geo.GeoPoint) {
	t.Helper()
	if err := gpx.WritePoints(path, name, pts); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
