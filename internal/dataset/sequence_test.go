package dataset

import (
	"math"
	"testing"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
)

func timedAt(lat, lon float64, sec int64) geo.GeoPoint {
	ts := time.Unix(sec, 0).UTC()
	return geo.GeoPoint{Lat: lat, Lon: lon, Time: &ts}
}

func TestCommonTimeRange(t *testing.T) {
	a := buildTimeIndex([]geo.GeoPoint{timedAt(0, 0, 100), timedAt(0, 0, 200)})
	b := buildTimeIndex([]geo.GeoPoint{timedAt(0, 0, 150), timedAt(0, 0, 250)})

	t0, t1, ok := commonTimeRange(a, b)
	if !ok {
		t.Fatal("expected overlap")
	}
	if t0 != 150 || t1 != 200 {
		t.Errorf("range = [%d, %d], want [150, 200]", t0, t1)
	}
}

func TestCommonTimeRangeDisjoint(t *testing.T) {
	a := buildTimeIndex([]geo.GeoPoint{timedAt(0, 0, 100), timedAt(0, 0, 110)})
	b := buildTimeIndex([]geo.GeoPoint{timedAt(0, 0, 500), timedAt(0, 0, 510)})
	if _, _, ok := commonTimeRange(a, b); ok {
		t.Fatal("disjoint tracks must not report overlap")
	}
	if _, _, ok := commonTimeRange(a, timeIndex{}); ok {
		t.Fatal("empty index must not report overlap")
	}
}

func TestToSequenceCarriesForward(t *testing.T) {
	frame := geo.NewFrame(geo.GeoPoint{Lat: 0, Lon: 0})
	idx := buildTimeIndex([]geo.GeoPoint{
		timedAt(0, 0, 101),
		// second 102 missing
		timedAt(0, 0.001, 103),
	})

	pts, defined := toSequence(idx, frame, 100, 103, true)
	if len(pts) != 4 {
		t.Fatalf("got %d seconds, want 4", len(pts))
	}
	if defined[0] {
		t.Error("second before the first fix should be undefined")
	}
	if !defined[1] || !defined[2] || !defined[3] {
		t.Error("seconds at and after the first fix should be defined")
	}
	// The missing second repeats the previous fix.
	if pts[2] != pts[1] {
		t.Errorf("carry-forward failed: %+v vs %+v", pts[2], pts[1])
	}
}

func TestDeltas(t *testing.T) {
	pts := []geo.Point3{{X: 0}, {X: 3, Y: 1}, {X: 5, Y: 1, Z: 2}}
	dx, dy, dz := deltas(pts)
	if dx[0] != 0 || dy[0] != 0 || dz[0] != 0 {
		t.Error("first delta must be zero")
	}
	if dx[1] != 3 || dy[1] != 1 || dz[1] != 0 {
		t.Errorf("second delta = (%f, %f, %f)", dx[1], dy[1], dz[1])
	}
	if dx[2] != 2 || dz[2] != 2 {
		t.Errorf("third delta = (%f, _, %f)", dx[2], dz[2])
	}
}

func TestFitNormStats(t *testing.T) {
	s := fitNormStats([]float64{1, 3}, []float64{2, 2}, []float64{0, 0})
	if s.Mean.Dx != 2 || math.Abs(s.Std.Dx-1) > 1e-12 {
		t.Errorf("dx stats = (%f, %f), want (2, 1)", s.Mean.Dx, s.Std.Dx)
	}
	if s.Count != 2 {
		t.Errorf("count = %d, want 2", s.Count)
	}
	// Constant axis gets the variance floor, and normalize maps to zero.
	if normalize(5, s.Mean.Dy, s.Std.Dy) == 0 {
		t.Error("dy has spread floor, normalization should not collapse to 0")
	}

	empty := fitNormStats(nil, nil, nil)
	if empty.Std.Dx != 1 || empty.Count != 0 {
		t.Errorf("empty stats = %+v, want identity", empty)
	}
}

func TestNormalizeZeroSpread(t *testing.T) {
	if got := normalize(42, 0, 0); got != 0 {
		t.Errorf("normalize with zero std = %f, want 0", got)
	}
}
