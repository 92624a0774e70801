package geo

import (
	"math"
	"testing"
	"time"
)

func TestFrameProjectOrigin(t *testing.T) {
	origin := GeoPoint{Lat: 43.36, Lon: -5.85}
	f := NewFrame(origin)

	p := f.Project(origin)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("origin projects to (%f, %f), want (0, 0)", p.X, p.Y)
	}
}

func TestFrameProjectNorthOneDegree(t *testing.T) {
	f := NewFrame(GeoPoint{Lat: 0, Lon: 0})

	p := f.Project(GeoPoint{Lat: 1, Lon: 0})
	want := math.Pi / 180.0 * EarthRadiusMeters // ~111 km
	if math.Abs(p.Y-want) > 1e-6 {
		t.Errorf("1 degree north = %f m, want %f m", p.Y, want)
	}
	if p.X != 0 {
		t.Errorf("1 degree north moved east by %f m", p.X)
	}
}

func TestFrameLongitudeScaling(t *testing.T) {
	// At 60 degrees latitude a degree of longitude is half as wide as at the
	// equator.
	f := NewFrame(GeoPoint{Lat: 60, Lon: 0})

	p := f.Project(GeoPoint{Lat: 60, Lon: 1})
	want := math.Pi / 180.0 * math.Cos(60*math.Pi/180.0) * EarthRadiusMeters
	if math.Abs(p.X-want) > 1e-6 {
		t.Errorf("1 degree east at 60N = %f m, want %f m", p.X, want)
	}
}

func TestProjectOntoSegment(t *testing.T) {
	a := LocalPoint{X: 0, Y: 0}
	b := LocalPoint{X: 10, Y: 0}

	tests := []struct {
		name     string
		p        LocalPoint
		wantU    float64
		wantDist float64
	}{
		{"midpoint above", LocalPoint{X: 5, Y: 3}, 0.5, 3},
		{"before start clamps", LocalPoint{X: -4, Y: 0}, 0, 4},
		{"past end clamps", LocalPoint{X: 13, Y: 0}, 1, 3},
		{"on segment", LocalPoint{X: 7, Y: 0}, 0.7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _, dist := ProjectOntoSegment(tt.p, a, b)
			if math.Abs(u-tt.wantU) > 1e-12 {
				t.Errorf("u = %f, want %f", u, tt.wantU)
			}
			if math.Abs(dist-tt.wantDist) > 1e-12 {
				t.Errorf("dist = %f, want %f", dist, tt.wantDist)
			}
		})
	}
}

func TestProjectOntoZeroLengthSegment(t *testing.T) {
	a := LocalPoint{X: 2, Y: 2}
	u, foot, dist := ProjectOntoSegment(LocalPoint{X: 5, Y: 6}, a, a)
	if u != 0 {
		t.Errorf("u = %f, want 0 for degenerate segment", u)
	}
	if foot != a {
		t.Errorf("foot = %+v, want %+v", foot, a)
	}
	if math.Abs(dist-5) > 1e-12 {
		t.Errorf("dist = %f, want 5", dist)
	}
}

func TestGeoPointAccessors(t *testing.T) {
	now := time.Now()
	ele := 120.5
	p := GeoPoint{Lat: 1, Lon: 2, Ele: &ele, Time: &now}
	if !p.HasTime() || !p.HasEle() {
		t.Error("expected time and elevation to be present")
	}
	if p.Elevation(0) != 120.5 {
		t.Errorf("Elevation = %f, want 120.5", p.Elevation(0))
	}

	bare := GeoPoint{Lat: 1, Lon: 2}
	if bare.HasTime() || bare.HasEle() {
		t.Error("expected bare point to have no time or elevation")
	}
	if bare.Elevation(7) != 7 {
		t.Errorf("Elevation fallback = %f, want 7", bare.Elevation(7))
	}
}
