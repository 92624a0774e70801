// Package geo provides geodetic point types and the local planar frame used
// by the track alignment pipeline.
//
// Routes handled by the pipeline span at most a few kilometres, so a simple
// equirectangular projection anchored at a per-route origin is accurate
// enough; it is not suitable for multi-degree extents.
package geo

import (
	"math"
	"time"
)

// EarthRadiusMeters is the mean Earth radius used by the local projection.
const EarthRadiusMeters = 6371000.0

// GeoPoint is a single GPS fix. Ele and Time are nil when the source track
// did not carry them (pattern tracks typically have no reliable timestamps).
type GeoPoint struct {
	Lat  float64
	Lon  float64
	Ele  *float64
	Time *time.Time
}

// HasTime reports whether the point carries a timestamp.
func (p GeoPoint) HasTime() bool { return p.Time != nil }

// HasEle reports whether the point carries an elevation.
func (p GeoPoint) HasEle() bool { return p.Ele != nil }

// Elevation returns the point's elevation, or fallback when it has none.
func (p GeoPoint) Elevation(fallback float64) float64 {
	if p.Ele != nil {
		return *p.Ele
	}
	return fallback
}

// LocalPoint is a planar (x, y) position in metres, valid only relative to
// the Frame that produced it.
type LocalPoint struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance between two local points.
func Dist(a, b LocalPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Frame is an equirectangular local projection anchored at an origin fix.
// Longitude differences are scaled by the cosine of the origin latitude so
// east-west distances come out in metres.
type Frame struct {
	originLat float64
	originLon float64
	cosLat    float64
}

// NewFrame returns a local frame anchored at origin.
func NewFrame(origin GeoPoint) Frame {
	return Frame{
		originLat: origin.Lat,
		originLon: origin.Lon,
		cosLat:    math.Cos(origin.Lat * math.Pi / 180.0),
	}
}

// Project maps a geodetic point into the frame's planar coordinates.
func (f Frame) Project(p GeoPoint) LocalPoint {
	return LocalPoint{
		X: (p.Lon - f.originLon) * math.Pi / 180.0 * f.cosLat * EarthRadiusMeters,
		Y: (p.Lat - f.originLat) * math.Pi / 180.0 * EarthRadiusMeters,
	}
}

// ProjectOntoSegment projects p onto the segment a-b. It returns the clamped
// fraction u in [0,1] along the segment, the foot point, and the residual
// distance from p to the foot. A zero-length segment projects to a with u=0.
func ProjectOntoSegment(p, a, b LocalPoint) (u float64, foot LocalPoint, dist float64) {
	vx, vy := b.X-a.X, b.Y-a.Y
	wx, wy := p.X-a.X, p.Y-a.Y
	vv := vx*vx + vy*vy
	if vv == 0 {
		return 0, a, math.Hypot(wx, wy)
	}
	u = (wx*vx + wy*vy) / vv
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	foot = LocalPoint{X: a.X + u*vx, Y: a.Y + u*vy}
	return u, foot, math.Hypot(p.X-foot.X, p.Y-foot.Y)
}
