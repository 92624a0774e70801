package dataset

import (
	"github.com/banshee-data/tracks.report/internal/geo"
)

// timeIndex maps epoch seconds to the fix recorded at that second. Built
// from 1 Hz resampled tracks, so collisions only happen on malformed input
// (last write wins, matching read order).
type timeIndex map[int64]geo.GeoPoint

func buildTimeIndex(pts []geo.GeoPoint) timeIndex {
	idx := make(timeIndex, len(pts))
	for _, p := range pts {
		if p.HasTime() {
			idx[p.Time.Unix()] = p
		}
	}
	return idx
}

// span returns the index's first and last second.
func (idx timeIndex) span() (t0, t1 int64, ok bool) {
	if len(idx) == 0 {
		return 0, 0, false
	}
	first := true
	for t := range idx {
		if first {
			t0, t1, first = t, t, false
			continue
		}
		if t < t0 {
			t0 = t
		}
		if t > t1 {
			t1 = t
		}
	}
	return t0, t1, true
}

// commonTimeRange returns the overlap of two indexed tracks, requiring at
// least one full second of shared time.
func commonTimeRange(a, b timeIndex) (t0, t1 int64, ok bool) {
	a0, a1, ok := a.span()
	if !ok {
		return 0, 0, false
	}
	b0, b1, ok := b.span()
	if !ok {
		return 0, 0, false
	}
	t0, t1 = max64(a0, b0), min64(a1, b1)
	return t0, t1, t1-t0 >= 1
}

// toSequence converts an indexed track into a per-second local-frame
// sequence over [t0, t1]. Seconds with no fix carry the previous fix
// forward; seconds before the first fix are marked undefined.
func toSequence(idx timeIndex, frame geo.Frame, t0, t1 int64, useZ bool) (pts []geo.Point3, defined []bool) {
	n := int(t1-t0) + 1
	pts = make([]geo.Point3, n)
	defined = make([]bool, n)

	var last *geo.GeoPoint
	for i := 0; i < n; i++ {
		p, ok := idx[t0+int64(i)]
		if !ok {
			if last == nil {
				continue
			}
			p = *last
		} else {
			last = &p
		}
		pt := frame.ToPoint3(p, 0)
		if !useZ {
			pt.Z = 0
		}
		pts[i] = pt
		defined[i] = true
	}
	return pts, defined
}

// deltas returns consecutive differences per axis, with zeroes at index 0.
func deltas(pts []geo.Point3) (dx, dy, dz []float64) {
	n := len(pts)
	dx = make([]float64, n)
	dy = make([]float64, n)
	dz = make([]float64, n)
	for i := 1; i < n; i++ {
		dx[i] = pts[i].X - pts[i-1].X
		dy[i] = pts[i].Y - pts[i-1].Y
		dz[i] = pts[i].Z - pts[i-1].Z
	}
	return dx, dy, dz
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
