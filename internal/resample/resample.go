// Package resample provides the two resampling passes used by the pipeline:
// uniform 1 Hz temporal resampling of a timed recording, and uniform
// arc-length resampling of a local-frame track for feature extraction.
package resample

import (
	"sort"
	"time"

	"github.com/banshee-data/tracks.report/internal/geo"
)

// OneHz resamples a timed recording to exactly one point per second, from
// the first timestamp (truncated to the second) to the last. Positions are
// linearly interpolated between the bracketing source points; elevation is
// interpolated only when both neighbours carry one. Seconds outside the
// timed range clamp to the nearest endpoint. Untimed points are dropped
// first; fewer than two timed points are returned as-is.
func OneHz(points []geo.GeoPoint) []geo.GeoPoint {
	return AtInterval(points, time.Second)
}

// AtInterval is OneHz with a configurable grid spacing. step must be
// positive.
func AtInterval(points []geo.GeoPoint, step time.Duration) []geo.GeoPoint {
	if step <= 0 {
		panic("resample: interval must be positive")
	}
	timed := make([]geo.GeoPoint, 0, len(points))
	for _, p := range points {
		if p.HasTime() {
			timed = append(timed, p)
		}
	}
	if len(timed) < 2 {
		return timed
	}
	sort.SliceStable(timed, func(a, b int) bool {
		return timed[a].Time.Before(*timed[b].Time)
	})

	start := timed[0].Time.Truncate(step)
	end := timed[len(timed)-1].Time.Truncate(step)

	var out []geo.GeoPoint
	i := 0
	for t := start; !t.After(end); t = t.Add(step) {
		for i+1 < len(timed) && timed[i+1].Time.Before(t) {
			i++
		}
		if i+1 < len(timed) && !timed[i].Time.After(t) && !t.After(*timed[i+1].Time) {
			out = append(out, interpolate(timed[i], timed[i+1], t))
			continue
		}
		nearest := timed[0]
		if t.After(*timed[0].Time) {
			nearest = timed[len(timed)-1]
		}
		ts := t
		out = append(out, geo.GeoPoint{Lat: nearest.Lat, Lon: nearest.Lon, Ele: nearest.Ele, Time: &ts})
	}
	return out
}

// interpolate returns the position along a->b at target time. Degenerate
// intervals return a's position.
func interpolate(a, b geo.GeoPoint, target time.Time) geo.GeoPoint {
	total := b.Time.Sub(*a.Time).Seconds()
	ts := target
	if total <= 0 {
		return geo.GeoPoint{Lat: a.Lat, Lon: a.Lon, Ele: a.Ele, Time: &ts}
	}
	u := target.Sub(*a.Time).Seconds() / total
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}
	p := geo.GeoPoint{
		Lat:  a.Lat + u*(b.Lat-a.Lat),
		Lon:  a.Lon + u*(b.Lon-a.Lon),
		Time: &ts,
	}
	if a.HasEle() && b.HasEle() {
		ele := *a.Ele + u*(*b.Ele-*a.Ele)
		p.Ele = &ele
	}
	return p
}

// ByArcLength3D resamples a local-frame track to uniform 3D arc-length
// spacing. The first point is always kept; subsequent points are
// interpolated at every multiple of stepMeters along the track. stepMeters
// must be positive; fewer than two points are returned as-is.
func ByArcLength3D(pts []geo.Point3, stepMeters float64) []geo.Point3 {
	if stepMeters <= 0 {
		panic("resample: step must be positive")
	}
	if len(pts) < 2 {
		return append([]geo.Point3(nil), pts...)
	}

	out := []geo.Point3{pts[0]}
	target := stepMeters
	total := 0.0
	for i := 1; i < len(pts); i++ {
		segLen := geo.Dist3(pts[i-1], pts[i])
		segEnd := total + segLen
		for target <= segEnd {
			u := 0.0
			if segLen > 0 {
				u = (target - total) / segLen
			}
			out = append(out, geo.Lerp3(pts[i-1], pts[i], u))
			target += stepMeters
		}
		total = segEnd
	}
	return out
}
