package align

import (
	"github.com/banshee-data/tracks.report/internal/geo"
)

// ProjectionSample is one recording point projected onto the path: arc-length
// along the route, the point's timestamp as epoch seconds, and the residual
// perpendicular distance. Samples arrive in recording (time) order, which is
// not necessarily arc-length order.
type ProjectionSample struct {
	S    float64
	T    float64
	Dist float64
}

// projectPoint finds the best segment for lp inside the window
// [cursor-SearchBack, cursor+SearchAhead] and returns the arc-length, the
// residual distance, and the winning segment index (the next cursor).
//
// The bounded window makes each point O(window) instead of O(path), at the
// cost of never recovering from a backward excursion larger than SearchBack
// segments. Widening the window is a configuration trade-off, not a fix.
func (p *Path) projectPoint(lp geo.LocalPoint, cursor int, cfg Config) (s, dist float64, next int) {
	lo := cursor - cfg.SearchBack
	if lo < 0 {
		lo = 0
	}
	hi := cursor + cfg.SearchAhead
	if last := p.NumSegments() - 1; hi > last {
		hi = last
	}

	bestDist, bestSeg, bestU := -1.0, cursor, 0.0
	for i := lo; i <= hi; i++ {
		u, _, d := geo.ProjectOntoSegment(lp, p.verts[i].Local, p.verts[i+1].Local)
		if bestDist < 0 || d < bestDist {
			bestDist, bestSeg, bestU = d, i, u
		}
	}

	return p.verts[bestSeg].S + bestU*p.segLen[bestSeg], bestDist, bestSeg
}

// projectRecording projects every timed point of one recording onto the
// path. The cursor seeds near the vertex closest to the first point and is
// then threaded through the fold; it is private to this recording, so
// recordings can be projected concurrently.
func (p *Path) projectRecording(rec []geo.GeoPoint, cfg Config) []ProjectionSample {
	pts := make([]geo.GeoPoint, 0, len(rec))
	for _, pt := range rec {
		if pt.HasTime() {
			pts = append(pts, pt)
		}
	}
	if len(pts) == 0 {
		return nil
	}

	first := p.frame.Project(pts[0])
	cursor := p.nearestVertex(first) - 1
	if cursor < 0 {
		cursor = 0
	}
	if last := p.NumSegments() - 1; cursor > last {
		cursor = last
	}

	samples := make([]ProjectionSample, 0, len(pts))
	for _, pt := range pts {
		lp := p.frame.Project(pt)
		s, dist, next := p.projectPoint(lp, cursor, cfg)
		cursor = next
		samples = append(samples, ProjectionSample{
			S:    s,
			T:    epochSeconds(*pt.Time),
			Dist: dist,
		})
	}
	return samples
}
