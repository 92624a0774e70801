package align

import (
	"github.com/banshee-data/tracks.report/internal/geo"
)

// Vertex is one point of the reference route with its local-frame position
// and cumulative arc-length from the route start.
type Vertex struct {
	Geo   geo.GeoPoint
	Local geo.LocalPoint
	S     float64
}

// Path is the reference route geometry: vertices in a local planar frame
// anchored at the first route point, with a monotone cumulative arc-length.
// A Path is built once per alignment run and read-only afterwards.
type Path struct {
	frame  geo.Frame
	verts  []Vertex
	segLen []float64
}

// BuildPath converts an ordered route of at least two geodetic points into a
// Path. Duplicate consecutive points produce zero-length segments, which is
// legal; arc-length never decreases.
func BuildPath(route []geo.GeoPoint) (*Path, error) {
	if len(route) < 2 {
		return nil, ErrInsufficientGeometry
	}

	frame := geo.NewFrame(route[0])
	verts := make([]Vertex, len(route))
	segLen := make([]float64, len(route)-1)

	s := 0.0
	for i, p := range route {
		lp := frame.Project(p)
		if i > 0 {
			l := geo.Dist(verts[i-1].Local, lp)
			segLen[i-1] = l
			s += l
		}
		verts[i] = Vertex{Geo: p, Local: lp, S: s}
	}

	return &Path{frame: frame, verts: verts, segLen: segLen}, nil
}

// Frame returns the local planar frame shared by the path and anything
// projected onto it.
func (p *Path) Frame() geo.Frame { return p.frame }

// Len returns the number of vertices.
func (p *Path) Len() int { return len(p.verts) }

// NumSegments returns the number of segments (Len()-1).
func (p *Path) NumSegments() int { return len(p.segLen) }

// Vertex returns the i-th vertex.
func (p *Path) Vertex(i int) Vertex { return p.verts[i] }

// TotalLength returns the route's total arc-length in metres.
func (p *Path) TotalLength() float64 { return p.verts[len(p.verts)-1].S }

// nearestVertex returns the index of the vertex closest to lp, by linear
// scan. It is only used to seed the projector's cursor, once per recording.
func (p *Path) nearestVertex(lp geo.LocalPoint) int {
	best, bestD := 0, geo.Dist(p.verts[0].Local, lp)
	for i := 1; i < len(p.verts); i++ {
		if d := geo.Dist(p.verts[i].Local, lp); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
