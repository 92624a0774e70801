package geo

import "math"

// Point3 is a local planar position with elevation, in metres.
type Point3 struct {
	X float64
	Y float64
	Z float64
}

// Dist3 returns the 3D Euclidean distance between two points.
func Dist3(a, b Point3) float64 {
	dx, dy, dz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Lerp3 linearly interpolates between a and b at fraction u.
func Lerp3(a, b Point3, u float64) Point3 {
	return Point3{
		X: a.X + u*(b.X-a.X),
		Y: a.Y + u*(b.Y-a.Y),
		Z: a.Z + u*(b.Z-a.Z),
	}
}

// ToPoint3 projects p into the frame with the given fallback elevation.
func (f Frame) ToPoint3(p GeoPoint, fallbackEle float64) Point3 {
	lp := f.Project(p)
	return Point3{X: lp.X, Y: lp.Y, Z: p.Elevation(fallbackEle)}
}
