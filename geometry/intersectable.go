package geometry

import "math"

// Line is a ray from the origin through Endpoint, in some body-fixed
// Cartesian frame.
type Line struct {
	Endpoint [3]float64
}

// Intersectable is the opaque geometry-primitive interface environment.
// Environment checks a Line against, per spec.md §1's framing of geometric
// shapes as an external collaborator. Sphere is the sole concrete
// implementation in this repo; Ellipsoid/Segment/Pyramid are documented
// extension points with no implementation, since no example in the
// retrieved pack implements them and spec.md only references the
// interface itself.
type Intersectable interface {
	// IntersectsLine reports whether line intersects the shape at all,
	// and if so the near/far distances along the line from the origin.
	IntersectsLine(line Line) (hit bool, near, far float64)
}

// Sphere is a sphere centered at Center with the given Radius, in the same
// body-fixed frame as the Line it's tested against. The sole concrete
// Intersectable, grounded on IntersectLineSphere above.
type Sphere struct {
	Center [3]float64
	Radius float64
}

// IntersectsLine implements Intersectable.
func (s Sphere) IntersectsLine(line Line) (bool, float64, float64) {
	near, far := IntersectLineSphere(line.Endpoint, s.Center, s.Radius)
	if math.IsNaN(near) || math.IsNaN(far) {
		return false, 0, 0
	}
	return true, near, far
}
