// Package frame implements the frame graph: a registry of integer handles
// into a central slab of Frame records (rather than shared pointers), with
// transform composition along the lowest-common-ancestor path and a
// per-query cache. Grounded in other_examples/cheukt-rdk's
// referenceframe/model.go (Model/Frame interfaces, r3.Vector poses, a
// sync.Map pose cache) and the teacher's coord/frames.go rotation-matrix
// bias/precession chain, generalized from fixed matrices to time-varying
// TransformProviders.
package frame

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ostkgo/physics/ostkerr"
)

// Quaternion is a unit quaternion (X, Y, Z, W) representing an orientation.
type Quaternion struct {
	X, Y, Z, W float64
}

// IdentityQuaternion is the no-rotation orientation.
func IdentityQuaternion() Quaternion { return Quaternion{W: 1} }

// NewQuaternion constructs and normalizes a quaternion from its components.
func NewQuaternion(x, y, z, w float64) (Quaternion, error) {
	n := math.Sqrt(x*x + y*y + z*z + w*w)
	if n == 0 {
		return Quaternion{}, errors.Wrap(ostkerr.InvalidInput, "quaternion: zero-norm quaternion")
	}
	return Quaternion{X: x / n, Y: y / n, Z: z / n, W: w / n}, nil
}

// FromAxisAngle builds a unit quaternion rotating by angleRad about axis.
func FromAxisAngle(axis r3.Vector, angleRad float64) Quaternion {
	axis = axis.Normalize()
	half := angleRad / 2
	s := math.Sin(half)
	return Quaternion{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math.Cos(half)}
}

// FromRotationMatrix builds a unit quaternion equivalent to a row-major
// direction-cosine matrix m (the same representation the teacher's
// coord/frames.go matrices use). Uses Shepperd's method for numerical
// stability near all four quaternion-component extrema.
func FromRotationMatrix(m [3][3]float64) Quaternion {
	trace := m[0][0] + m[1][1] + m[2][2]
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1.0)
		return Quaternion{
			W: 0.25 / s,
			X: (m[2][1] - m[1][2]) * s,
			Y: (m[0][2] - m[2][0]) * s,
			Z: (m[1][0] - m[0][1]) * s,
		}
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := 2.0 * math.Sqrt(1.0+m[0][0]-m[1][1]-m[2][2])
		return Quaternion{
			W: (m[2][1] - m[1][2]) / s,
			X: 0.25 * s,
			Y: (m[0][1] + m[1][0]) / s,
			Z: (m[0][2] + m[2][0]) / s,
		}
	case m[1][1] > m[2][2]:
		s := 2.0 * math.Sqrt(1.0+m[1][1]-m[0][0]-m[2][2])
		return Quaternion{
			W: (m[0][2] - m[2][0]) / s,
			X: (m[0][1] + m[1][0]) / s,
			Y: 0.25 * s,
			Z: (m[1][2] + m[2][1]) / s,
		}
	default:
		s := 2.0 * math.Sqrt(1.0+m[2][2]-m[0][0]-m[1][1])
		return Quaternion{
			W: (m[1][0] - m[0][1]) / s,
			X: (m[0][2] + m[2][0]) / s,
			Y: (m[1][2] + m[2][1]) / s,
			Z: 0.25 * s,
		}
	}
}

// Normalize returns q scaled to unit norm.
func (q Quaternion) Normalize() Quaternion {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n == 0 {
		return IdentityQuaternion()
	}
	return Quaternion{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// Conjugate returns the inverse rotation of q (q is assumed unit norm).
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Multiply returns the composition of q with other (other applied first,
// i.e. the Hamilton product q*other, matching the "apply other, then q"
// convention used when composing frame transforms parent-to-child).
func (q Quaternion) Multiply(other Quaternion) Quaternion {
	return Quaternion{
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
	}
}

// RotateVector applies q's rotation to v.
func (q Quaternion) RotateVector(v r3.Vector) r3.Vector {
	qv := Quaternion{X: v.X, Y: v.Y, Z: v.Z, W: 0}
	r := q.Multiply(qv).Multiply(q.Conjugate())
	return r3.Vector{X: r.X, Y: r.Y, Z: r.Z}
}
