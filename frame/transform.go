package frame

import (
	"github.com/golang/geo/r3"
)

// Transform carries the full kinematic state needed to map a position,
// velocity, and orientation from one frame to another: a translation, the
// relative velocity of the destination frame's origin, an orientation
// quaternion, and an angular velocity. Modeled on the teacher's fixed
// rotation matrices (coord/frames.go's GalacticMatrix, B1950Matrix,
// ICRSToJ2000Matrix) generalized into a time-varying, velocity-aware
// structure per spec.md §4.A.
type Transform struct {
	Translation     r3.Vector
	Velocity        r3.Vector
	Orientation     Quaternion
	AngularVelocity r3.Vector
}

// IdentityTransform is the no-op transform.
func IdentityTransform() Transform {
	return Transform{Orientation: IdentityQuaternion()}
}

// ApplyToPosition maps a position vector p expressed in the source frame
// into the destination frame.
func (t Transform) ApplyToPosition(p r3.Vector) r3.Vector {
	return t.Orientation.RotateVector(p.Sub(t.Translation))
}

// ApplyToVelocity maps a velocity vector v (co-located with position p,
// both expressed in the source frame) into the destination frame,
// accounting for the relative translational velocity and the Coriolis term
// from the destination frame's angular velocity.
func (t Transform) ApplyToVelocity(p, v r3.Vector) r3.Vector {
	relV := v.Sub(t.Velocity)
	rotated := t.Orientation.RotateVector(relV)
	coriolis := t.AngularVelocity.Cross(t.Orientation.RotateVector(p.Sub(t.Translation)))
	return rotated.Sub(coriolis)
}

// Inverse returns the transform that undoes t.
func (t Transform) Inverse() Transform {
	invOrientation := t.Orientation.Conjugate()
	invTranslation := t.Orientation.RotateVector(t.Translation).Mul(-1)
	invVelocity := t.Orientation.RotateVector(t.Velocity).Mul(-1)
	invAngularVelocity := invOrientation.RotateVector(t.AngularVelocity).Mul(-1)
	return Transform{
		Translation:     invTranslation,
		Velocity:        invVelocity,
		Orientation:     invOrientation,
		AngularVelocity: invAngularVelocity,
	}
}

// Compose returns the transform equivalent to applying t first, then next
// (t: A->B, next: B->C, result: A->C).
func (t Transform) Compose(next Transform) Transform {
	orientation := next.Orientation.Multiply(t.Orientation)
	translation := t.Translation.Add(t.Orientation.Conjugate().RotateVector(next.Translation))
	velocity := t.Velocity.Add(t.Orientation.Conjugate().RotateVector(next.Velocity))
	angularVelocity := t.AngularVelocity.Add(t.Orientation.Conjugate().RotateVector(next.AngularVelocity))
	return Transform{
		Translation:     translation,
		Velocity:        velocity,
		Orientation:     orientation,
		AngularVelocity: angularVelocity,
	}
}
