// Package spatialmath defines the spatial mathematical operations needed to
// reason about end-effector poses and scene obstacles: quaternion algebra,
// poses, and solid primitives.
package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// defaultAngleEpsilon is the quaternion component tolerance used when no
// explicit tolerance is given.
const defaultAngleEpsilon = 1e-6

// NewZeroOrientation returns the identity orientation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// Normalize returns the given quaternion scaled to unit length. The zero
// quaternion normalizes to the identity.
func Normalize(q quat.Number) quat.Number {
	length := quat.Abs(q)
	if length == 0 {
		return NewZeroOrientation()
	}
	return quat.Scale(1/length, q)
}

// QuaternionAlmostEqual checks whether two quaternions represent nearly the
// same orientation. q and -q describe the same rotation, so both signs are
// accepted.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	return quatComponentsClose(a, b, tol) || quatComponentsClose(a, quat.Scale(-1, b), tol)
}

func quatComponentsClose(a, b quat.Number, tol float64) bool {
	return math.Abs(a.Real-b.Real) <= tol &&
		math.Abs(a.Imag-b.Imag) <= tol &&
		math.Abs(a.Jmag-b.Jmag) <= tol &&
		math.Abs(a.Kmag-b.Kmag) <= tol
}

// OrientationBetween returns the orientation of target expressed relative to
// reference, i.e. the rotation that carries the reference orientation onto
// the target orientation. Identical inputs yield the identity.
func OrientationBetween(reference, target quat.Number) quat.Number {
	return Normalize(quat.Mul(quat.Conj(reference), target))
}

// Slerp spherically interpolates between orientations a and b. t is clamped
// to [0, 1]; t=0 yields a and t=1 yields b.
func Slerp(a, b quat.Number, t float64) quat.Number {
	switch {
	case t <= 0:
		return Normalize(a)
	case t >= 1:
		return Normalize(b)
	}
	delta := quat.Mul(quat.Conj(a), b)
	// take the short way around
	if delta.Real < 0 {
		delta = quat.Scale(-1, delta)
	}
	return Normalize(quat.Mul(a, quat.PowReal(delta, t)))
}
