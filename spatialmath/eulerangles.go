package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three angles (in radians) used to represent the rotation of
// an object in 3D Euclidean space. The Tait-Bryan angle formalism is used,
// with rotations around the z, then y, then x axis (yaw, pitch, roll).
type EulerAngles struct {
	Roll  float64 // x
	Pitch float64 // y
	Yaw   float64 // z
}

// NewEulerAngles creates an empty EulerAngles struct.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// Quaternion returns the orientation in quaternion representation.
func (ea *EulerAngles) Quaternion() quat.Number {
	sRoll, cRoll := math.Sincos(ea.Roll / 2)
	sPitch, cPitch := math.Sincos(ea.Pitch / 2)
	sYaw, cYaw := math.Sincos(ea.Yaw / 2)

	return quat.Number{
		Real: cRoll*cPitch*cYaw + sRoll*sPitch*sYaw,
		Imag: sRoll*cPitch*cYaw - cRoll*sPitch*sYaw,
		Jmag: cRoll*sPitch*cYaw + sRoll*cPitch*sYaw,
		Kmag: cRoll*cPitch*sYaw - sRoll*sPitch*cYaw,
	}
}

// QuatToEulerAngles converts a quaternion to the euler angle representation.
// At the pitch singularity (gimbal lock) the roll is set to zero and the
// remaining rotation is attributed to yaw.
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	q = Normalize(q)

	sinPitch := 2 * (q.Real*q.Jmag - q.Kmag*q.Imag)
	if math.Abs(sinPitch) >= 1-defaultAngleEpsilon {
		return &EulerAngles{
			Roll:  0,
			Pitch: math.Copysign(math.Pi/2, sinPitch),
			Yaw:   2 * math.Atan2(q.Imag, q.Real) * math.Copysign(1, sinPitch),
		}
	}

	return &EulerAngles{
		Roll:  math.Atan2(2*(q.Real*q.Imag+q.Jmag*q.Kmag), 1-2*(q.Imag*q.Imag+q.Jmag*q.Jmag)),
		Pitch: math.Asin(sinPitch),
		Yaw:   math.Atan2(2*(q.Real*q.Kmag+q.Imag*q.Jmag), 1-2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag)),
	}
}
