package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a position and orientation in 3D Euclidean space. Positions
// are in meters, orientations are unit quaternions in gonum component order
// (w, x, y, z).
type Pose struct {
	Point       r3.Vector
	Orientation quat.Number
}

// NewPose creates a pose from a point and an orientation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{Point: point, Orientation: Normalize(orientation)}
}

// NewZeroPose returns a pose at the origin with the identity orientation.
func NewZeroPose() Pose {
	return Pose{Orientation: NewZeroOrientation()}
}

// NewPoseFromPoint creates a pose at the given point with the identity
// orientation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{Point: point, Orientation: NewZeroOrientation()}
}

// Offset returns a copy of the pose translated by delta, orientation
// unchanged.
func (p Pose) Offset(delta r3.Vector) Pose {
	return Pose{Point: p.Point.Add(delta), Orientation: p.Orientation}
}

// WithOrientation returns a copy of the pose with the given orientation.
func (p Pose) WithOrientation(orientation quat.Number) Pose {
	return Pose{Point: p.Point, Orientation: Normalize(orientation)}
}

// PoseAlmostEqual checks whether two poses are approximately the same in both
// position and orientation.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return a.Point.Sub(b.Point).Norm() <= tol && QuaternionAlmostEqual(a.Orientation, b.Orientation, tol)
}
