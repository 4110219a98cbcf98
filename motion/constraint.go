package motion

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"github.com/SrSupp/helene-probing/spatialmath"
)

// Constraints is a full path constraint set, applied and cleared as a unit.
type Constraints struct {
	Orientation []OrientationConstraint
	Position    []PositionConstraint
}

// An OrientationConstraint restricts a link's orientation, expressed relative
// to a reference frame, to stay within per-axis angular tolerances of a fixed
// orientation for the whole path.
type OrientationConstraint struct {
	// LinkName is the constrained link.
	LinkName string
	// ReferenceFrame is the frame the orientation is expressed in.
	ReferenceFrame string
	// Orientation is the locked orientation relative to the reference frame.
	Orientation quat.Number
	// Per-axis angular tolerances in radians.
	XAxisTolerance float64
	YAxisTolerance float64
	ZAxisTolerance float64
	// Weight is the constraint's importance relative to others in the set.
	Weight float64
}

// Allows reports whether the given orientation satisfies the constraint, by
// checking the euler angles of the deviation from the locked orientation
// against the per-axis tolerances.
func (oc *OrientationConstraint) Allows(orientation quat.Number) bool {
	deviation := spatialmath.QuatToEulerAngles(spatialmath.OrientationBetween(oc.Orientation, orientation))
	return math.Abs(deviation.Roll) <= oc.XAxisTolerance &&
		math.Abs(deviation.Pitch) <= oc.YAxisTolerance &&
		math.Abs(deviation.Yaw) <= oc.ZAxisTolerance
}

// A PositionConstraint bounds a link's position to a solid region placed at
// an offset from a reference frame.
type PositionConstraint struct {
	LinkName       string
	ReferenceFrame string
	// TargetOffset positions the bounding region in the reference frame.
	TargetOffset r3.Vector
	// Region is the bounding solid the link must stay inside.
	Region spatialmath.Primitive
	Weight float64
}
