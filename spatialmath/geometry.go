package spatialmath

import "github.com/pkg/errors"

// PrimitiveType enumerates the solid primitive shapes a planning scene can
// hold as collision geometry.
type PrimitiveType int

// The supported primitive shapes.
const (
	UnknownPrimitive PrimitiveType = iota
	BoxPrimitive
	SpherePrimitive
	CylinderPrimitive
)

// Cylinder dimension slice indices.
const (
	CylinderHeight = 0
	CylinderRadius = 1
)

func (pt PrimitiveType) String() string {
	switch pt {
	case BoxPrimitive:
		return "box"
	case SpherePrimitive:
		return "sphere"
	case CylinderPrimitive:
		return "cylinder"
	case UnknownPrimitive:
		fallthrough
	default:
		return "unknown"
	}
}

// A Primitive is a solid shape standing in for an obstacle during planning: a
// type tag plus its characteristic dimensions in meters. Box dimensions are
// x, y, z extents; a sphere carries its radius; a cylinder carries height
// then radius.
type Primitive struct {
	Type       PrimitiveType
	Dimensions []float64
}

// NewBox creates a box primitive from its x, y, z extents.
func NewBox(x, y, z float64) (Primitive, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return Primitive{}, newBadGeometryDimensionsError(BoxPrimitive)
	}
	return Primitive{Type: BoxPrimitive, Dimensions: []float64{x, y, z}}, nil
}

// NewSphere creates a sphere primitive from its radius.
func NewSphere(radius float64) (Primitive, error) {
	if radius <= 0 {
		return Primitive{}, newBadGeometryDimensionsError(SpherePrimitive)
	}
	return Primitive{Type: SpherePrimitive, Dimensions: []float64{radius}}, nil
}

// NewCylinder creates a cylinder primitive from its height and radius.
func NewCylinder(height, radius float64) (Primitive, error) {
	if height <= 0 || radius <= 0 {
		return Primitive{}, newBadGeometryDimensionsError(CylinderPrimitive)
	}
	return Primitive{Type: CylinderPrimitive, Dimensions: []float64{height, radius}}, nil
}

func newBadGeometryDimensionsError(pt PrimitiveType) error {
	return errors.Errorf("%s dimensions must all be positive", pt)
}
