package spatialmath

import (
	"math"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

// 90 degree rotations about each axis, in quaternion representation.
var (
	sq2  = math.Sqrt(2) / 2
	q90x = quat.Number{Real: sq2, Imag: sq2}
	q90y = quat.Number{Real: sq2, Jmag: sq2}
	q90z = quat.Number{Real: sq2, Kmag: sq2}
)

func TestNormalize(t *testing.T) {
	q := Normalize(quat.Number{Real: 2, Imag: 2, Jmag: 2, Kmag: 2})
	test.That(t, quat.Abs(q), test.ShouldAlmostEqual, 1)
	test.That(t, q.Real, test.ShouldAlmostEqual, 0.5)

	// the zero quaternion falls back to the identity
	test.That(t, Normalize(quat.Number{}), test.ShouldResemble, NewZeroOrientation())
}

func TestQuaternionAlmostEqual(t *testing.T) {
	test.That(t, QuaternionAlmostEqual(q90x, q90x, 1e-8), test.ShouldBeTrue)
	// q and -q describe the same rotation
	test.That(t, QuaternionAlmostEqual(q90x, quat.Scale(-1, q90x), 1e-8), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q90x, q90y, 1e-8), test.ShouldBeFalse)
}

func TestOrientationBetween(t *testing.T) {
	// identical orientations yield the identity relative orientation
	identity := NewZeroOrientation()
	test.That(t, QuaternionAlmostEqual(OrientationBetween(identity, identity), identity, 1e-8), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(OrientationBetween(q90z, q90z), identity, 1e-8), test.ShouldBeTrue)

	// relative orientation composed back onto the reference recovers the target
	rel := OrientationBetween(q90x, q90y)
	recovered := Normalize(quat.Mul(q90x, rel))
	test.That(t, QuaternionAlmostEqual(recovered, q90y, 1e-8), test.ShouldBeTrue)

	// a rotation relative to the identity is itself
	test.That(t, QuaternionAlmostEqual(OrientationBetween(identity, q90y), q90y, 1e-8), test.ShouldBeTrue)
}

func TestSlerp(t *testing.T) {
	identity := NewZeroOrientation()

	test.That(t, QuaternionAlmostEqual(Slerp(identity, q90x, 0), identity, 1e-8), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(Slerp(identity, q90x, 1), q90x, 1e-8), test.ShouldBeTrue)

	// halfway to a 90 degree x rotation is a 45 degree x rotation
	q45x := (&EulerAngles{Roll: math.Pi / 4}).Quaternion()
	test.That(t, QuaternionAlmostEqual(Slerp(identity, q90x, 0.5), q45x, 1e-8), test.ShouldBeTrue)

	// interpolation between equal orientations stays put
	test.That(t, QuaternionAlmostEqual(Slerp(q90y, q90y, 0.5), q90y, 1e-8), test.ShouldBeTrue)
}

func TestEulerAngles(t *testing.T) {
	for _, tc := range []struct {
		name string
		ea   EulerAngles
		q    quat.Number
	}{
		{"identity", EulerAngles{}, NewZeroOrientation()},
		{"roll90", EulerAngles{Roll: math.Pi / 2}, q90x},
		{"pitch90", EulerAngles{Pitch: math.Pi / 2}, q90y},
		{"yaw90", EulerAngles{Yaw: math.Pi / 2}, q90z},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, QuaternionAlmostEqual(tc.ea.Quaternion(), tc.q, 1e-8), test.ShouldBeTrue)
		})
	}

	// round trip through the quaternion representation away from singularities
	ea := EulerAngles{Roll: 0.3, Pitch: -0.4, Yaw: 1.1}
	back := QuatToEulerAngles(ea.Quaternion())
	test.That(t, back.Roll, test.ShouldAlmostEqual, ea.Roll, 1e-8)
	test.That(t, back.Pitch, test.ShouldAlmostEqual, ea.Pitch, 1e-8)
	test.That(t, back.Yaw, test.ShouldAlmostEqual, ea.Yaw, 1e-8)

	// the needle approach orientation used on the lab arm
	approach := EulerAngles{Roll: 0, Pitch: -math.Pi / 2, Yaw: math.Pi}
	test.That(t, quat.Abs(approach.Quaternion()), test.ShouldAlmostEqual, 1)
}
