package fake

import (
	"context"
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/SrSupp/helene-probing/motion"
	"github.com/SrSupp/helene-probing/spatialmath"
)

func TestPlanCartesianStraightLine(t *testing.T) {
	ctx := context.Background()
	start := spatialmath.NewPoseFromPoint(r3.Vector{X: 0.3, Z: 0.30})
	m := NewMotion(start, golog.NewTestLogger(t))

	target := start.Offset(r3.Vector{Z: -0.06})
	plan, fraction, err := m.PlanCartesian(ctx, []spatialmath.Pose{target}, 0.01, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fraction, test.ShouldAlmostEqual, 1.0)
	// 0.06m at 0.01m resolution is six steps
	test.That(t, plan.Waypoints, test.ShouldHaveLength, 6)

	dest, ok := plan.Destination()
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, dest.Point.Z, test.ShouldAlmostEqual, 0.24)
	test.That(t, dest.Point.X, test.ShouldAlmostEqual, 0.3)
	test.That(t, dest.Point.Y, test.ShouldAlmostEqual, 0)

	// consecutive waypoints are spaced at the step resolution
	test.That(t, plan.Waypoints[0].Point.Z, test.ShouldAlmostEqual, 0.29)
}

func TestPlanCartesianBadRequest(t *testing.T) {
	ctx := context.Background()
	m := NewMotion(spatialmath.NewZeroPose(), golog.NewTestLogger(t))

	_, _, err := m.PlanCartesian(ctx, nil, 0.01, 0, nil)
	test.That(t, err, test.ShouldNotBeNil)
	_, _, err = m.PlanCartesian(ctx, []spatialmath.Pose{spatialmath.NewZeroPose()}, 0, 0, nil)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestPlanCartesianConstraintTruncation(t *testing.T) {
	ctx := context.Background()
	start := spatialmath.NewZeroPose()
	m := NewMotion(start, golog.NewTestLogger(t))

	// lock the identity orientation, then request a path that twists 90
	// degrees about z on the way: planning must stop partway through.
	constraints := &motion.Constraints{Orientation: []motion.OrientationConstraint{{
		LinkName:       "axis_6",
		ReferenceFrame: "axis_0",
		Orientation:    spatialmath.NewZeroOrientation(),
		XAxisTolerance: 0.1,
		YAxisTolerance: 0.1,
		ZAxisTolerance: 0.1,
		Weight:         1,
	}}}
	target := spatialmath.NewPose(r3.Vector{Z: -0.1}, (&spatialmath.EulerAngles{Yaw: math.Pi / 2}).Quaternion())

	plan, fraction, err := m.PlanCartesian(ctx, []spatialmath.Pose{target}, 0.01, 0, constraints)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fraction, test.ShouldBeLessThan, 1.0)
	test.That(t, len(plan.Waypoints), test.ShouldBeLessThan, 10)

	// the same motion without twisting passes untouched
	straight := start.Offset(r3.Vector{Z: -0.1})
	_, fraction, err = m.PlanCartesian(ctx, []spatialmath.Pose{straight}, 0.01, 0, constraints)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fraction, test.ShouldAlmostEqual, 1.0)
}

func TestExecuteMovesPose(t *testing.T) {
	ctx := context.Background()
	start := spatialmath.NewPoseFromPoint(r3.Vector{Z: 0.3})
	m := NewMotion(start, golog.NewTestLogger(t))

	plan, fraction, err := m.PlanCartesian(ctx, []spatialmath.Pose{start.Offset(r3.Vector{Z: -0.06})}, 0.01, 0, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, fraction, test.ShouldAlmostEqual, 1.0)
	test.That(t, m.Execute(ctx, plan), test.ShouldBeNil)

	pose, err := m.CurrentPose(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, pose.Point.Z, test.ShouldAlmostEqual, 0.24)
}

func TestExecuteInterrupted(t *testing.T) {
	m := NewMotion(spatialmath.NewZeroPose(), golog.NewTestLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := m.Execute(ctx, &motion.Plan{Waypoints: []spatialmath.Pose{spatialmath.NewZeroPose()}})
	test.That(t, err, test.ShouldBeError, context.Canceled)

	test.That(t, m.Execute(context.Background(), nil), test.ShouldNotBeNil)
}

func TestScalingBounds(t *testing.T) {
	ctx := context.Background()
	m := NewMotion(spatialmath.NewZeroPose(), golog.NewTestLogger(t))

	test.That(t, m.SetMaxVelocityScaling(ctx, 0.01), test.ShouldBeNil)
	test.That(t, m.SetMaxAccelerationScaling(ctx, 0.1), test.ShouldBeNil)
	test.That(t, m.VelocityScaling(), test.ShouldAlmostEqual, 0.01)
	test.That(t, m.AccelerationScaling(), test.ShouldAlmostEqual, 0.1)

	test.That(t, m.SetMaxVelocityScaling(ctx, 0), test.ShouldNotBeNil)
	test.That(t, m.SetMaxAccelerationScaling(ctx, 1.5), test.ShouldNotBeNil)
}

func TestLinkPose(t *testing.T) {
	ctx := context.Background()
	start := spatialmath.NewPoseFromPoint(r3.Vector{X: 1})
	m := NewMotion(start, golog.NewTestLogger(t))

	// unregistered links report the end-effector pose
	pose, err := m.LinkPose(ctx, "axis_6")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(pose, start, 1e-9), test.ShouldBeTrue)

	m.SetLinkPose("axis_0", spatialmath.NewZeroPose())
	pose, err = m.LinkPose(ctx, "axis_0")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(pose, spatialmath.NewZeroPose(), 1e-9), test.ShouldBeTrue)
}
