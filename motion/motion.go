// Package motion defines the motion-planning service contract the probing
// sequencer drives: current pose queries, speed scaling, path constraints,
// Cartesian path planning, and plan execution. Planning, inverse kinematics,
// and trajectory generation all live behind this interface.
package motion

import (
	"context"

	"github.com/SrSupp/helene-probing/spatialmath"
)

// Service is the narrow motion contract the sequencer drives. Execute blocks
// until the motion finishes; external interruption surfaces as an error from
// whichever call was blocking, typically a context error.
type Service interface {
	// CurrentPose returns the current end-effector pose.
	CurrentPose(ctx context.Context) (spatialmath.Pose, error)

	// LinkPose returns the current pose of the named link.
	LinkPose(ctx context.Context, linkName string) (spatialmath.Pose, error)

	// SetMaxVelocityScaling scales the maximum joint velocities by a factor
	// in (0, 1].
	SetMaxVelocityScaling(ctx context.Context, factor float64) error

	// SetMaxAccelerationScaling scales the maximum joint accelerations by a
	// factor in (0, 1].
	SetMaxAccelerationScaling(ctx context.Context, factor float64) error

	// SetPathConstraints replaces the active path constraint set. A nil set
	// clears it.
	SetPathConstraints(ctx context.Context, constraints *Constraints) error

	// PlanCartesian computes a Cartesian path through the given end-effector
	// waypoints at eefStep translational resolution, under the given
	// constraint set (which may be nil). It returns the plan together with
	// the fraction of the requested path actually achieved; a fraction below
	// 1.0 means the returned plan is a prefix of the requested path.
	PlanCartesian(
		ctx context.Context,
		waypoints []spatialmath.Pose,
		eefStep, jumpThreshold float64,
		constraints *Constraints,
	) (*Plan, float64, error)

	// MoveTo plans to the target pose in joint space and moves there,
	// blocking until the motion completes.
	MoveTo(ctx context.Context, target spatialmath.Pose) error

	// Execute runs a previously computed plan, blocking until the motion
	// completes or fails.
	Execute(ctx context.Context, plan *Plan) error
}

// Plan is a computed trajectory through a sequence of end-effector waypoints.
type Plan struct {
	Waypoints []spatialmath.Pose
}

// Destination returns the final waypoint of the plan, if it has one.
func (p *Plan) Destination() (spatialmath.Pose, bool) {
	if p == nil || len(p.Waypoints) == 0 {
		return spatialmath.Pose{}, false
	}
	return p.Waypoints[len(p.Waypoints)-1], true
}
