package inject

import (
	"context"

	"github.com/SrSupp/helene-probing/motion"
	"github.com/SrSupp/helene-probing/spatialmath"
)

// MotionService is an injected motion service.
type MotionService struct {
	motion.Service
	CurrentPoseFunc               func(ctx context.Context) (spatialmath.Pose, error)
	LinkPoseFunc                  func(ctx context.Context, linkName string) (spatialmath.Pose, error)
	SetMaxVelocityScalingFunc     func(ctx context.Context, factor float64) error
	SetMaxAccelerationScalingFunc func(ctx context.Context, factor float64) error
	SetPathConstraintsFunc        func(ctx context.Context, constraints *motion.Constraints) error
	PlanCartesianFunc             func(ctx context.Context, waypoints []spatialmath.Pose, eefStep, jumpThreshold float64, constraints *motion.Constraints) (*motion.Plan, float64, error)
	MoveToFunc                    func(ctx context.Context, target spatialmath.Pose) error
	ExecuteFunc                   func(ctx context.Context, plan *motion.Plan) error
}

// CurrentPose calls the injected CurrentPose or the real version.
func (m *MotionService) CurrentPose(ctx context.Context) (spatialmath.Pose, error) {
	if m.CurrentPoseFunc == nil {
		return m.Service.CurrentPose(ctx)
	}
	return m.CurrentPoseFunc(ctx)
}

// LinkPose calls the injected LinkPose or the real version.
func (m *MotionService) LinkPose(ctx context.Context, linkName string) (spatialmath.Pose, error) {
	if m.LinkPoseFunc == nil {
		return m.Service.LinkPose(ctx, linkName)
	}
	return m.LinkPoseFunc(ctx, linkName)
}

// SetMaxVelocityScaling calls the injected SetMaxVelocityScaling or the real version.
func (m *MotionService) SetMaxVelocityScaling(ctx context.Context, factor float64) error {
	if m.SetMaxVelocityScalingFunc == nil {
		return m.Service.SetMaxVelocityScaling(ctx, factor)
	}
	return m.SetMaxVelocityScalingFunc(ctx, factor)
}

// SetMaxAccelerationScaling calls the injected SetMaxAccelerationScaling or the real version.
func (m *MotionService) SetMaxAccelerationScaling(ctx context.Context, factor float64) error {
	if m.SetMaxAccelerationScalingFunc == nil {
		return m.Service.SetMaxAccelerationScaling(ctx, factor)
	}
	return m.SetMaxAccelerationScalingFunc(ctx, factor)
}

// SetPathConstraints calls the injected SetPathConstraints or the real version.
func (m *MotionService) SetPathConstraints(ctx context.Context, constraints *motion.Constraints) error {
	if m.SetPathConstraintsFunc == nil {
		return m.Service.SetPathConstraints(ctx, constraints)
	}
	return m.SetPathConstraintsFunc(ctx, constraints)
}

// PlanCartesian calls the injected PlanCartesian or the real version.
func (m *MotionService) PlanCartesian(
	ctx context.Context,
	waypoints []spatialmath.Pose,
	eefStep, jumpThreshold float64,
	constraints *motion.Constraints,
) (*motion.Plan, float64, error) {
	if m.PlanCartesianFunc == nil {
		return m.Service.PlanCartesian(ctx, waypoints, eefStep, jumpThreshold, constraints)
	}
	return m.PlanCartesianFunc(ctx, waypoints, eefStep, jumpThreshold, constraints)
}

// MoveTo calls the injected MoveTo or the real version.
func (m *MotionService) MoveTo(ctx context.Context, target spatialmath.Pose) error {
	if m.MoveToFunc == nil {
		return m.Service.MoveTo(ctx, target)
	}
	return m.MoveToFunc(ctx, target)
}

// Execute calls the injected Execute or the real version.
func (m *MotionService) Execute(ctx context.Context, plan *motion.Plan) error {
	if m.ExecuteFunc == nil {
		return m.Service.Execute(ctx, plan)
	}
	return m.ExecuteFunc(ctx, plan)
}
