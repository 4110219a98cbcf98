// Package fake implements a kinematic motion service with no real planner
// behind it. Cartesian "planning" interpolates straight-line segments at the
// requested step resolution and checks orientation constraints per waypoint,
// which is enough fidelity to exercise sequencing logic, partial-plan
// handling, and round-trip motion without middleware.
package fake

import (
	"context"
	"math"
	"sync"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/SrSupp/helene-probing/motion"
	"github.com/SrSupp/helene-probing/spatialmath"
)

// Motion is an in-memory motion.Service tracking a single end-effector pose.
type Motion struct {
	mu                  sync.Mutex
	pose                spatialmath.Pose
	linkPoses           map[string]spatialmath.Pose
	velocityScaling     float64
	accelerationScaling float64
	constraints         *motion.Constraints
	logger              golog.Logger
}

// NewMotion returns a motion service whose end effector starts at the given
// pose with full-speed scaling.
func NewMotion(start spatialmath.Pose, logger golog.Logger) *Motion {
	return &Motion{
		pose:                start,
		linkPoses:           map[string]spatialmath.Pose{},
		velocityScaling:     1,
		accelerationScaling: 1,
		logger:              logger,
	}
}

// SetLinkPose fixes the reported pose for a named link.
func (m *Motion) SetLinkPose(linkName string, pose spatialmath.Pose) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.linkPoses[linkName] = pose
}

// CurrentPose returns the current end-effector pose.
func (m *Motion) CurrentPose(ctx context.Context) (spatialmath.Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pose, nil
}

// LinkPose returns the fixed pose registered for the link, the end-effector
// pose if none was registered, or a zero pose for links never seen.
func (m *Motion) LinkPose(ctx context.Context, linkName string) (spatialmath.Pose, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if pose, ok := m.linkPoses[linkName]; ok {
		return pose, nil
	}
	return m.pose, nil
}

// SetMaxVelocityScaling sets the velocity scaling factor.
func (m *Motion) SetMaxVelocityScaling(ctx context.Context, factor float64) error {
	if factor <= 0 || factor > 1 {
		return errors.Errorf("velocity scaling factor %v outside (0, 1]", factor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.velocityScaling = factor
	return nil
}

// SetMaxAccelerationScaling sets the acceleration scaling factor.
func (m *Motion) SetMaxAccelerationScaling(ctx context.Context, factor float64) error {
	if factor <= 0 || factor > 1 {
		return errors.Errorf("acceleration scaling factor %v outside (0, 1]", factor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accelerationScaling = factor
	return nil
}

// VelocityScaling reports the active velocity scaling factor.
func (m *Motion) VelocityScaling() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.velocityScaling
}

// AccelerationScaling reports the active acceleration scaling factor.
func (m *Motion) AccelerationScaling() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accelerationScaling
}

// SetPathConstraints replaces the active constraint set; nil clears it.
func (m *Motion) SetPathConstraints(ctx context.Context, constraints *motion.Constraints) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = constraints
	return nil
}

// PathConstraints reports the active constraint set, nil when cleared.
func (m *Motion) PathConstraints() *motion.Constraints {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.constraints
}

// PlanCartesian interpolates straight-line segments from the current pose
// through the given waypoints. The achieved fraction drops below 1.0 as soon
// as an interpolated pose violates an orientation constraint; the returned
// plan stops just before the violation.
func (m *Motion) PlanCartesian(
	ctx context.Context,
	waypoints []spatialmath.Pose,
	eefStep, jumpThreshold float64,
	constraints *motion.Constraints,
) (*motion.Plan, float64, error) {
	if len(waypoints) == 0 {
		return nil, 0, errors.New("no waypoints requested")
	}
	if eefStep <= 0 {
		return nil, 0, errors.Errorf("eef step %v must be positive", eefStep)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	interpolated := interpolate(m.pose, waypoints, eefStep)
	total := len(interpolated)
	achieved := total
	for i, pose := range interpolated {
		if !allowed(constraints, pose) {
			achieved = i
			break
		}
	}

	plan := &motion.Plan{Waypoints: interpolated[:achieved]}
	fraction := 1.0
	if achieved < total {
		fraction = float64(achieved) / float64(total)
		m.logger.Debugw("cartesian plan truncated by constraints", "fraction", fraction)
	}
	return plan, fraction, nil
}

// interpolate walks from start through each waypoint, emitting poses spaced
// at most eefStep apart with slerped orientations. The requested waypoints
// themselves are always emitted.
func interpolate(start spatialmath.Pose, waypoints []spatialmath.Pose, eefStep float64) []spatialmath.Pose {
	var out []spatialmath.Pose
	from := start
	for _, to := range waypoints {
		dist := to.Point.Sub(from.Point).Norm()
		steps := int(math.Ceil(dist / eefStep))
		if steps < 1 {
			steps = 1
		}
		delta := to.Point.Sub(from.Point)
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps)
			out = append(out, spatialmath.Pose{
				Point:       from.Point.Add(delta.Mul(t)),
				Orientation: spatialmath.Slerp(from.Orientation, to.Orientation, t),
			})
		}
		from = to
	}
	return out
}

func allowed(constraints *motion.Constraints, pose spatialmath.Pose) bool {
	if constraints == nil {
		return true
	}
	for i := range constraints.Orientation {
		if !constraints.Orientation[i].Allows(pose.Orientation) {
			return false
		}
	}
	return true
}

// MoveTo teleports the end effector to the target pose.
func (m *Motion) MoveTo(ctx context.Context, target spatialmath.Pose) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pose = target
	return nil
}

// Execute walks the plan's waypoints, leaving the end effector at the final
// one. Context cancellation mid-plan stops the walk where it is.
func (m *Motion) Execute(ctx context.Context, plan *motion.Plan) error {
	if plan == nil {
		return errors.New("cannot execute a nil plan")
	}
	for _, pose := range plan.Waypoints {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.mu.Lock()
		m.pose = pose
		m.mu.Unlock()
	}
	return nil
}
