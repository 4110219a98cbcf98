// Package probing sequences a needle-probing routine on a robotic arm. While
// probing is enabled the end-effector orientation is locked by a path
// constraint, the solid obstacle in the planning scene is swapped for a
// hollow variant the needle may enter, and the arm is slowed to puncture
// speed; disabling reverses all of it. Planning-scene changes apply
// asynchronously, so every add and remove is confirmed by polling the scene
// until it converges or a budget runs out.
package probing

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"gonum.org/v1/gonum/num/quat"

	"github.com/SrSupp/helene-probing/motion"
	"github.com/SrSupp/helene-probing/scene"
	"github.com/SrSupp/helene-probing/spatialmath"
)

// State describes whether the sequencer currently allows probing motion.
type State int

const (
	// Idle means the solid obstacle is in place and no constraints apply.
	Idle State = iota
	// Probing means the hollow obstacle has replaced the solid one, the
	// orientation lock is active, and the arm moves at puncture speed.
	Probing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Probing:
		return "probing"
	default:
		return "unknown"
	}
}

// Sequencer drives a probing routine against a planning scene and a motion
// service. It assumes exclusive ownership of its named scene objects and of
// the active path constraint set, and expects a single logical caller.
type Sequencer struct {
	scene  scene.Service
	motion motion.Service
	cfg    Config
	logger golog.Logger

	state             State
	startPose         spatialmath.Pose
	activeConstraints *motion.Constraints

	// injectable for deterministic tests
	clock clock.Clock
	sleep func(ctx context.Context, d time.Duration) bool
}

// NewSequencer wires a sequencer to its two collaborators, captures the
// current pose as the home pose, applies the default speed scalings, and
// places the solid obstacle in the scene, waiting for it to be observed.
func NewSequencer(
	ctx context.Context,
	sceneSvc scene.Service,
	motionSvc motion.Service,
	cfg Config,
	logger golog.Logger,
) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sequencer config")
	}

	s := &Sequencer{
		scene:  sceneSvc,
		motion: motionSvc,
		cfg:    cfg,
		logger: logger,
		state:  Idle,
		clock:  clock.New(),
		sleep:  goutils.SelectContextOrWait,
	}

	startPose, err := s.motion.CurrentPose(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "capturing start pose")
	}
	s.startPose = startPose

	if err := s.applyDefaultScalings(ctx); err != nil {
		return nil, err
	}
	if err := s.addCylinder(ctx); err != nil {
		return nil, err
	}
	s.logger.Infow("sequencer ready", "start_pose", startPose.Point, "cylinder", cfg.CylinderName)
	return s, nil
}

// State reports the sequencer's current state.
func (s *Sequencer) State() State {
	return s.state
}

// StartPose reports the pose captured at construction, the target of GoHome.
func (s *Sequencer) StartPose() spatialmath.Pose {
	return s.startPose
}

// EnableProbing locks the current end-effector orientation, swaps the solid
// obstacle for the hollow variant (confirming the hollow one is present
// before the solid one is removed, so collision geometry never vanishes
// entirely), and slows the arm to puncture speed. Valid only while Idle.
//
// A convergence timeout aborts the sequence where it is, without rollback:
// the scene may be left with both variants present. The state stays Idle so
// the caller may retry once the scene is repaired.
func (s *Sequencer) EnableProbing(ctx context.Context) error {
	if s.state != Idle {
		return newInvalidTransitionError("enable probing", s.state)
	}

	constraints, err := s.buildConstraints(ctx)
	if err != nil {
		return errors.Wrap(err, "building path constraints")
	}
	if err := s.motion.SetPathConstraints(ctx, constraints); err != nil {
		return errors.Wrap(err, "applying path constraints")
	}
	s.activeConstraints = constraints

	if err := s.addHollowCylinder(ctx); err != nil {
		return err
	}
	if err := s.removeCylinder(ctx); err != nil {
		return err
	}

	if err := s.motion.SetMaxVelocityScaling(ctx, s.cfg.ProbingVelocityScaling); err != nil {
		return errors.Wrap(err, "slowing velocity for probing")
	}
	if err := s.motion.SetMaxAccelerationScaling(ctx, s.cfg.ProbingAccelerationScaling); err != nil {
		return errors.Wrap(err, "slowing acceleration for probing")
	}

	s.state = Probing
	s.logger.Infow("probing enabled", "velocity_scaling", s.cfg.ProbingVelocityScaling)
	return nil
}

// DisableProbing reverses EnableProbing: the solid obstacle returns, the
// hollow variant leaves, the constraint set is cleared, and the default speed
// scalings are restored. Valid only while Probing.
func (s *Sequencer) DisableProbing(ctx context.Context) error {
	if s.state != Probing {
		return newInvalidTransitionError("disable probing", s.state)
	}

	if err := s.addCylinder(ctx); err != nil {
		return err
	}
	if err := s.removeHollowCylinder(ctx); err != nil {
		return err
	}

	if err := s.motion.SetPathConstraints(ctx, nil); err != nil {
		return errors.Wrap(err, "clearing path constraints")
	}
	s.activeConstraints = nil

	if err := s.applyDefaultScalings(ctx); err != nil {
		return err
	}

	s.state = Idle
	s.logger.Infow("probing disabled")
	return nil
}

// PlanProbing computes a Cartesian plan moving the end effector vertically by
// depth meters (negative = downward insertion) from its current pose, under
// the currently active constraint set. The returned fraction is the share of
// the path the planner achieved; the caller decides what to do with a plan
// below 1.0. Sequencer state is not touched.
func (s *Sequencer) PlanProbing(ctx context.Context, depth float64) (*motion.Plan, float64, error) {
	pose, err := s.motion.CurrentPose(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading current pose")
	}

	waypoints := []spatialmath.Pose{pose.Offset(r3.Vector{Z: depth})}
	plan, fraction, err := s.motion.PlanCartesian(ctx, waypoints, s.cfg.EEFStep, s.cfg.JumpThreshold, s.activeConstraints)
	if err != nil {
		return nil, 0, errors.Wrap(err, "planning cartesian path")
	}
	if fraction < 1.0 {
		s.logger.Warnw("partial probing plan", "depth", depth, "fraction", fraction)
	}
	return plan, fraction, nil
}

// ExecutePlan runs a previously computed plan, blocking until the motion
// completes or the motion service reports failure or interruption.
func (s *Sequencer) ExecutePlan(ctx context.Context, plan *motion.Plan) error {
	return s.motion.Execute(ctx, plan)
}

// Probe plans a probing motion of the given depth and executes it, refusing
// to run a partial plan: if the planner achieved less than the full path a
// PartialPlanError is returned and nothing moves.
func (s *Sequencer) Probe(ctx context.Context, depth float64) error {
	plan, fraction, err := s.PlanProbing(ctx, depth)
	if err != nil {
		return err
	}
	if fraction < 1.0 {
		return &PartialPlanError{Fraction: fraction}
	}
	return s.ExecutePlan(ctx, plan)
}

// MoveToProbingPosition moves the arm, in joint space, over the obstacle into
// the configured approach pose.
func (s *Sequencer) MoveToProbingPosition(ctx context.Context) error {
	pose, err := s.motion.CurrentPose(ctx)
	if err != nil {
		return errors.Wrap(err, "reading current pose")
	}
	target := pose.Offset(s.cfg.ApproachOffset).WithOrientation(s.cfg.ApproachOrientation)
	return s.motion.MoveTo(ctx, target)
}

// GoHome moves the arm, in joint space, back to the pose captured at
// construction.
func (s *Sequencer) GoHome(ctx context.Context) error {
	return s.motion.MoveTo(ctx, s.startPose)
}

// CylinderPose reports the scene's pose for the solid obstacle, falling back
// to the configured pose while the object is not currently known.
func (s *Sequencer) CylinderPose(ctx context.Context) (spatialmath.Pose, error) {
	pose, err := s.scene.ObjectPose(ctx, s.cfg.CylinderName)
	if err != nil {
		if scene.IsObjectNotFound(err) {
			return s.cfg.CylinderPose, nil
		}
		return spatialmath.Pose{}, err
	}
	return pose, nil
}

// WaitForSceneState polls the scene's known-object set at the configured
// interval until the named object's membership matches shouldBeKnown or
// timeout elapses, and reports whether the expected state was observed. At
// least one check is performed even for a zero timeout. Context cancellation
// returns the context's error.
func (s *Sequencer) WaitForSceneState(
	ctx context.Context,
	name string,
	shouldBeKnown bool,
	timeout time.Duration,
) (bool, error) {
	deadline := s.clock.Now().Add(timeout)
	for {
		names, err := s.scene.KnownObjectNames(ctx)
		if err != nil {
			return false, errors.Wrap(err, "listing known objects")
		}
		known := false
		for _, n := range names {
			if n == name {
				known = true
				break
			}
		}
		if known == shouldBeKnown {
			return true, nil
		}
		if !s.clock.Now().Before(deadline) {
			return false, nil
		}
		if !s.sleep(ctx, s.cfg.PollInterval) {
			return false, ctx.Err()
		}
	}
}

// buildConstraints assembles the probing constraint set: the end-effector
// orientation relative to the base frame, locked with the configured
// per-axis tolerance, plus the optional bounding region.
func (s *Sequencer) buildConstraints(ctx context.Context) (*motion.Constraints, error) {
	relative, err := s.relativeOrientation(ctx, s.cfg.EndEffectorLink, s.cfg.BaseLink)
	if err != nil {
		return nil, err
	}

	constraints := &motion.Constraints{
		Orientation: []motion.OrientationConstraint{{
			LinkName:       s.cfg.EndEffectorLink,
			ReferenceFrame: s.cfg.BaseLink,
			Orientation:    relative,
			XAxisTolerance: s.cfg.OrientationTolerance,
			YAxisTolerance: s.cfg.OrientationTolerance,
			ZAxisTolerance: s.cfg.OrientationTolerance,
			Weight:         1,
		}},
	}
	if s.cfg.ConstraintRegion.Type != spatialmath.UnknownPrimitive {
		constraints.Position = []motion.PositionConstraint{{
			LinkName:       s.cfg.EndEffectorLink,
			ReferenceFrame: s.cfg.BaseLink,
			TargetOffset:   s.cfg.RegionOffset,
			Region:         s.cfg.ConstraintRegion,
			Weight:         1,
		}}
	}
	return constraints, nil
}

// relativeOrientation returns the target link's orientation expressed
// relative to the reference link's orientation.
func (s *Sequencer) relativeOrientation(ctx context.Context, targetLink, referenceLink string) (quat.Number, error) {
	reference, err := s.motion.LinkPose(ctx, referenceLink)
	if err != nil {
		return quat.Number{}, errors.Wrapf(err, "reading pose of link %q", referenceLink)
	}
	target, err := s.motion.LinkPose(ctx, targetLink)
	if err != nil {
		return quat.Number{}, errors.Wrapf(err, "reading pose of link %q", targetLink)
	}
	return spatialmath.OrientationBetween(reference.Orientation, target.Orientation), nil
}

func (s *Sequencer) applyDefaultScalings(ctx context.Context) error {
	if err := s.motion.SetMaxVelocityScaling(ctx, s.cfg.DefaultVelocityScaling); err != nil {
		return errors.Wrap(err, "restoring velocity scaling")
	}
	if err := s.motion.SetMaxAccelerationScaling(ctx, s.cfg.DefaultAccelerationScaling); err != nil {
		return errors.Wrap(err, "restoring acceleration scaling")
	}
	return nil
}

func (s *Sequencer) addCylinder(ctx context.Context) error {
	prim, err := spatialmath.NewCylinder(s.cfg.CylinderHeight, s.cfg.CylinderRadius)
	if err != nil {
		return err
	}
	if err := s.scene.AddSolid(ctx, s.cfg.CylinderName, s.cfg.CylinderPose, prim); err != nil {
		return errors.Wrapf(err, "adding %q", s.cfg.CylinderName)
	}
	return s.confirmSceneState(ctx, s.cfg.CylinderName, true, s.cfg.AddTimeout)
}

func (s *Sequencer) removeCylinder(ctx context.Context) error {
	if err := s.scene.Remove(ctx, s.cfg.CylinderName); err != nil {
		return errors.Wrapf(err, "removing %q", s.cfg.CylinderName)
	}
	return s.confirmSceneState(ctx, s.cfg.CylinderName, false, s.cfg.RemoveTimeout)
}

func (s *Sequencer) addHollowCylinder(ctx context.Context) error {
	pose := s.cfg.CylinderPose.Offset(s.cfg.HollowCylinderOffset)
	if err := s.scene.AddMesh(ctx, s.cfg.HollowCylinderName, pose, s.cfg.HollowCylinderMesh); err != nil {
		return errors.Wrapf(err, "adding %q", s.cfg.HollowCylinderName)
	}
	return s.confirmSceneState(ctx, s.cfg.HollowCylinderName, true, s.cfg.AddTimeout)
}

func (s *Sequencer) removeHollowCylinder(ctx context.Context) error {
	if err := s.scene.Remove(ctx, s.cfg.HollowCylinderName); err != nil {
		return errors.Wrapf(err, "removing %q", s.cfg.HollowCylinderName)
	}
	return s.confirmSceneState(ctx, s.cfg.HollowCylinderName, false, s.cfg.RemoveTimeout)
}

// confirmSceneState waits for the scene to converge and turns a miss into a
// SceneTimeoutError.
func (s *Sequencer) confirmSceneState(ctx context.Context, name string, shouldBeKnown bool, timeout time.Duration) error {
	observed, err := s.WaitForSceneState(ctx, name, shouldBeKnown, timeout)
	if err != nil {
		return err
	}
	if !observed {
		s.logger.Warnw("planning scene did not converge", "object", name, "want_known", shouldBeKnown)
		return &SceneTimeoutError{Name: name, WantKnown: shouldBeKnown, Timeout: timeout}
	}
	return nil
}
