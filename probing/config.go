package probing

import (
	"math"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"github.com/SrSupp/helene-probing/spatialmath"
)

// Config parametrizes a Sequencer. DefaultConfig returns the values tuned for
// the Helene lab arm; zero values do not validate.
type Config struct {
	// EndEffectorLink is the constrained link, BaseLink the frame its
	// orientation is expressed in.
	EndEffectorLink string
	BaseLink        string

	// The solid obstacle the needle must not touch outside probing.
	CylinderName   string
	CylinderPose   spatialmath.Pose
	CylinderHeight float64
	CylinderRadius float64

	// The hollow variant swapped in during probing so the needle may enter.
	// Its pose is the solid pose shifted by HollowCylinderOffset.
	HollowCylinderName   string
	HollowCylinderMesh   string
	HollowCylinderOffset r3.Vector

	// OrientationTolerance is the per-axis tolerance (radians) of the
	// orientation lock applied while probing.
	OrientationTolerance float64

	// ConstraintRegion bounds the end effector while probing; zero disables
	// the position constraint. RegionOffset places it relative to BaseLink.
	ConstraintRegion spatialmath.Primitive
	RegionOffset     r3.Vector

	// Speed scalings while probing and outside probing.
	ProbingVelocityScaling     float64
	ProbingAccelerationScaling float64
	DefaultVelocityScaling     float64
	DefaultAccelerationScaling float64

	// Cartesian planning resolution.
	EEFStep       float64
	JumpThreshold float64

	// Scene convergence waits: poll cadence and per-operation budgets.
	PollInterval  time.Duration
	AddTimeout    time.Duration
	RemoveTimeout time.Duration

	// Approach pose for moving over the obstacle before probing, relative to
	// the current position.
	ApproachOffset      r3.Vector
	ApproachOrientation quat.Number
}

// DefaultConfig returns the configuration used on the lab arm.
func DefaultConfig() Config {
	region, _ := spatialmath.NewCylinder(1, 0.01)
	return Config{
		EndEffectorLink:      "axis_6",
		BaseLink:             "axis_0",
		CylinderName:         "full_cylinder",
		CylinderPose:         spatialmath.NewPoseFromPoint(r3.Vector{X: 0.3, Z: 0.035}),
		CylinderHeight:       0.08,
		CylinderRadius:       0.04,
		HollowCylinderName:   "hollow_cylinder",
		HollowCylinderMesh:   "stl/hollow_cylinder.stl",
		HollowCylinderOffset: r3.Vector{Z: -0.035},

		OrientationTolerance: 0.1,
		ConstraintRegion:     region,
		RegionOffset:         r3.Vector{Z: 0.5},

		ProbingVelocityScaling:     0.01,
		ProbingAccelerationScaling: 0.1,
		DefaultVelocityScaling:     0.8,
		DefaultAccelerationScaling: 1.0,

		EEFStep:       0.01,
		JumpThreshold: 0,

		PollInterval:  100 * time.Millisecond,
		AddTimeout:    10 * time.Second,
		RemoveTimeout: 4 * time.Second,

		ApproachOffset:      r3.Vector{X: 0.27, Z: -0.27},
		ApproachOrientation: (&spatialmath.EulerAngles{Pitch: -math.Pi / 2, Yaw: math.Pi}).Quaternion(),
	}
}

// Validate checks the config for the mistakes that would otherwise surface as
// confusing planner or scene behavior.
func (c *Config) Validate() error {
	if c.EndEffectorLink == "" || c.BaseLink == "" {
		return errors.New("end effector and base link names must not be empty")
	}
	if c.CylinderName == "" || c.HollowCylinderName == "" {
		return errors.New("cylinder names must not be empty")
	}
	if c.CylinderName == c.HollowCylinderName {
		return errors.New("solid and hollow cylinders must have distinct names")
	}
	if c.HollowCylinderMesh == "" {
		return errors.New("hollow cylinder mesh reference must not be empty")
	}
	if c.CylinderHeight <= 0 || c.CylinderRadius <= 0 {
		return errors.New("cylinder dimensions must be positive")
	}
	if c.OrientationTolerance <= 0 {
		return errors.New("orientation tolerance must be positive")
	}
	for _, factor := range []struct {
		name  string
		value float64
	}{
		{"probing velocity", c.ProbingVelocityScaling},
		{"probing acceleration", c.ProbingAccelerationScaling},
		{"default velocity", c.DefaultVelocityScaling},
		{"default acceleration", c.DefaultAccelerationScaling},
	} {
		if factor.value <= 0 || factor.value > 1 {
			return errors.Errorf("%s scaling %v outside (0, 1]", factor.name, factor.value)
		}
	}
	if c.EEFStep <= 0 {
		return errors.New("eef step must be positive")
	}
	if c.JumpThreshold < 0 {
		return errors.New("jump threshold must not be negative")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.AddTimeout < 0 || c.RemoveTimeout < 0 {
		return errors.New("scene timeouts must not be negative")
	}
	return nil
}
