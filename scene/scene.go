// Package scene defines the planning-scene service consumed by the probing
// sequencer: named collision obstacles that can be added, removed, and
// observed. Changes apply asynchronously; an add or remove returning nil only
// means the request was accepted, not that the object set already reflects
// it. Callers that need confirmation poll KnownObjectNames.
package scene

import (
	"context"

	"github.com/pkg/errors"

	"github.com/SrSupp/helene-probing/spatialmath"
)

// Service is the narrow planning-scene contract the sequencer drives.
type Service interface {
	// AddSolid adds a solid primitive obstacle under the given name.
	AddSolid(ctx context.Context, name string, pose spatialmath.Pose, prim spatialmath.Primitive) error

	// AddMesh adds a mesh-backed obstacle under the given name. meshFile is
	// an opaque file reference resolved by the implementation.
	AddMesh(ctx context.Context, name string, pose spatialmath.Pose, meshFile string) error

	// Remove removes the named obstacle. Removing an unknown name is a no-op.
	Remove(ctx context.Context, name string) error

	// KnownObjectNames reports the names of all obstacles currently known to
	// the scene.
	KnownObjectNames(ctx context.Context) ([]string, error)

	// ObjectPose returns the pose of a known obstacle.
	ObjectPose(ctx context.Context, name string) (spatialmath.Pose, error)
}

// An Object is a named obstacle tracked by a planning scene. Exactly one of
// Primitive and MeshFile is meaningful.
type Object struct {
	Name      string
	Pose      spatialmath.Pose
	Primitive spatialmath.Primitive
	MeshFile  string
}

type objectNotFoundError struct {
	name string
}

func (e *objectNotFoundError) Error() string {
	return "object \"" + e.name + "\" is not known to the planning scene"
}

// NewObjectNotFoundError is returned by ObjectPose implementations when the
// named object is not in the scene.
func NewObjectNotFoundError(name string) error {
	return &objectNotFoundError{name: name}
}

// IsObjectNotFound reports whether err indicates an object missing from the
// scene.
func IsObjectNotFound(err error) bool {
	var notFound *objectNotFoundError
	return errors.As(err, &notFound)
}
